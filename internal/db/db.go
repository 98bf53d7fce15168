package db

import (
	"fmt"
	"strings"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/hu8wei/chathub/internal/chat"
	"github.com/hu8wei/chathub/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connect opens the record store. DSNs containing "@tcp(" are treated as
// MySQL, anything else as a sqlite file/memory DSN.
func Connect(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.Contains(dsn, "@tcp(") {
		dialector = mysql.Open(dsn)
	} else {
		dialector = gormsqlite.Open(dsn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := gdb.AutoMigrate(&models.User{}, &chat.Chat{}, &chat.Prompt{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return gdb, nil
}
