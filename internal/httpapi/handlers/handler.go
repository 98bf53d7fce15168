package handlers

import (
	"github.com/hu8wei/chathub/internal/chat"
	"github.com/hu8wei/chathub/internal/config"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Cfg     config.Config
	ChatSvc *chat.Service
}

func NewHandler(db *gorm.DB, cfg config.Config, svc *chat.Service) *Handler {
	return &Handler{DB: db, Cfg: cfg, ChatSvc: svc}
}
