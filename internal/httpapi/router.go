package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hu8wei/chathub/internal/chat"
	"github.com/hu8wei/chathub/internal/common"
	"github.com/hu8wei/chathub/internal/config"
	"github.com/hu8wei/chathub/internal/httpapi/handlers"
	"github.com/hu8wei/chathub/internal/httpapi/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, cfg config.Config, svc *chat.Service, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(db, cfg, svc)

	r.GET("/ping", h.Ping)
	r.POST("/users", h.CreateUser)
	r.POST("/login", h.Login)

	// Identity never rejects; anonymous callers fail per-operation so the
	// auth outcome is part of each operation's result, not the transport's.
	authed := r.Group("/")
	authed.Use(middleware.Identity(cfg.JWTSecret))
	authed.GET("/me", h.Me)

	authed.POST("/ai/responses",
		middleware.RateLimit(rdb, cfg.RateLimitPerMinute, cfg.RateLimitWindow),
		h.GetAIResponse)
	authed.POST("/prompts", h.SavePrompt)

	authed.POST("/chats", h.CreateChat)
	authed.GET("/chats", h.ListChats)
	authed.GET("/chats/:chat_id", h.GetChatByID)
	authed.PATCH("/chats/:chat_id/title", h.UpdateChatTitle)
	authed.DELETE("/chats/:chat_id", h.DeleteChat)

	return r
}
