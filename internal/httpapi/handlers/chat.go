package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hu8wei/chathub/internal/ai"
	"github.com/hu8wei/chathub/internal/chat"
	"github.com/hu8wei/chathub/internal/common"
	"github.com/hu8wei/chathub/internal/httpapi/middleware"
)

// respondError maps the service error taxonomy onto the response envelope.
// Provider failures surface the classified message only, never the raw
// vendor payload.
func respondError(c *gin.Context, err error) {
	var (
		unsupported *ai.UnsupportedProviderError
		httpErr     *ai.HTTPError
		apiErr      *ai.APIError
		malformed   *ai.MalformedError
	)
	switch {
	case errors.Is(err, chat.ErrUnauthenticated):
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
	case errors.Is(err, chat.ErrChatNotFound):
		common.Fail(c, http.StatusNotFound, 40004, "chat not found")
	case errors.As(err, &unsupported):
		common.Fail(c, http.StatusBadRequest, 40010, err.Error())
	case errors.As(err, &httpErr):
		common.Fail(c, http.StatusBadGateway, 50210, err.Error())
	case errors.As(err, &apiErr):
		common.Fail(c, http.StatusBadGateway, 50211, err.Error())
	case errors.As(err, &malformed):
		common.Fail(c, http.StatusBadGateway, 50212, err.Error())
	default:
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to process request")
	}
}

type aiResponseReq struct {
	Provider string `json:"provider" binding:"required"`
	Prompt   string `json:"prompt" binding:"required"`
	ChatID   string `json:"chat_id"`
}

func (h *Handler) GetAIResponse(c *gin.Context) {
	var req aiResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	msg, err := h.ChatSvc.Respond(c.Request.Context(), middleware.UserID(c), req.Provider, req.Prompt, req.ChatID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Ok(c, msg)
}

type savePromptReq struct {
	Provider string `json:"provider" binding:"required"`
	Prompt   string `json:"prompt" binding:"required"`
	Response string `json:"response" binding:"required"`
	ChatID   string `json:"chat_id"`
}

func (h *Handler) SavePrompt(c *gin.Context) {
	var req savePromptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	msg, err := h.ChatSvc.SavePrompt(c.Request.Context(), middleware.UserID(c), req.Provider, req.Prompt, req.Response, req.ChatID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Ok(c, msg)
}

type createChatReq struct {
	Title string `json:"title"`
}

func (h *Handler) CreateChat(c *gin.Context) {
	var req createChatReq
	_ = c.ShouldBindJSON(&req) // allow empty body

	created, err := h.ChatSvc.CreateChat(c.Request.Context(), middleware.UserID(c), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Ok(c, created)
}

func (h *Handler) ListChats(c *gin.Context) {
	chats, err := h.ChatSvc.ListChats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.Ok(c, gin.H{"chats": chats})
}

func (h *Handler) GetChatByID(c *gin.Context) {
	chatID := c.Param("chat_id")

	found, msgs, err := h.ChatSvc.GetChat(c.Request.Context(), middleware.UserID(c), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Ok(c, gin.H{
		"chat_id":    found.ChatID,
		"title":      found.Title,
		"created_at": found.CreatedAt,
		"updated_at": found.UpdatedAt,
		"messages":   msgs,
	})
}

type updateTitleReq struct {
	Title string `json:"title" binding:"required"`
}

func (h *Handler) UpdateChatTitle(c *gin.Context) {
	var req updateTitleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	updated, err := h.ChatSvc.UpdateTitle(c.Request.Context(), middleware.UserID(c), c.Param("chat_id"), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Ok(c, updated)
}

func (h *Handler) DeleteChat(c *gin.Context) {
	if err := h.ChatSvc.DeleteChat(c.Request.Context(), middleware.UserID(c), c.Param("chat_id")); err != nil {
		respondError(c, err)
		return
	}
	common.Ok(c, gin.H{"deleted": true})
}
