package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/moodwatch/internal/application"
	"github.com/oksasatya/moodwatch/pkg/response"
)

type MessageHandler struct {
	Svc *application.ChatService
}

func NewMessageHandler(svc *application.ChatService) *MessageHandler {
	return &MessageHandler{Svc: svc}
}

type postMessageRequest struct {
	Content string `json:"content" binding:"required"`
	IsBot   bool   `json:"isBot"`
}

// Create POST /api/messages. Responds with the stored human message once the
// bot reply (or its fallback) has been persisted.
func (h *MessageHandler) Create(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req postMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.Svc.PostMessage(c.Request.Context(), uid, req.Content, req.IsBot)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// List GET /api/messages
func (h *MessageHandler) List(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	msgs, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
