package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medassist/internal/chat"
	"github.com/BruksfildServices01/medassist/internal/middleware"
)

// ChatEngine turns one user message into one reply.
type ChatEngine interface {
	Handle(ctx context.Context, owner, message string) chat.Reply
}

type ChatHandler struct {
	engine ChatEngine
}

func NewChatHandler(engine ChatEngine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// --------- Requests ---------

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// --------- Handlers ---------

// Send always answers 200 once the request is well formed; failures travel in
// the reply body so the conversation can continue.
func (h *ChatHandler) Send(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "請輸入訊息內容。",
		})
		return
	}

	reply := h.engine.Handle(c.Request.Context(), middleware.Owner(c), req.Message)
	c.JSON(http.StatusOK, reply)
}

var _ ChatEngine = (*chat.Engine)(nil)
