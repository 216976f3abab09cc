package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
	"github.com/BruksfildServices01/booking-assistant/internal/httpresp"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/memory"
	ucChat "github.com/BruksfildServices01/booking-assistant/internal/usecase/chat"
)

type messageProcessor interface {
	Execute(ctx context.Context, sessionID, message string) (*ucChat.Reply, error)
}

type conversationResetter interface {
	Execute(ctx context.Context, sessionID string) error
}

type historyReader interface {
	Execute(ctx context.Context, sessionID string) ([]memory.Message, error)
}

type ChatHandler struct {
	process messageProcessor
	reset   conversationResetter
	history historyReader
}

func NewChatHandler(
	process messageProcessor,
	reset conversationResetter,
	history historyReader,
) *ChatHandler {
	return &ChatHandler{
		process: process,
		reset:   reset,
		history: history,
	}
}

type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func sessionID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		httperr.BadRequest(c, "invalid_session_id", "Invalid session id.")
		return "", false
	}
	return id, true
}

func (h *ChatHandler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"session_id": uuid.NewString()})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		httperr.BadRequest(c, "invalid_request", "A non-empty message is required.")
		return
	}

	reply, err := h.process.Execute(c.Request.Context(), id, strings.TrimSpace(req.Message))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, reply)
}

func (h *ChatHandler) History(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	msgs, err := h.history.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, msgs)
}

func (h *ChatHandler) Reset(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.reset.Execute(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
