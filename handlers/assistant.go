package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"closetcircle/middleware"
	"closetcircle/models"
	ai "closetcircle/services/intelligence"
	"closetcircle/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchRequest carries the upstream record untouched; the assistant validates it.
type SearchRequest struct {
	ConversationID string          `json:"conversationId" binding:"required"`
	Understanding  json.RawMessage `json:"understanding"`
}

type ConversationRequest struct {
	ConversationID string `json:"conversationId" binding:"required"`
}

type BookRequest struct {
	ConversationID string `json:"conversationId" binding:"required"`
	Email          string `json:"email"`
}

type IdentityRequest struct {
	ConversationID string `json:"conversationId" binding:"required"`
	Email          string `json:"email" binding:"required"`
}

type AssistantHandler struct {
	svc ai.AIService
}

func NewAssistantHandler(svc ai.AIService) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// identity prefers the verified token email over whatever the body claims.
func identity(c *gin.Context, claimed string) string {
	if email := middleware.VerifiedEmail(c); email != "" {
		return email
	}
	return strings.TrimSpace(claimed)
}

func (h *AssistantHandler) respond(c *gin.Context, resp *models.AIResponse, err error) {
	if err != nil {
		getLogger(c).Error("Assistant turn failed", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Assistant unavailable", "conversation state could not be loaded or saved")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleMessage runs language understanding on free text and dispatches the intent.
func (h *AssistantHandler) HandleMessage(c *gin.Context) {
	var req models.AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	req.Email = identity(c, req.Email)

	resp, err := h.svc.ProcessUserInput(c.Request.Context(), req)
	h.respond(c, resp, err)
}

// HandleSearch runs a search from an already structured {intent, entities} record.
func (h *AssistantHandler) HandleSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	resp, err := h.svc.Search(c.Request.Context(), req.ConversationID, req.Understanding)
	h.respond(c, resp, err)
}

func (h *AssistantHandler) HandleNext(c *gin.Context) {
	var req ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	resp, err := h.svc.Next(c.Request.Context(), req.ConversationID)
	h.respond(c, resp, err)
}

func (h *AssistantHandler) HandleBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	resp, err := h.svc.Book(c.Request.Context(), req.ConversationID, identity(c, req.Email))
	h.respond(c, resp, err)
}

// HandleIdentity stores the caller's email on the conversation.
func (h *AssistantHandler) HandleIdentity(c *gin.Context) {
	var req IdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	err := h.svc.SetIdentity(c.Request.Context(), req.ConversationID, identity(c, req.Email))
	switch {
	case errors.Is(err, ai.ErrInvalidEmail):
		utils.JSONError(c, http.StatusBadRequest, "Invalid email", err.Error())
	case err != nil:
		getLogger(c).Error("Failed to store identity", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Assistant unavailable", "identity could not be saved")
	default:
		c.JSON(http.StatusOK, gin.H{"conversationId": req.ConversationID, "status": "identified"})
	}
}

// HandleResetSession clears the search session of a conversation.
// ?all=true also forgets the stored email.
func (h *AssistantHandler) HandleResetSession(c *gin.Context) {
	conversationID := c.Param("conversationId")
	all, err := strconv.ParseBool(c.DefaultQuery("all", "false"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "all must be a boolean")
		return
	}
	if err := h.svc.ResetSession(c.Request.Context(), conversationID, all); err != nil {
		getLogger(c).Error("Failed to reset session", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Assistant unavailable", "session could not be cleared")
		return
	}
	c.Status(http.StatusNoContent)
}
