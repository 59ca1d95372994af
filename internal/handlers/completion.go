package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmaziere/naturecamp-backend/internal/services"
)

type CompletionHandler struct {
	svc services.CompletionService
}

func NewCompletionHandler(svc services.CompletionService) *CompletionHandler {
	return &CompletionHandler{svc: svc}
}

// GET /api/stages/:id/completion
func (h *CompletionHandler) GetCompletion(c *gin.Context) {
	stageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	ids, err := h.svc.Load(c.Request.Context(), stageID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "completion_load_failed", err)
		return
	}
	RespondOK(c, gin.H{"card_ids": ids})
}

// POST /api/stages/:id/completion/toggle
//
// A remote write failure is not a failed toggle: the local state already
// reflects the instructor's intent, so the response stays 200 and only
// flags remote_synced=false for a non-blocking warning.
func (h *CompletionHandler) Toggle(c *gin.Context) {
	stageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	var req struct {
		CardID int `json:"card_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}

	nowComplete, err := h.svc.Toggle(c.Request.Context(), stageID, req.CardID)
	switch {
	case err == nil:
		RespondOK(c, gin.H{"complete": nowComplete, "remote_synced": true})
	case errors.Is(err, services.ErrRemoteWrite):
		RespondOK(c, gin.H{"complete": nowComplete, "remote_synced": false})
	case errors.Is(err, services.ErrCardNotInProgram):
		RespondError(c, http.StatusBadRequest, "card_not_in_program", err)
	default:
		RespondError(c, http.StatusInternalServerError, "toggle_failed", err)
	}
}
