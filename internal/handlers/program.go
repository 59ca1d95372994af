package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/services"
)

type ProgramHandler struct {
	svc services.ProgramService
}

func NewProgramHandler(svc services.ProgramService) *ProgramHandler {
	return &ProgramHandler{svc: svc}
}

type saveProgramRequest struct {
	LevelIndex  int      `json:"level_index"`
	ThemeTitles []string `json:"theme_titles"`
	CardIDs     []int    `json:"card_ids"`
}

// POST /api/stages/:id/program
//
// Saving is a destructive rebuild; any error here surfaces as a blocking
// "save failed" to the client, with the code telling it whether a retry of
// the whole save is the right recovery (it always is).
func (h *ProgramHandler) SaveProgram(c *gin.Context) {
	stageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	var req saveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}

	err = h.svc.SyncProgram(c.Request.Context(), stageID, req.LevelIndex, req.ThemeTitles, req.CardIDs)
	switch {
	case err == nil:
		RespondOK(c, gin.H{"saved": true})
	case errors.Is(err, repos.ErrStageNotFound):
		RespondError(c, http.StatusNotFound, "stage_not_found", err)
	case errors.Is(err, services.ErrMissingTheme):
		RespondError(c, http.StatusUnprocessableEntity, "missing_theme", err)
	case errors.Is(err, services.ErrDeleteFailed):
		RespondError(c, http.StatusBadGateway, "delete_failed", err)
	case errors.Is(err, services.ErrPartialWrite):
		RespondError(c, http.StatusBadGateway, "partial_write", err)
	default:
		RespondError(c, http.StatusInternalServerError, "save_failed", err)
	}
}

// GET /api/stages/:id/program
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	stageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	records, err := h.svc.GetProgram(c.Request.Context(), stageID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "program_load_failed", err)
		return
	}
	RespondOK(c, gin.H{"records": records})
}
