package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/services"
)

type StageHandler struct {
	svc services.StageService
}

func NewStageHandler(svc services.StageService) *StageHandler {
	return &StageHandler{svc: svc}
}

// GET /api/stages
func (h *StageHandler) ListStages(c *gin.Context) {
	stages, err := h.svc.ListStages(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "stage_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"stages": stages})
}

// GET /api/stages/:id
func (h *StageHandler) GetStage(c *gin.Context) {
	stageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	stage, err := h.svc.GetStage(c.Request.Context(), stageID)
	if err != nil {
		if errors.Is(err, repos.ErrStageNotFound) {
			RespondError(c, http.StatusNotFound, "stage_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "stage_load_failed", err)
		return
	}
	RespondOK(c, gin.H{"stage": stage})
}

type createStageRequest struct {
	Title            string    `json:"title"`
	Type             string    `json:"type"`
	ParticipantCount int       `json:"participant_count"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
}

// POST /api/stages
func (h *StageHandler) CreateStage(c *gin.Context) {
	var req createStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	stage, err := h.svc.CreateStage(c.Request.Context(), req.Title, req.Type, req.ParticipantCount, req.StartDate, req.EndDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "stage_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stage": stage})
}
