package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmaziere/naturecamp-backend/internal/pillar"
	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/selection"
	"github.com/tmaziere/naturecamp-backend/internal/services"
)

type BuilderHandler struct {
	svc services.BuilderService
}

func NewBuilderHandler(svc services.BuilderService) *BuilderHandler {
	return &BuilderHandler{svc: svc}
}

func sessionView(session *services.BuilderSession) gin.H {
	return gin.H{
		"id":          session.ID,
		"stage_id":    session.StageID,
		"level_index": session.LevelIndex,
		"theme_ids":   session.ThemeIDs,
		"tag_ids":     session.TagIDs,
		"selected":    cardViews(session.State.Selected),
	}
}

// POST /api/builder/sessions
func (h *BuilderHandler) StartSession(c *gin.Context) {
	var req struct {
		StageID uuid.UUID `json:"stage_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	session, err := h.svc.StartSession(c.Request.Context(), req.StageID)
	if err != nil {
		if errors.Is(err, repos.ErrStageNotFound) {
			RespondError(c, http.StatusNotFound, "stage_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "session_start_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": sessionView(session)})
}

// GET /api/builder/sessions/:id/candidates?pillar=observe
//
// Filters come from the session (set via PUT .../filters). The optional
// pillar query never excludes candidates; it only marks the ones to render
// dimmed.
func (h *BuilderHandler) Candidates(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	candidates, err := h.svc.Candidates(sessionID)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	payload := gin.H{
		"cards":          cardViews(candidates.Cards),
		"available_tags": candidates.AvailableTags,
	}
	if raw := strings.TrimSpace(c.Query("pillar")); raw != "" {
		p := pillarFromQuery(raw)
		dimmed := []int{}
		for _, card := range candidates.Cards {
			if selection.Dimmed(card, p) {
				dimmed = append(dimmed, card.ID)
			}
		}
		payload["dimmed_card_ids"] = dimmed
	}
	RespondOK(c, payload)
}

// PUT /api/builder/sessions/:id/filters
func (h *BuilderHandler) SetFilters(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var req struct {
		LevelIndex int      `json:"level_index"`
		ThemeIDs   []string `json:"theme_ids"`
		TagIDs     []string `json:"tag_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	session, err := h.svc.SetFilters(sessionID, req.LevelIndex, req.ThemeIDs, req.TagIDs)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	RespondOK(c, gin.H{"session": sessionView(session)})
}

// POST /api/builder/sessions/:id/select
func (h *BuilderHandler) Select(c *gin.Context) {
	h.mutateSelection(c, func(sessionID uuid.UUID, cardID int) (*services.BuilderSession, error) {
		return h.svc.Select(sessionID, cardID)
	})
}

// POST /api/builder/sessions/:id/deselect
func (h *BuilderHandler) Deselect(c *gin.Context) {
	h.mutateSelection(c, func(sessionID uuid.UUID, cardID int) (*services.BuilderSession, error) {
		return h.svc.Deselect(sessionID, cardID)
	})
}

// POST /api/builder/sessions/:id/reorder
func (h *BuilderHandler) Reorder(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var req struct {
		FromCardID int `json:"from_card_id"`
		ToCardID   int `json:"to_card_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	session, err := h.svc.Reorder(sessionID, req.FromCardID, req.ToCardID)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	RespondOK(c, gin.H{"session": sessionView(session)})
}

func (h *BuilderHandler) mutateSelection(c *gin.Context, mutate func(uuid.UUID, int) (*services.BuilderSession, error)) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var req struct {
		CardID int `json:"card_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	session, err := mutate(sessionID, req.CardID)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	RespondOK(c, gin.H{"session": sessionView(session)})
}

func respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "session_not_found", err)
	case errors.Is(err, selection.ErrNotAvailable):
		RespondError(c, http.StatusConflict, "card_not_available", err)
	case errors.Is(err, selection.ErrNotSelected):
		RespondError(c, http.StatusConflict, "card_not_selected", err)
	default:
		RespondError(c, http.StatusInternalServerError, "builder_error", err)
	}
}

func pillarFromQuery(raw string) pillar.Pillar {
	switch strings.ToLower(raw) {
	case "observe":
		return pillar.Observe
	case "protect":
		return pillar.Protect
	default:
		return pillar.Understand
	}
}
