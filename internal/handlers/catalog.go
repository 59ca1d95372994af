package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tmaziere/naturecamp-backend/internal/pillar"
	"github.com/tmaziere/naturecamp-backend/internal/services"
	"github.com/tmaziere/naturecamp-backend/internal/types"
)

type CatalogHandler struct {
	svc services.CatalogService
}

func NewCatalogHandler(svc services.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// cardView augments a catalog card with its derived pillar so clients style
// cards off the canonical enum instead of re-parsing the category label.
type cardView struct {
	*types.ContentCard
	Pillar string `json:"pillar"`
}

func cardViews(cards []*types.ContentCard) []cardView {
	out := make([]cardView, 0, len(cards))
	for _, card := range cards {
		out = append(out, cardView{ContentCard: card, Pillar: pillar.Classify(card.Category).String()})
	}
	return out
}

// GET /api/cards
func (h *CatalogHandler) ListCards(c *gin.Context) {
	cards, err := h.svc.ListCards(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "catalog_unavailable", err)
		return
	}
	RespondOK(c, gin.H{"cards": cardViews(cards)})
}
