package matching

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/http/render"
	"github.com/MrJamesThe3rd/dealboard/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

// DealRoutes registers buyer suggestions under /deals.
func (h *Handler) DealRoutes(r chi.Router) {
	r.Get("/{id}/suggested-buyers", h.suggest)
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	parties, err := h.svc.Suggest(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromParties(parties))
}
