package match

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/http/render"
	"github.com/MrJamesThe3rd/dealboard/internal/match"
)

type Handler struct {
	svc *match.Service
}

func NewHandler(svc *match.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
}

// DealRoutes registers the buyer views under /deals.
func (h *Handler) DealRoutes(r chi.Router) {
	r.Get("/{id}/buyers", h.buyers)
	r.Get("/{id}/buyers-with-nda", h.buyersWithNDA)
}

// PartyRoutes registers the match rows under /buying-parties.
func (h *Handler) PartyRoutes(r chi.Router) {
	r.Get("/{id}/matches", h.partyDeals)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateMatchRequest
	if !render.Decode(w, r, &req) {
		return
	}

	m, err := h.svc.Create(r.Context(), req.Params())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, api.FromMatch(m))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	dealID, ok := render.QueryID(w, r, "dealId")
	if !ok {
		return
	}

	partyID, ok := render.QueryID(w, r, "partyId")
	if !ok {
		return
	}

	matches, err := h.svc.List(r.Context(), match.ListFilter{DealID: dealID, PartyID: partyID})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromMatches(matches))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromMatch(m))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	var req api.UpdateMatchRequest
	if !render.Decode(w, r, &req) {
		return
	}

	m, err := h.svc.Update(r.Context(), id, match.UpdateParams{Stage: req.Stage, Status: req.Status})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromMatch(m))
}

func (h *Handler) buyers(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.svc.Buyers(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromBuyerRows(rows))
}

func (h *Handler) buyersWithNDA(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	parties, err := h.svc.BuyersWithNDA(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromParties(parties))
}

func (h *Handler) partyDeals(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.svc.PartyDeals(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromDealRows(rows))
}
