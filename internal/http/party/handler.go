package party

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/http/render"
	"github.com/MrJamesThe3rd/dealboard/internal/party"
)

type Handler struct {
	svc *party.Service
}

func NewHandler(svc *party.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Patch("/{id}/notes", h.saveNotes)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePartyRequest
	if !render.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.Create(r.Context(), req.Params())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, api.FromParty(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	parties, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromParties(parties))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromParty(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	var req api.UpdatePartyRequest
	if !render.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.Update(r.Context(), id, req.Params())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromParty(p))
}

func (h *Handler) saveNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	var req api.NotesRequest
	if !render.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.SaveNotes(r.Context(), id, req.Notes)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromParty(p))
}
