package checklist

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/checklist"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
	"github.com/MrJamesThe3rd/dealboard/internal/http/render"
)

type Handler struct {
	svc *checklist.Service
}

func NewHandler(svc *checklist.Service) *Handler {
	return &Handler{svc: svc}
}

// DealRoutes registers the stage checklist under /deals.
func (h *Handler) DealRoutes(r chi.Router) {
	h.mount(r, "/{id}/stage-checklist", entity.Deal)
}

// MatchRoutes registers the buyer checklist under /matches.
func (h *Handler) MatchRoutes(r chi.Router) {
	h.mount(r, "/{id}/checklist", entity.Match)
}

func (h *Handler) mount(r chi.Router, prefix string, ref func(uuid.UUID) entity.Ref) {
	r.Get(prefix, h.get(ref))
	r.Patch(prefix, h.replace(ref))
	r.Post(prefix+"/items", h.add(ref))
	r.Post(prefix+"/items/{key}/toggle", h.toggle(ref))
}

func owner(w http.ResponseWriter, r *http.Request, ref func(uuid.UUID) entity.Ref) (entity.Ref, bool) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return entity.Ref{}, false
	}

	return ref(id), true
}

func (h *Handler) get(ref func(uuid.UUID) entity.Ref) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, ok := owner(w, r, ref)
		if !ok {
			return
		}

		items, err := h.svc.Get(r.Context(), o)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, http.StatusOK, api.FromChecklist(items))
	}
}

func (h *Handler) replace(ref func(uuid.UUID) entity.Ref) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, ok := owner(w, r, ref)
		if !ok {
			return
		}

		var req api.ChecklistRequest
		if !render.Decode(w, r, &req) {
			return
		}

		items, err := h.svc.Replace(r.Context(), o, api.ToChecklist(req.Items))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, http.StatusOK, api.FromChecklist(items))
	}
}

func (h *Handler) add(ref func(uuid.UUID) entity.Ref) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, ok := owner(w, r, ref)
		if !ok {
			return
		}

		var req api.AddChecklistItemRequest
		if !render.Decode(w, r, &req) {
			return
		}

		items, err := h.svc.Add(r.Context(), o, req.Label)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, http.StatusCreated, api.FromChecklist(items))
	}
}

func (h *Handler) toggle(ref func(uuid.UUID) entity.Ref) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, ok := owner(w, r, ref)
		if !ok {
			return
		}

		items, err := h.svc.Toggle(r.Context(), o, chi.URLParam(r, "key"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, http.StatusOK, api.FromChecklist(items))
	}
}
