package deal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
	"github.com/MrJamesThe3rd/dealboard/internal/http/render"
)

type Handler struct {
	svc  *deal.Service
	docs *document.Service
}

func NewHandler(svc *deal.Service, docs *document.Service) *Handler {
	return &Handler{svc: svc, docs: docs}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Patch("/{id}/stage", h.moveStage)
	r.Patch("/{id}/notes", h.saveNotes)
	r.Get("/{id}/pinned-documents", h.pinnedDocuments)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateDealRequest
	if !render.Decode(w, r, &req) {
		return
	}

	d, err := h.svc.Create(r.Context(), req.Params())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, api.FromDeal(d))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := deal.ListFilter{}

	if s := r.URL.Query().Get("stage"); s != "" {
		st, err := deal.ParseStage(s)
		if err != nil {
			render.Error(w, err)
			return
		}

		filter.Stage = new(st)
	}

	deals, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromDeals(deals))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromDeal(d))
}

// update applies a partial update. A stage field is checked by the same guard
// as the dedicated stage route.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	var req api.UpdateDealRequest
	if !render.Decode(w, r, &req) {
		return
	}

	d, err := h.svc.Update(r.Context(), id, req.Params())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromDeal(d))
}

func (h *Handler) moveStage(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	var req api.MoveStageRequest
	if !render.Decode(w, r, &req) {
		return
	}

	d, err := h.svc.MoveStage(r.Context(), id, req.Stage)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromDeal(d))
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

	d, err := h.svc.SaveNotes(r.Context(), id, req.Notes)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromDeal(d))
}

func (h *Handler) pinnedDocuments(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	docs, err := h.docs.ListByOwner(r.Context(), entity.Deal(id))
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromPinned(document.Pin(docs)))
}

// Dashboard serves the pipeline KPIs.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Dashboard(r.Context())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromSummary(s))
}
