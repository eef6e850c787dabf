package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
	"github.com/MrJamesThe3rd/dealboard/internal/http/render"
)

type Handler struct {
	svc *document.Service
}

func NewHandler(svc *document.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateDocumentRequest
	if !render.Decode(w, r, &req) {
		return
	}

	owner, err := req.Owner.Ref()
	if err != nil {
		render.Error(w, err)
		return
	}

	doc, err := h.svc.Create(r.Context(), document.CreateParams{
		Owner:  owner,
		Name:   req.Name,
		Status: req.Status,
		URL:    req.URL,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, api.FromDocument(doc))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entityID, ok := render.QueryID(w, r, "entityId")
	if !ok {
		return
	}

	docs, err := h.svc.List(r.Context(), document.ListFilter{EntityID: entityID})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromDocuments(docs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromDocument(doc))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	var req api.DocumentStatusRequest
	if !render.Decode(w, r, &req) {
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
