package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealboard/internal/activity"
	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
	"github.com/MrJamesThe3rd/dealboard/internal/http/render"
)

type Handler struct {
	svc *activity.Service
}

func NewHandler(svc *activity.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/presets", h.presets)
	r.Patch("/{id}/complete", h.complete)
}

// DealRoutes registers the preset shortcut under /deals.
func (h *Handler) DealRoutes(r chi.Router) {
	r.Post("/{id}/activities/presets/{key}", h.createFromPreset)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateActivityRequest
	if !render.Decode(w, r, &req) {
		return
	}

	owner, err := req.Owner.Ref()
	if err != nil {
		render.Error(w, err)
		return
	}

	a, err := h.svc.Create(r.Context(), activity.CreateParams{
		Owner:       owner,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, api.FromActivity(a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entityID, ok := render.QueryID(w, r, "entityId")
	if !ok {
		return
	}

	activities, err := h.svc.List(r.Context(), activity.ListFilter{EntityID: entityID})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromActivities(activities))
}

func (h *Handler) presets(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, api.FromPresets(h.svc.Presets()))
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	a, err := h.svc.Complete(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromActivity(a))
}

func (h *Handler) createFromPreset(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	a, err := h.svc.CreateFromPreset(r.Context(), entity.Deal(id), chi.URLParam(r, "key"))
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, api.FromActivity(a))
}
