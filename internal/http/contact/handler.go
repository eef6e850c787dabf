package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/contact"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
	"github.com/MrJamesThe3rd/dealboard/internal/http/render"
)

type Handler struct {
	svc *contact.Service
}

func NewHandler(svc *contact.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateContactRequest
	if !render.Decode(w, r, &req) {
		return
	}

	owner, err := req.Owner.Ref()
	if err != nil {
		render.Error(w, err)
		return
	}

	c, err := h.svc.Create(r.Context(), contact.CreateParams{
		Name:  req.Name,
		Role:  req.Role,
		Email: req.Email,
		Phone: req.Phone,
		Owner: owner,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, api.FromContact(c))
}

// list accepts ?entityId&entityType to narrow to one owner and ?q to search.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := contact.ListFilter{Query: q.Get("q")}

	entityID, ok := render.QueryID(w, r, "entityId")
	if !ok {
		return
	}

	if entityID != nil {
		kind, err := entity.ParseKind(q.Get("entityType"))
		if err != nil {
			render.Error(w, err)
			return
		}

		filter.Owner = &entity.Ref{Kind: kind, ID: *entityID}
	}

	contacts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromContacts(contacts))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, api.FromContact(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
