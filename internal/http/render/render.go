// Package render writes JSON bodies and maps domain errors onto status codes.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/activity"
	"github.com/MrJamesThe3rd/dealboard/internal/checklist"
	"github.com/MrJamesThe3rd/dealboard/internal/contact"
	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
	"github.com/MrJamesThe3rd/dealboard/internal/match"
	"github.com/MrJamesThe3rd/dealboard/internal/party"
)

// NeedsValuation is the body sent when the stage guard rejects a move.
const NeedsValuation = "Needs Valuation"

var (
	badRequest = []error{
		deal.ErrInvalid, deal.ErrInvalidStage, party.ErrInvalid, contact.ErrInvalid,
		activity.ErrInvalid, document.ErrInvalid, match.ErrInvalid,
		checklist.ErrInvalidLabel, checklist.ErrInvalidOwner, entity.ErrUnknownKind,
	}
	notFound = []error{
		deal.ErrNotFound, party.ErrNotFound, contact.ErrNotFound, activity.ErrNotFound,
		document.ErrNotFound, match.ErrNotFound, checklist.ErrItemNotFound,
	}
	conflict = []error{match.ErrDuplicate, checklist.ErrDuplicateKey}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}

	return false
}

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case errors.Is(err, deal.ErrNeedsValuation):
		return http.StatusUnprocessableEntity
	case isAny(err, badRequest):
		return http.StatusBadRequest
	case isAny(err, notFound):
		return http.StatusNotFound
	case isAny(err, conflict):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// Error writes err as a plain-text response. Unmapped errors are logged and
// answered with a generic message.
func Error(w http.ResponseWriter, err error) {
	status := Status(err)

	switch status {
	case http.StatusUnprocessableEntity:
		http.Error(w, NeedsValuation, status)
	case http.StatusInternalServerError:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)
	default:
		http.Error(w, err.Error(), status)
	}
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON body into v, answering 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

// ID parses the named URL parameter as a UUID, answering 400 on failure.
func ID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

// QueryID parses an optional UUID query parameter.
func QueryID(w http.ResponseWriter, r *http.Request, name string) (*uuid.UUID, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, true
	}

	id, err := uuid.Parse(s)
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return nil, false
	}

	return &id, true
}
