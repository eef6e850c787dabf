package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dealboard/internal/export"
	"github.com/MrJamesThe3rd/dealboard/internal/http/render"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

// DealRoutes registers the data-room download under /deals.
func (h *Handler) DealRoutes(r chi.Router) {
	r.Post("/{id}/export", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r, "id")
	if !ok {
		return
	}

	tmpDir, err := os.MkdirTemp("", "dealboard-export-*")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	bundle, err := h.svc.Export(r.Context(), id, tmpDir)
	if err != nil {
		render.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", archiveName(bundle.Deal.CompanyName, time.Now())))

	if err := export.WriteZip(w, tmpDir); err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}

func archiveName(company string, now time.Time) string {
	slug := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}

		return '-'
	}, strings.ToLower(company))

	return fmt.Sprintf("dataroom_%s_%s.zip", strings.Trim(slug, "-"), now.Format("20060102"))
}
