package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/dealboard/internal/http/activity"
	"github.com/MrJamesThe3rd/dealboard/internal/http/checklist"
	"github.com/MrJamesThe3rd/dealboard/internal/http/contact"
	"github.com/MrJamesThe3rd/dealboard/internal/http/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/http/document"
	"github.com/MrJamesThe3rd/dealboard/internal/http/export"
	"github.com/MrJamesThe3rd/dealboard/internal/http/importcsv"
	"github.com/MrJamesThe3rd/dealboard/internal/http/match"
	"github.com/MrJamesThe3rd/dealboard/internal/http/matching"
	"github.com/MrJamesThe3rd/dealboard/internal/http/party"
)

// Handlers groups the v1 handlers mounted by New.
type Handlers struct {
	Deals      *deal.Handler
	Parties    *party.Handler
	Contacts   *contact.Handler
	Activities *activity.Handler
	Documents  *document.Handler
	Matches    *match.Handler
	Checklists *checklist.Handler
	Matching   *matching.Handler
	Export     *export.Handler
	Import     *importcsv.Handler
}

func New(v1 Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Route("/deals", func(r chi.Router) {
				v1.Deals.Routes(r)
				v1.Checklists.DealRoutes(r)
				v1.Matches.DealRoutes(r)
				v1.Matching.DealRoutes(r)
				v1.Activities.DealRoutes(r)
				v1.Export.DealRoutes(r)
			})

			r.Route("/buying-parties", func(r chi.Router) {
				v1.Parties.Routes(r)
				v1.Matches.PartyRoutes(r)
			})

			r.Route("/matches", func(r chi.Router) {
				v1.Matches.Routes(r)
				v1.Checklists.MatchRoutes(r)
			})

			r.Route("/contacts", v1.Contacts.Routes)
			r.Route("/activities", v1.Activities.Routes)
			r.Route("/documents", v1.Documents.Routes)
			r.Get("/dashboard", v1.Deals.Dashboard)
		})

		r.Route("/import", v1.Import.Routes)
	})

	return router
}
