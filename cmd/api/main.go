package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/dealboard/internal/activity"
	activityStore "github.com/MrJamesThe3rd/dealboard/internal/activity/store"
	"github.com/MrJamesThe3rd/dealboard/internal/checklist"
	checklistStore "github.com/MrJamesThe3rd/dealboard/internal/checklist/store"
	"github.com/MrJamesThe3rd/dealboard/internal/config"
	"github.com/MrJamesThe3rd/dealboard/internal/contact"
	contactStore "github.com/MrJamesThe3rd/dealboard/internal/contact/store"
	"github.com/MrJamesThe3rd/dealboard/internal/database"
	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	dealStore "github.com/MrJamesThe3rd/dealboard/internal/deal/store"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
	documentStore "github.com/MrJamesThe3rd/dealboard/internal/document/store"
	"github.com/MrJamesThe3rd/dealboard/internal/export"
	dealboardHttp "github.com/MrJamesThe3rd/dealboard/internal/http"
	activityHandler "github.com/MrJamesThe3rd/dealboard/internal/http/activity"
	checklistHandler "github.com/MrJamesThe3rd/dealboard/internal/http/checklist"
	contactHandler "github.com/MrJamesThe3rd/dealboard/internal/http/contact"
	dealHandler "github.com/MrJamesThe3rd/dealboard/internal/http/deal"
	documentHandler "github.com/MrJamesThe3rd/dealboard/internal/http/document"
	exportHandler "github.com/MrJamesThe3rd/dealboard/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/dealboard/internal/http/importcsv"
	matchHandler "github.com/MrJamesThe3rd/dealboard/internal/http/match"
	matchingHandler "github.com/MrJamesThe3rd/dealboard/internal/http/matching"
	partyHandler "github.com/MrJamesThe3rd/dealboard/internal/http/party"
	"github.com/MrJamesThe3rd/dealboard/internal/importer"
	"github.com/MrJamesThe3rd/dealboard/internal/match"
	matchStore "github.com/MrJamesThe3rd/dealboard/internal/match/store"
	"github.com/MrJamesThe3rd/dealboard/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/dealboard/internal/matching/store"
	"github.com/MrJamesThe3rd/dealboard/internal/party"
	partyStore "github.com/MrJamesThe3rd/dealboard/internal/party/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		documentService  = document.NewService(documentStore.New(db))
		dealService      = deal.NewService(dealStore.New(db), documentService)
		partyService     = party.NewService(partyStore.New(db))
		contactService   = contact.NewService(contactStore.New(db))
		activityService  = activity.NewService(activityStore.New(db), activity.DefaultCatalog())
		matchService     = match.NewService(matchStore.New(db))
		checklistService = checklist.NewService(checklistStore.New(db), checklist.BuiltinDefaults())
		matchingService  = matching.NewService(matchingStore.New(db), dealService)
		exportService    = export.NewService(documentService, dealService, cfg.Export.Token)
		importService    = importer.NewService(dealService)
	)

	router := dealboardHttp.New(dealboardHttp.Handlers{
		Deals:      dealHandler.NewHandler(dealService, documentService),
		Parties:    partyHandler.NewHandler(partyService),
		Contacts:   contactHandler.NewHandler(contactService),
		Activities: activityHandler.NewHandler(activityService),
		Documents:  documentHandler.NewHandler(documentService),
		Matches:    matchHandler.NewHandler(matchService),
		Checklists: checklistHandler.NewHandler(checklistService),
		Matching:   matchingHandler.NewHandler(matchingService),
		Export:     exportHandler.NewHandler(exportService),
		Import:     importHandler.NewHandler(importService),
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.App.Port),
		Handler:     router,
		ReadTimeout: cfg.Server.Timeout,
		IdleTimeout: 2 * cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
