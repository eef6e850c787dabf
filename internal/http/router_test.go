package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dealboard/internal/activity"
	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/checklist"
	"github.com/MrJamesThe3rd/dealboard/internal/contact"
	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
	"github.com/MrJamesThe3rd/dealboard/internal/export"
	dealhttp "github.com/MrJamesThe3rd/dealboard/internal/http"
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
	"github.com/MrJamesThe3rd/dealboard/internal/matching"
	"github.com/MrJamesThe3rd/dealboard/internal/party"
)

type fixture struct {
	router    http.Handler
	deals     *deal.MockRepository
	docs      *document.MockRepository
	parties   *party.MockRepository
	contacts  *contact.MockRepository
	matches   *match.MockRepository
	checklist *checklist.MockRepository
	suggest   *matching.MockRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		deals:     deal.NewMockRepository(ctrl),
		docs:      document.NewMockRepository(ctrl),
		parties:   party.NewMockRepository(ctrl),
		contacts:  contact.NewMockRepository(ctrl),
		matches:   match.NewMockRepository(ctrl),
		checklist: checklist.NewMockRepository(ctrl),
		suggest:   matching.NewMockRepository(ctrl),
	}

	var (
		documentService  = document.NewService(f.docs)
		dealService      = deal.NewService(f.deals, documentService)
		partyService     = party.NewService(f.parties)
		contactService   = contact.NewService(f.contacts)
		activityService  = activity.NewService(activity.NewMockRepository(ctrl), activity.DefaultCatalog())
		matchService     = match.NewService(f.matches)
		checklistService = checklist.NewService(f.checklist, checklist.BuiltinDefaults())
		matchingService  = matching.NewService(f.suggest, dealService)
		exportService    = export.NewService(documentService, dealService, "")
		importService    = importer.NewService(dealService)
	)

	f.router = dealhttp.New(dealhttp.Handlers{
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
	}, []string{"http://localhost:5173"})

	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func onboardingDeal(id uuid.UUID) *deal.Deal {
	return &deal.Deal{
		ID:          id,
		CompanyName: "Acme",
		Revenue:     decimal.NewFromInt(1_000_000),
		Stage:       deal.StageOnboarding,
		Priority:    deal.PriorityMedium,
		Owner:       "Dana",
	}
}

func TestRouter_MoveStage(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name       string
		body       any
		setupMock  func(f *fixture)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "NeedsValuation",
			body: api.MoveStageRequest{Stage: deal.StageValuation},
			setupMock: func(f *fixture) {
				f.deals.EXPECT().GetDeal(gomock.Any(), id).Return(onboardingDeal(id), nil)
				f.docs.EXPECT().ListDocuments(gomock.Any(), gomock.Any()).
					Return([]*document.Document{{Name: "NDA.pdf"}}, nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "Needs Valuation",
		},
		{
			name: "Allowed",
			body: api.MoveStageRequest{Stage: deal.StageValuation},
			setupMock: func(f *fixture) {
				f.deals.EXPECT().GetDeal(gomock.Any(), id).Return(onboardingDeal(id), nil)
				f.docs.EXPECT().ListDocuments(gomock.Any(), gomock.Any()).
					Return([]*document.Document{{Name: "Acme Valuation.xlsx"}}, nil)
				f.deals.EXPECT().UpdateStage(gomock.Any(), id, deal.StageValuation).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"stage":"valuation"`,
		},
		{
			name:       "InvalidStage",
			body:       api.MoveStageRequest{Stage: "closing"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "NotFound",
			body: api.MoveStageRequest{Stage: deal.StageSold},
			setupMock: func(f *fixture) {
				f.deals.EXPECT().GetDeal(gomock.Any(), id).Return(nil, deal.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			rec := f.do(t, http.MethodPatch, "/api/v1/deals/"+id.String()+"/stage", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestRouter_PatchDealCannotBypassGuard(t *testing.T) {
	id := uuid.New()
	f := newFixture(t)

	f.deals.EXPECT().GetDeal(gomock.Any(), id).Return(onboardingDeal(id), nil)
	f.docs.EXPECT().ListDocuments(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := f.do(t, http.MethodPatch, "/api/v1/deals/"+id.String(), map[string]any{
		"stage":       "sold",
		"companyName": "Renamed",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Needs Valuation\n", rec.Body.String())
}

func TestRouter_CreateDeal(t *testing.T) {
	f := newFixture(t)

	f.deals.EXPECT().CreateDeal(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *deal.Deal) error {
			d.ID = uuid.New()
			return nil
		})

	rec := f.do(t, http.MethodPost, "/api/v1/deals", map[string]any{
		"companyName": "Acme",
		"revenue":     "1250000",
		"owner":       "Dana",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got api.Deal
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, deal.StageOnboarding, got.Stage)
	assert.Equal(t, deal.PriorityMedium, got.Priority)
	assert.True(t, decimal.NewFromInt(1_250_000).Equal(got.Revenue))
}

func TestRouter_CreateDeal_Invalid(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/deals", map[string]any{"companyName": "Acme", "revenue": "0"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RejectsNonJSON(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/deals", strings.NewReader("company=Acme"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_StageChecklist(t *testing.T) {
	id := uuid.New()

	t.Run("AbsentReturnsDefaults", func(t *testing.T) {
		f := newFixture(t)
		f.checklist.EXPECT().GetChecklist(gomock.Any(), entity.Deal(id)).Return(nil, checklist.ErrNotFound)

		rec := f.do(t, http.MethodGet, "/api/v1/deals/"+id.String()+"/stage-checklist", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var items []api.ChecklistItem
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
		assert.Equal(t, "fs1_received", items[0].Key)
	})

	t.Run("AddDuplicate", func(t *testing.T) {
		f := newFixture(t)
		f.checklist.EXPECT().GetChecklist(gomock.Any(), entity.Deal(id)).
			Return([]checklist.Item{{Key: "docs_reviewed", Label: "Docs reviewed"}}, nil)

		rec := f.do(t, http.MethodPost, "/api/v1/deals/"+id.String()+"/stage-checklist/items",
			api.AddChecklistItemRequest{Label: "Docs Reviewed!"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("ToggleUnknownKey", func(t *testing.T) {
		f := newFixture(t)
		f.checklist.EXPECT().GetChecklist(gomock.Any(), entity.Deal(id)).
			Return([]checklist.Item{{Key: "docs_reviewed", Label: "Docs reviewed"}}, nil)

		rec := f.do(t, http.MethodPost, "/api/v1/deals/"+id.String()+"/stage-checklist/items/nope/toggle", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_MatchChecklistToggle(t *testing.T) {
	id := uuid.New()
	f := newFixture(t)

	f.checklist.EXPECT().GetChecklist(gomock.Any(), entity.Match(id)).Return(nil, checklist.ErrNotFound)
	f.checklist.EXPECT().SaveChecklist(gomock.Any(), entity.Match(id), gomock.Any()).Return(nil)

	rec := f.do(t, http.MethodPost, "/api/v1/matches/"+id.String()+"/checklist/items/nda_sent/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []api.ChecklistItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	assert.True(t, items[0].Done)
	assert.NotNil(t, items[0].TS)
}

func TestRouter_CreateMatchDuplicate(t *testing.T) {
	f := newFixture(t)

	f.matches.EXPECT().CreateMatch(gomock.Any(), gomock.Any()).Return(match.ErrDuplicate)

	rec := f.do(t, http.MethodPost, "/api/v1/matches", api.CreateMatchRequest{
		DealID:        uuid.New(),
		BuyingPartyID: uuid.New(),
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_ContactsRequireEntityType(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/contacts?entityId="+uuid.NewString()+"&entityType=vendor", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_InternalErrorIsGeneric(t *testing.T) {
	f := newFixture(t)

	f.parties.EXPECT().ListParties(gomock.Any()).Return(nil, assert.AnError)

	rec := f.do(t, http.MethodGet, "/api/v1/buying-parties", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error\n", rec.Body.String())
}

func TestRouter_Dashboard(t *testing.T) {
	f := newFixture(t)

	f.deals.EXPECT().ListDeals(gomock.Any(), deal.ListFilter{}).Return([]*deal.Deal{
		{Revenue: decimal.NewFromInt(100), Stage: deal.StageSold},
		{Revenue: decimal.NewFromInt(300), Stage: deal.StageOnboarding},
	}, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got api.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 2, got.TotalDeals)
	assert.Equal(t, 1, got.ActiveDeals)
	assert.True(t, decimal.NewFromInt(50).Equal(got.ConversionRate))
}

func TestRouter_Import(t *testing.T) {
	f := newFixture(t)

	itx := deal.NewMockImportTx(gomock.NewController(t))
	f.deals.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), []string{"Acme", "Borealis"}).
		Return([]*deal.Deal{{CompanyName: "acme"}}, nil)
	itx.EXPECT().CreateDeals(gomock.Any(), gomock.Len(1)).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "deals.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte("Company;Revenue;Owner\nAcme;100;Dana\nBorealis;200;Sam\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got api.ImportResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 1, got.Imported)
	assert.Equal(t, []string{"Acme"}, got.Skipped)
}

func TestRouter_CORSPreflight(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/deals", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
