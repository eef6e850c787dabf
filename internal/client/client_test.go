package client_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/client"
	"github.com/MrJamesThe3rd/dealboard/internal/deal"
)

func newClient(t *testing.T, h http.HandlerFunc) *client.Client {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return client.New(ts.URL+"/", time.Second)
}

func TestClient_MoveStage(t *testing.T) {
	id := uuid.New()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/deals/"+id.String()+"/stage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.MoveStageRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, deal.StageValuation, req.Stage)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.Deal{ID: id, Stage: deal.StageValuation})
	})

	d, err := c.MoveStage(t.Context(), id, deal.StageValuation)
	require.NoError(t, err)
	assert.Equal(t, deal.StageValuation, d.Stage)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"NeedsValuation", http.StatusUnprocessableEntity, "Needs Valuation", deal.ErrNeedsValuation},
		{"NotFound", http.StatusNotFound, "deal not found", client.ErrNotFound},
		{"Invalid", http.StatusBadRequest, "invalid stage", client.ErrInvalid},
		{"Conflict", http.StatusConflict, "duplicate checklist key", client.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, tt.body, tt.status)
			})

			_, err := c.MoveStage(t.Context(), uuid.New(), deal.StageSold)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var se *client.StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.body, se.Message)
		})
	}
}

func TestClient_ServerErrorHasNoSentinel(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := c.ListDeals(t.Context())
	require.Error(t, err)
	assert.NotErrorIs(t, err, client.ErrNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_SaveDealNotes(t *testing.T) {
	id := uuid.New()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"notes":"call back tuesday"}`, string(body))

		json.NewEncoder(w).Encode(api.Deal{ID: id, Notes: "call back tuesday"})
	})

	d, err := c.SaveDealNotes(t.Context(), id, "call back tuesday")
	require.NoError(t, err)
	assert.Equal(t, "call back tuesday", d.Notes)
}

func TestClient_ToggleStageItemEscapesKey(t *testing.T) {
	id := uuid.New()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/deals/"+id.String()+"/stage-checklist/items/docs_reviewed/toggle", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		json.NewEncoder(w).Encode([]api.ChecklistItem{{Key: "docs_reviewed", Done: true}})
	})

	items, err := c.ToggleStageItem(t.Context(), id, "docs_reviewed")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Done)
}

func TestClient_Import(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/import", r.URL.Path)
		assert.Equal(t, "sheet", r.FormValue("format"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, "pipeline.csv", hdr.Filename)

		body, _ := io.ReadAll(f)
		assert.Equal(t, "company,revenue,owner\n", string(body))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(api.ImportResult{Imported: 1, Skipped: []string{"Acme"}})
	})

	res, err := c.Import(t.Context(), "sheet", "pipeline.csv", strings.NewReader("company,revenue,owner\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, []string{"Acme"}, res.Skipped)
}

func TestClient_ExportDeal(t *testing.T) {
	id := uuid.New()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/deals/"+id.String()+"/export", r.URL.Path)

		w.Header().Set("Content-Disposition", `attachment; filename="dataroom_acme_20261019.zip"`)
		w.Write([]byte("PK"))
	})

	var buf bytes.Buffer

	name, err := c.ExportDeal(t.Context(), id, &buf)
	require.NoError(t, err)
	assert.Equal(t, "dataroom_acme_20261019.zip", name)
	assert.Equal(t, "PK", buf.String())
}

func TestClient_ExportDealNotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "deal not found", http.StatusNotFound)
	})

	var buf bytes.Buffer

	_, err := c.ExportDeal(t.Context(), uuid.New(), &buf)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Zero(t, buf.Len())
}
