package export

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

type fakeDocs struct {
	docs  []*document.Document
	owner entity.Ref
}

func (f *fakeDocs) ListByOwner(_ context.Context, owner entity.Ref) ([]*document.Document, error) {
	f.owner = owner
	return f.docs, nil
}

type fakeDeals map[uuid.UUID]*deal.Deal

func (f fakeDeals) Get(_ context.Context, id uuid.UUID) (*deal.Deal, error) {
	d, ok := f[id]
	if !ok {
		return nil, deal.ErrNotFound
	}

	return d, nil
}

func newDocumentServer(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/nda":
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="NDA signed.pdf"`)
			w.Write([]byte("nda content"))
		case "/deck":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("deck content"))
		case "/scan":
			w.Header().Set("Content-Disposition", `attachment; filename="scan.pdf"`)
			w.Write([]byte("scan content"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)

	return ts
}

func TestService_Export(t *testing.T) {
	ts := newDocumentServer(t)
	dir := t.TempDir()

	d := &deal.Deal{
		ID:          uuid.New(),
		CompanyName: "Acme Widgets",
		Stage:       deal.StageValuation,
		Revenue:     decimal.NewFromInt(1_250_000),
		Owner:       "Dana",
	}

	docs := &fakeDocs{docs: []*document.Document{
		{ID: uuid.New(), Name: "NDA", Status: document.StatusSigned, URL: ts.URL + "/nda"},
		{ID: uuid.New(), Name: "Valuation Deck", Status: document.StatusDraft, URL: ts.URL + "/deck"},
		{ID: uuid.New(), Name: "Scan A", Status: document.StatusSent, URL: ts.URL + "/scan"},
		{ID: uuid.New(), Name: "Scan B", Status: document.StatusSent, URL: ts.URL + "/scan"},
		{ID: uuid.New(), Name: "CIM", Status: document.StatusDraft},
	}}

	svc := NewService(docs, fakeDeals{d.ID: d}, "test-token")

	bundle, err := svc.Export(context.Background(), d.ID, dir)
	require.NoError(t, err)
	require.Len(t, bundle.Items, 5)

	assert.Equal(t, entity.Deal(d.ID), docs.owner)
	assert.Equal(t, "NDA_signed.pdf", filepath.Base(bundle.Items[0].FilePath))
	assert.Equal(t, "Valuation_Deck.pdf", filepath.Base(bundle.Items[1].FilePath))
	assert.Equal(t, "scan.pdf", filepath.Base(bundle.Items[2].FilePath))
	assert.Equal(t, "scan_2.pdf", filepath.Base(bundle.Items[3].FilePath))
	assert.Empty(t, bundle.Items[4].FilePath)

	content, err := os.ReadFile(bundle.Items[1].FilePath)
	require.NoError(t, err)
	assert.Equal(t, "deck content", string(content))

	summary, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	require.NoError(t, err)
	assert.Equal(t, Summary(bundle), string(summary))
}

func TestService_Export_DownloadFails(t *testing.T) {
	ts := newDocumentServer(t)

	d := &deal.Deal{ID: uuid.New(), CompanyName: "Acme"}
	docs := &fakeDocs{docs: []*document.Document{
		{ID: uuid.New(), Name: "Missing", URL: ts.URL + "/missing"},
	}}

	svc := NewService(docs, fakeDeals{d.ID: d}, "test-token")

	_, err := svc.Export(context.Background(), d.ID, t.TempDir())
	assert.ErrorContains(t, err, "unexpected status code 404")
}

func TestService_Export_UnknownDeal(t *testing.T) {
	svc := NewService(&fakeDocs{}, fakeDeals{}, "")

	_, err := svc.Export(context.Background(), uuid.New(), t.TempDir())
	assert.ErrorIs(t, err, deal.ErrNotFound)
}

func TestSummary(t *testing.T) {
	b := &Bundle{
		Deal: &deal.Deal{
			CompanyName:  "Acme Widgets",
			Stage:        deal.StageValuation,
			Owner:        "Dana",
			Revenue:      decimal.NewFromInt(1_250_000),
			ValuationMin: decimal.NewNullDecimal(decimal.NewFromInt(3_000_000)),
		},
		Items: []Item{
			{
				Document: &document.Document{Name: "NDA", Status: document.StatusSigned},
				FilePath: "/tmp/export/NDA_signed.pdf",
			},
			{
				Document: &document.Document{Name: "Valuation Workbook.xlsx", Status: document.StatusDraft},
			},
		},
	}

	g := goldie.New(t)
	g.Assert(t, "summary", []byte(Summary(b)))
}

func TestWriteZip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SummaryFile), []byte("summary"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, WriteZip(&buf, dir))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	got := map[string]string{}

	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)

		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)

		got[f.Name] = string(body)
	}

	assert.Equal(t, map[string]string{"a.pdf": "a", SummaryFile: "summary"}, got)
}
