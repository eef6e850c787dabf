package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/importer"
)

type batchRecorder struct {
	got []deal.CreateParams
}

func (b *batchRecorder) ImportBatch(_ context.Context, params []deal.CreateParams) (*deal.ImportResult, error) {
	b.got = params
	return &deal.ImportResult{Skipped: params[:1]}, nil
}

func TestService_Import(t *testing.T) {
	rec := &batchRecorder{}
	svc := importer.NewService(rec)

	csv := "Company;Revenue;Owner\nAcme;100;Dana\nBorealis;200;Sam\n"

	res, err := svc.Import(context.Background(), importer.FormatSheet, strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, rec.got, 2)
	assert.Equal(t, "Borealis", rec.got[1].CompanyName)
	assert.Len(t, res.Skipped, 1)
}

func TestService_Import_UnknownFormat(t *testing.T) {
	rec := &batchRecorder{}
	svc := importer.NewService(rec)

	_, err := svc.Import(context.Background(), "xlsx", strings.NewReader(""))
	assert.ErrorContains(t, err, "unknown format")
	assert.Nil(t, rec.got)
}
