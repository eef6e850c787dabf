package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/importer/sheet"
)

// BatchCreator stores parsed deals in one transaction.
type BatchCreator interface {
	ImportBatch(ctx context.Context, params []deal.CreateParams) (*deal.ImportResult, error)
}

type Service struct {
	deals    BatchCreator
	importer map[Format]Importer
}

func NewService(deals BatchCreator) *Service {
	return &Service{
		deals: deals,
		importer: map[Format]Importer{
			FormatSheet: sheet.NewParser(),
		},
	}
}

// Parse decodes r without storing anything.
func (s *Service) Parse(format Format, r io.Reader) ([]deal.CreateParams, error) {
	imp, ok := s.importer[format]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return imp.Parse(r)
}

// Create stores already parsed rows.
func (s *Service) Create(ctx context.Context, params []deal.CreateParams) (*deal.ImportResult, error) {
	return s.deals.ImportBatch(ctx, params)
}

// Import parses r and creates the deals it lists.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) (*deal.ImportResult, error) {
	params, err := s.Parse(format, r)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, params)
}
