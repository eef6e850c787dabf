package deal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dealboard/internal/document"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=deal
type Repository interface {
	CreateDeal(ctx context.Context, d *Deal) error
	GetDeal(ctx context.Context, id uuid.UUID) (*Deal, error)
	ListDeals(ctx context.Context, filter ListFilter) ([]*Deal, error)
	// UpdateDeal writes the scalar fields of d, and the stage too when stage is
	// non-nil, in a single statement.
	UpdateDeal(ctx context.Context, d *Deal, stage *Stage) error
	UpdateStage(ctx context.Context, id uuid.UUID, stage Stage) error
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*Deal, error)

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, companyNames []string) ([]*Deal, error)
	CreateDeals(ctx context.Context, deals []*Deal) error
	Commit() error
	Rollback() error
}

// DocumentLister resolves the documents attached to a deal for the stage guard.
type DocumentLister interface {
	ListByOwner(ctx context.Context, owner entity.Ref) ([]*document.Document, error)
}

type Service struct {
	repo Repository
	docs DocumentLister
}

func NewService(repo Repository, docs DocumentLister) *Service {
	return &Service{repo: repo, docs: docs}
}

type ListFilter struct {
	Stage *Stage
}

type CreateParams struct {
	CompanyName     string
	Revenue         decimal.Decimal
	SDE             decimal.NullDecimal
	ValuationMin    decimal.NullDecimal
	ValuationMax    decimal.NullDecimal
	SDEMultiple     decimal.NullDecimal
	RevenueMultiple decimal.NullDecimal
	Commission      decimal.NullDecimal
	Priority        Priority
	Description     string
	NextStepDays    *int
	Owner           string
}

// UpdateParams carries a partial update. Nil fields are left untouched.
type UpdateParams struct {
	CompanyName     *string
	Revenue         *decimal.Decimal
	SDE             *decimal.NullDecimal
	ValuationMin    *decimal.NullDecimal
	ValuationMax    *decimal.NullDecimal
	SDEMultiple     *decimal.NullDecimal
	RevenueMultiple *decimal.NullDecimal
	Commission      *decimal.NullDecimal
	Stage           *Stage
	Priority        *Priority
	Description     *string
	NextStepDays    *int
	HealthScore     *int
	Owner           *string
}

func (p UpdateParams) hasScalars() bool {
	return p.CompanyName != nil || p.Revenue != nil || p.SDE != nil ||
		p.ValuationMin != nil || p.ValuationMax != nil || p.SDEMultiple != nil ||
		p.RevenueMultiple != nil || p.Commission != nil || p.Priority != nil ||
		p.Description != nil || p.NextStepDays != nil || p.HealthScore != nil ||
		p.Owner != nil
}

func (p CreateParams) validate() (CreateParams, error) {
	p.CompanyName = strings.TrimSpace(p.CompanyName)
	p.Owner = strings.TrimSpace(p.Owner)

	if p.CompanyName == "" {
		return p, fmt.Errorf("%w: company name is required", ErrInvalid)
	}

	if p.Owner == "" {
		return p, fmt.Errorf("%w: owner is required", ErrInvalid)
	}

	if !p.Revenue.IsPositive() {
		return p, fmt.Errorf("%w: revenue must be greater than zero", ErrInvalid)
	}

	if p.Priority == "" {
		p.Priority = PriorityMedium
	}

	if _, err := ParsePriority(string(p.Priority)); err != nil {
		return p, err
	}

	return p, nil
}

func newDeal(p CreateParams) *Deal {
	return &Deal{
		CompanyName:     p.CompanyName,
		Revenue:         p.Revenue,
		SDE:             p.SDE,
		ValuationMin:    p.ValuationMin,
		ValuationMax:    p.ValuationMax,
		SDEMultiple:     p.SDEMultiple,
		RevenueMultiple: p.RevenueMultiple,
		Commission:      p.Commission,
		Stage:           StageOnboarding,
		Priority:        p.Priority,
		Description:     strings.TrimSpace(p.Description),
		NextStepDays:    p.NextStepDays,
		HealthScore:     DefaultHealthScore,
		Owner:           p.Owner,
	}
}

// Create validates params and stores a new deal in onboarding.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Deal, error) {
	params, err := params.validate()
	if err != nil {
		return nil, err
	}

	d := newDeal(params)
	if err := s.repo.CreateDeal(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Deal, error) {
	return s.repo.GetDeal(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Deal, error) {
	return s.repo.ListDeals(ctx, filter)
}

// MoveStage moves a deal to target after checking the stage guard. Only the
// stage is written.
func (s *Service) MoveStage(ctx context.Context, id uuid.UUID, target Stage) (*Deal, error) {
	if _, err := ParseStage(string(target)); err != nil {
		return nil, err
	}

	d, err := s.repo.GetDeal(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkMove(ctx, d, target); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStage(ctx, id, target); err != nil {
		return nil, err
	}

	d.Stage = target

	return d, nil
}

func (s *Service) checkMove(ctx context.Context, d *Deal, target Stage) error {
	if d.Stage == target {
		return nil
	}

	docs, err := s.docs.ListByOwner(ctx, entity.Deal(d.ID))
	if err != nil {
		return fmt.Errorf("listing deal documents: %w", err)
	}

	if !CanMove(d.Stage, target, document.HasValuation(docs)) {
		return ErrNeedsValuation
	}

	return nil
}

// Update applies a partial update. A stage change goes through the same guard
// as MoveStage and is checked before anything is written.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Deal, error) {
	d, err := s.repo.GetDeal(ctx, id)
	if err != nil {
		return nil, err
	}

	moving := params.Stage != nil && *params.Stage != d.Stage
	if moving {
		if _, err := ParseStage(string(*params.Stage)); err != nil {
			return nil, err
		}

		if err := s.checkMove(ctx, d, *params.Stage); err != nil {
			return nil, err
		}
	}

	var stage *Stage
	if moving {
		stage = params.Stage
	}

	switch {
	case params.hasScalars():
		if err := applyUpdate(d, params); err != nil {
			return nil, err
		}

		if err := s.repo.UpdateDeal(ctx, d, stage); err != nil {
			return nil, err
		}
	case moving:
		if err := s.repo.UpdateStage(ctx, id, *stage); err != nil {
			return nil, err
		}
	}

	if moving {
		d.Stage = *stage
	}

	return d, nil
}

func applyUpdate(d *Deal, p UpdateParams) error {
	if p.CompanyName != nil {
		name := strings.TrimSpace(*p.CompanyName)
		if name == "" {
			return fmt.Errorf("%w: company name is required", ErrInvalid)
		}

		d.CompanyName = name
	}

	if p.Owner != nil {
		owner := strings.TrimSpace(*p.Owner)
		if owner == "" {
			return fmt.Errorf("%w: owner is required", ErrInvalid)
		}

		d.Owner = owner
	}

	if p.Revenue != nil {
		if !p.Revenue.IsPositive() {
			return fmt.Errorf("%w: revenue must be greater than zero", ErrInvalid)
		}

		d.Revenue = *p.Revenue
	}

	if p.Priority != nil {
		if _, err := ParsePriority(string(*p.Priority)); err != nil {
			return err
		}

		d.Priority = *p.Priority
	}

	if p.HealthScore != nil {
		if *p.HealthScore < 0 || *p.HealthScore > 100 {
			return fmt.Errorf("%w: health score must be between 0 and 100", ErrInvalid)
		}

		d.HealthScore = *p.HealthScore
	}

	if p.SDE != nil {
		d.SDE = *p.SDE
	}

	if p.ValuationMin != nil {
		d.ValuationMin = *p.ValuationMin
	}

	if p.ValuationMax != nil {
		d.ValuationMax = *p.ValuationMax
	}

	if p.SDEMultiple != nil {
		d.SDEMultiple = *p.SDEMultiple
	}

	if p.RevenueMultiple != nil {
		d.RevenueMultiple = *p.RevenueMultiple
	}

	if p.Commission != nil {
		d.Commission = *p.Commission
	}

	if p.Description != nil {
		d.Description = strings.TrimSpace(*p.Description)
	}

	if p.NextStepDays != nil {
		d.NextStepDays = p.NextStepDays
	}

	return nil
}

// SaveNotes replaces the deal's notes and returns the stored deal.
func (s *Service) SaveNotes(ctx context.Context, id uuid.UUID, notes string) (*Deal, error) {
	return s.repo.UpdateNotes(ctx, id, notes)
}

// Dashboard summarizes every deal in the pipeline.
func (s *Service) Dashboard(ctx context.Context) (Summary, error) {
	deals, err := s.repo.ListDeals(ctx, ListFilter{})
	if err != nil {
		return Summary{}, err
	}

	return Summarize(deals), nil
}

type ImportResult struct {
	Imported []*Deal
	Skipped  []CreateParams
}

// ImportBatch validates and creates deals in one transaction. Rows whose
// company already exists in the pipeline, or repeat earlier rows of the same
// batch, are skipped.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	valid := make([]CreateParams, 0, len(params))
	names := make([]string, 0, len(params))

	for i, p := range params {
		p, err := p.validate()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		valid = append(valid, p)
		names = append(names, p.CompanyName)
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	seen := make(map[string]struct{}, len(duplicates)+len(valid))
	for _, d := range duplicates {
		seen[strings.ToLower(d.CompanyName)] = struct{}{}
	}

	result := &ImportResult{}

	var deals []*Deal

	for _, p := range valid {
		key := strings.ToLower(p.CompanyName)
		if _, found := seen[key]; found {
			result.Skipped = append(result.Skipped, p)
			continue
		}

		seen[key] = struct{}{}

		deals = append(deals, newDeal(p))
	}

	if len(deals) == 0 {
		return result, nil
	}

	if err := itx.CreateDeals(ctx, deals); err != nil {
		return nil, fmt.Errorf("create deals: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	result.Imported = deals

	return result, nil
}
