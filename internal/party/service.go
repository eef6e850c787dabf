package party

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=party
type Repository interface {
	CreateParty(ctx context.Context, p *BuyingParty) error
	GetParty(ctx context.Context, id uuid.UUID) (*BuyingParty, error)
	ListParties(ctx context.Context) ([]*BuyingParty, error)
	UpdateParty(ctx context.Context, p *BuyingParty) error
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*BuyingParty, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name                 string
	TargetAcquisitionMin *int
	TargetAcquisitionMax *int
	BudgetMin            decimal.NullDecimal
	BudgetMax            decimal.NullDecimal
	Timeline             string
	Status               string
	TargetIndustries     []string
	Operational          bool
}

// UpdateParams carries a partial update. Nil fields are left untouched.
type UpdateParams struct {
	Name                 *string
	TargetAcquisitionMin *int
	TargetAcquisitionMax *int
	BudgetMin            *decimal.NullDecimal
	BudgetMax            *decimal.NullDecimal
	Timeline             *string
	Status               *string
	TargetIndustries     []string
	Operational          *bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*BuyingParty, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	status := strings.TrimSpace(params.Status)
	if status == "" {
		status = DefaultStatus
	}

	p := &BuyingParty{
		Name:                 name,
		TargetAcquisitionMin: params.TargetAcquisitionMin,
		TargetAcquisitionMax: params.TargetAcquisitionMax,
		BudgetMin:            params.BudgetMin,
		BudgetMax:            params.BudgetMax,
		Timeline:             strings.TrimSpace(params.Timeline),
		Status:               status,
		TargetIndustries:     cleanIndustries(params.TargetIndustries),
		Operational:          params.Operational,
	}
	if err := validateBudget(p); err != nil {
		return nil, err
	}

	if err := s.repo.CreateParty(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*BuyingParty, error) {
	return s.repo.GetParty(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*BuyingParty, error) {
	return s.repo.ListParties(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*BuyingParty, error) {
	p, err := s.repo.GetParty(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalid)
		}

		p.Name = name
	}

	if params.TargetAcquisitionMin != nil {
		p.TargetAcquisitionMin = params.TargetAcquisitionMin
	}

	if params.TargetAcquisitionMax != nil {
		p.TargetAcquisitionMax = params.TargetAcquisitionMax
	}

	if params.BudgetMin != nil {
		p.BudgetMin = *params.BudgetMin
	}

	if params.BudgetMax != nil {
		p.BudgetMax = *params.BudgetMax
	}

	if params.Timeline != nil {
		p.Timeline = strings.TrimSpace(*params.Timeline)
	}

	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		p.Status = strings.TrimSpace(*params.Status)
	}

	if params.TargetIndustries != nil {
		p.TargetIndustries = cleanIndustries(params.TargetIndustries)
	}

	if params.Operational != nil {
		p.Operational = *params.Operational
	}

	if err := validateBudget(p); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateParty(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// SaveNotes replaces the party's notes and returns the stored party.
func (s *Service) SaveNotes(ctx context.Context, id uuid.UUID, notes string) (*BuyingParty, error) {
	return s.repo.UpdateNotes(ctx, id, notes)
}

func validateBudget(p *BuyingParty) error {
	if p.BudgetMin.Valid && p.BudgetMax.Valid && p.BudgetMin.Decimal.GreaterThan(p.BudgetMax.Decimal) {
		return fmt.Errorf("%w: budget minimum exceeds maximum", ErrInvalid)
	}

	return nil
}

func cleanIndustries(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))

	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}

		seen[k] = struct{}{}

		out = append(out, s)
	}

	return out
}
