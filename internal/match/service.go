package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dealboard/internal/party"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=match
type Repository interface {
	CreateMatch(ctx context.Context, m *Match) error
	GetMatch(ctx context.Context, id uuid.UUID) (*Match, error)
	ListMatches(ctx context.Context, filter ListFilter) ([]*Match, error)
	UpdateMatch(ctx context.Context, m *Match) error

	ListBuyers(ctx context.Context, dealID uuid.UUID) ([]*BuyerRow, error)
	ListPartyDeals(ctx context.Context, partyID uuid.UUID) ([]*DealRow, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	DealID  *uuid.UUID
	PartyID *uuid.UUID
}

type CreateParams struct {
	DealID            uuid.UUID
	BuyingPartyID     uuid.UUID
	TargetAcquisition *int
	Budget            decimal.NullDecimal
	Status            string
	Stage             Stage
}

type UpdateParams struct {
	Stage  *Stage
	Status *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Match, error) {
	if params.DealID == uuid.Nil || params.BuyingPartyID == uuid.Nil {
		return nil, fmt.Errorf("%w: deal and buying party are required", ErrInvalid)
	}

	m := &Match{
		DealID:            params.DealID,
		BuyingPartyID:     params.BuyingPartyID,
		TargetAcquisition: params.TargetAcquisition,
		Budget:            params.Budget,
		Status:            strings.TrimSpace(params.Status),
		Stage:             params.Stage,
	}

	if m.Status == "" {
		m.Status = DefaultStatus
	}

	if m.Stage == "" {
		m.Stage = StageNew
	}

	if _, err := ParseStage(string(m.Stage)); err != nil {
		return nil, err
	}

	if err := s.repo.CreateMatch(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Match, error) {
	return s.repo.GetMatch(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Match, error) {
	return s.repo.ListMatches(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Match, error) {
	m, err := s.repo.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Stage != nil {
		if _, err := ParseStage(string(*params.Stage)); err != nil {
			return nil, err
		}

		m.Stage = *params.Stage
	}

	if params.Status != nil {
		status := strings.TrimSpace(*params.Status)
		if status == "" {
			return nil, fmt.Errorf("%w: status must not be empty", ErrInvalid)
		}

		m.Status = status
	}

	if err := s.repo.UpdateMatch(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// Buyers lists the buying parties matched to a deal.
func (s *Service) Buyers(ctx context.Context, dealID uuid.UUID) ([]*BuyerRow, error) {
	return s.repo.ListBuyers(ctx, dealID)
}

// BuyersWithNDA lists the matched parties that have signed an NDA for the deal.
func (s *Service) BuyersWithNDA(ctx context.Context, dealID uuid.UUID) ([]*party.BuyingParty, error) {
	rows, err := s.repo.ListBuyers(ctx, dealID)
	if err != nil {
		return nil, err
	}

	parties := make([]*party.BuyingParty, 0, len(rows))

	for _, r := range rows {
		if r.Match.Stage.HasSignedNDA() {
			parties = append(parties, r.Party)
		}
	}

	return parties, nil
}

// PartyDeals lists the deals a buying party is matched to.
func (s *Service) PartyDeals(ctx context.Context, partyID uuid.UUID) ([]*DealRow, error) {
	return s.repo.ListPartyDeals(ctx, partyID)
}
