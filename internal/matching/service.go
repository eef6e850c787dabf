// Package matching suggests buying parties for a deal.
package matching

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/party"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindCandidates returns the parties whose budget range covers amount and
	// that are not yet matched to the deal.
	FindCandidates(ctx context.Context, dealID uuid.UUID, amount decimal.Decimal) ([]*party.BuyingParty, error)
}

type DealGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*deal.Deal, error)
}

type Service struct {
	repo  Repository
	deals DealGetter
}

func NewService(repo Repository, deals DealGetter) *Service {
	return &Service{repo: repo, deals: deals}
}

// Suggest lists unmatched parties that can afford the deal.
func (s *Service) Suggest(ctx context.Context, dealID uuid.UUID) ([]*party.BuyingParty, error) {
	d, err := s.deals.Get(ctx, dealID)
	if err != nil {
		return nil, err
	}

	return s.repo.FindCandidates(ctx, dealID, TargetAmount(d))
}

// TargetAmount is the price a buyer must be able to pay: the midpoint of the
// valuation range, the single valuation bound when only one is set, or the
// revenue when the deal has no valuation yet.
func TargetAmount(d *deal.Deal) decimal.Decimal {
	switch {
	case d.ValuationMin.Valid && d.ValuationMax.Valid:
		return d.ValuationMin.Decimal.Add(d.ValuationMax.Decimal).Div(decimal.NewFromInt(2))
	case d.ValuationMin.Valid:
		return d.ValuationMin.Decimal
	case d.ValuationMax.Valid:
		return d.ValuationMax.Decimal
	}

	return d.Revenue
}
