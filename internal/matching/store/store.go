package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dealboard/internal/party"
	partystore "github.com/MrJamesThe3rd/dealboard/internal/party/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCandidates(ctx context.Context, dealID uuid.UUID, amount decimal.Decimal) ([]*party.BuyingParty, error) {
	query := `
		SELECT ` + partystore.Columns + `
		FROM buying_parties
		WHERE (budget_min IS NOT NULL OR budget_max IS NOT NULL)
			AND (budget_min IS NULL OR budget_min <= $2)
			AND (budget_max IS NULL OR budget_max >= $2)
			AND NOT EXISTS (
				SELECT 1 FROM deal_buyer_matches m
				WHERE m.deal_id = $1 AND m.buying_party_id = buying_parties.id
			)
		ORDER BY budget_max ASC NULLS LAST, name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, dealID, amount)
	if err != nil {
		return nil, fmt.Errorf("finding candidates: %w", err)
	}
	defer rows.Close()

	var parties []*party.BuyingParty

	for rows.Next() {
		p, err := partystore.ScanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}

		parties = append(parties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}

	return parties, nil
}
