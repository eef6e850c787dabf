package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/party"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Columns is the buying_parties column list in ScanParty order.
const Columns = `
	id, name, target_acquisition_min, target_acquisition_max, budget_min, budget_max,
	timeline, status, notes, target_industries, operational, created_at
`

func ScanParty(s scanner) (*party.BuyingParty, error) {
	var (
		p          party.BuyingParty
		minTarget  sql.NullInt64
		maxTarget  sql.NullInt64
		timeline   sql.NullString
		industries []byte
	)

	if err := s.Scan(
		&p.ID, &p.Name, &minTarget, &maxTarget, &p.BudgetMin, &p.BudgetMax,
		&timeline, &p.Status, &p.Notes, &industries, &p.Operational, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	if minTarget.Valid {
		p.TargetAcquisitionMin = new(int(minTarget.Int64))
	}

	if maxTarget.Valid {
		p.TargetAcquisitionMax = new(int(maxTarget.Int64))
	}

	p.Timeline = timeline.String

	if err := json.Unmarshal(industries, &p.TargetIndustries); err != nil {
		return nil, fmt.Errorf("decoding target industries: %w", err)
	}

	return &p, nil
}

func encodeIndustries(in []string) ([]byte, error) {
	if in == nil {
		in = []string{}
	}

	return json.Marshal(in)
}

func (s *Store) CreateParty(ctx context.Context, p *party.BuyingParty) error {
	industries, err := encodeIndustries(p.TargetIndustries)
	if err != nil {
		return fmt.Errorf("encoding target industries: %w", err)
	}

	query := `
		INSERT INTO buying_parties (
			name, target_acquisition_min, target_acquisition_max, budget_min, budget_max,
			timeline, status, target_industries, operational, created_at
		)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, NOW())
		RETURNING id, notes, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		p.Name,
		p.TargetAcquisitionMin,
		p.TargetAcquisitionMax,
		p.BudgetMin,
		p.BudgetMax,
		p.Timeline,
		p.Status,
		industries,
		p.Operational,
	).Scan(&p.ID, &p.Notes, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating buying party: %w", err)
	}

	return nil
}

func (s *Store) GetParty(ctx context.Context, id uuid.UUID) (*party.BuyingParty, error) {
	query := `SELECT ` + Columns + ` FROM buying_parties WHERE id = $1`

	p, err := ScanParty(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, party.ErrNotFound
		}

		return nil, fmt.Errorf("getting buying party: %w", err)
	}

	return p, nil
}

func (s *Store) ListParties(ctx context.Context) ([]*party.BuyingParty, error) {
	query := `SELECT ` + Columns + ` FROM buying_parties ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing buying parties: %w", err)
	}
	defer rows.Close()

	var parties []*party.BuyingParty

	for rows.Next() {
		p, err := ScanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning buying party: %w", err)
		}

		parties = append(parties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating buying parties: %w", err)
	}

	return parties, nil
}

func (s *Store) UpdateParty(ctx context.Context, p *party.BuyingParty) error {
	industries, err := encodeIndustries(p.TargetIndustries)
	if err != nil {
		return fmt.Errorf("encoding target industries: %w", err)
	}

	query := `
		UPDATE buying_parties
		SET name = $1, target_acquisition_min = $2, target_acquisition_max = $3,
			budget_min = $4, budget_max = $5, timeline = NULLIF($6, ''), status = $7,
			target_industries = $8, operational = $9
		WHERE id = $10
	`

	res, err := s.db.ExecContext(ctx, query,
		p.Name,
		p.TargetAcquisitionMin,
		p.TargetAcquisitionMax,
		p.BudgetMin,
		p.BudgetMax,
		p.Timeline,
		p.Status,
		industries,
		p.Operational,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating buying party: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return party.ErrNotFound
	}

	return nil
}

func (s *Store) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*party.BuyingParty, error) {
	query := `UPDATE buying_parties SET notes = $1 WHERE id = $2 RETURNING ` + Columns

	p, err := ScanParty(s.db.QueryRowContext(ctx, query, notes, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, party.ErrNotFound
		}

		return nil, fmt.Errorf("updating buying party notes: %w", err)
	}

	return p, nil
}
