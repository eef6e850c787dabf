package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Columns is the deals column list in ScanDeal order.
const Columns = `
	id, company_name, revenue, sde, valuation_min, valuation_max, sde_multiple,
	revenue_multiple, commission, stage, priority, description, notes, next_step_days,
	touches, age_in_stage, health_score, owner, created_at, updated_at
`

// ScanDeal reads a row in Columns order. Other stores use it for joins.
func ScanDeal(s scanner) (*deal.Deal, error) {
	var (
		d                  deal.Deal
		stageStr, priority string
		description        sql.NullString
		nextStepDays       sql.NullInt64
	)

	if err := s.Scan(
		&d.ID, &d.CompanyName, &d.Revenue, &d.SDE, &d.ValuationMin, &d.ValuationMax, &d.SDEMultiple,
		&d.RevenueMultiple, &d.Commission, &stageStr, &priority, &description, &d.Notes, &nextStepDays,
		&d.Touches, &d.AgeInStage, &d.HealthScore, &d.Owner, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Stage = deal.Stage(stageStr)
	d.Priority = deal.Priority(priority)
	d.Description = description.String

	if nextStepDays.Valid {
		d.NextStepDays = new(int(nextStepDays.Int64))
	}

	return &d, nil
}

const insertDeal = `
	INSERT INTO deals (
		company_name, revenue, sde, valuation_min, valuation_max, sde_multiple,
		revenue_multiple, commission, stage, priority, description, next_step_days,
		health_score, owner, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13, $14, NOW())
	RETURNING id, created_at
`

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, q rowQuerier, d *deal.Deal) error {
	return q.QueryRowContext(ctx, insertDeal,
		d.CompanyName,
		d.Revenue,
		d.SDE,
		d.ValuationMin,
		d.ValuationMax,
		d.SDEMultiple,
		d.RevenueMultiple,
		d.Commission,
		d.Stage,
		d.Priority,
		d.Description,
		d.NextStepDays,
		d.HealthScore,
		d.Owner,
	).Scan(&d.ID, &d.CreatedAt)
}

func (s *Store) CreateDeal(ctx context.Context, d *deal.Deal) error {
	if err := insert(ctx, s.db, d); err != nil {
		return fmt.Errorf("creating deal: %w", err)
	}

	return nil
}

func (s *Store) GetDeal(ctx context.Context, id uuid.UUID) (*deal.Deal, error) {
	query := `SELECT ` + Columns + ` FROM deals WHERE id = $1`

	d, err := ScanDeal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, deal.ErrNotFound
		}

		return nil, fmt.Errorf("getting deal: %w", err)
	}

	return d, nil
}

func (s *Store) ListDeals(ctx context.Context, filter deal.ListFilter) ([]*deal.Deal, error) {
	query := `SELECT ` + Columns + ` FROM deals`

	var args []any

	if filter.Stage != nil {
		query += ` WHERE stage = $1`

		args = append(args, *filter.Stage)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	defer rows.Close()

	var deals []*deal.Deal

	for rows.Next() {
		d, err := ScanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning deal: %w", err)
		}

		deals = append(deals, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deals: %w", err)
	}

	return deals, nil
}

// UpdateDeal writes every scalar column except notes. The stage column is
// only written when stage is non-nil.
func (s *Store) UpdateDeal(ctx context.Context, d *deal.Deal, stage *deal.Stage) error {
	query := `
		UPDATE deals
		SET company_name = $1, revenue = $2, sde = $3, valuation_min = $4, valuation_max = $5,
			sde_multiple = $6, revenue_multiple = $7, commission = $8, priority = $9,
			description = NULLIF($10, ''), next_step_days = $11, health_score = $12, owner = $13,
			stage = COALESCE($15, stage), updated_at = NOW()
		WHERE id = $14
		RETURNING updated_at
	`

	var stageArg sql.NullString
	if stage != nil {
		stageArg = sql.NullString{String: string(*stage), Valid: true}
	}

	err := s.db.QueryRowContext(ctx, query,
		d.CompanyName,
		d.Revenue,
		d.SDE,
		d.ValuationMin,
		d.ValuationMax,
		d.SDEMultiple,
		d.RevenueMultiple,
		d.Commission,
		d.Priority,
		d.Description,
		d.NextStepDays,
		d.HealthScore,
		d.Owner,
		d.ID,
		stageArg,
	).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return deal.ErrNotFound
		}

		return fmt.Errorf("updating deal: %w", err)
	}

	return nil
}

func (s *Store) UpdateStage(ctx context.Context, id uuid.UUID, stage deal.Stage) error {
	query := `UPDATE deals SET stage = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, stage, id)
	if err != nil {
		return fmt.Errorf("updating stage: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return deal.ErrNotFound
	}

	return nil
}

func (s *Store) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*deal.Deal, error) {
	query := `UPDATE deals SET notes = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + Columns

	d, err := ScanDeal(s.db.QueryRowContext(ctx, query, notes, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, deal.ErrNotFound
		}

		return nil, fmt.Errorf("updating notes: %w", err)
	}

	return d, nil
}

// importLockKey is the advisory lock held for the lifetime of a CSV import.
const importLockKey int64 = 0x6465616c73

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (deal.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, companyNames []string) ([]*deal.Deal, error) {
	if len(companyNames) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(companyNames))
	for i, n := range companyNames {
		lowered[i] = strings.ToLower(n)
	}

	query := `SELECT ` + Columns + ` FROM deals WHERE LOWER(company_name) = ANY($1)`

	rows, err := itx.tx.QueryContext(ctx, query, lowered)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*deal.Deal

	for rows.Next() {
		d, err := ScanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning deal: %w", err)
		}

		duplicates = append(duplicates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateDeals(ctx context.Context, deals []*deal.Deal) error {
	for _, d := range deals {
		if err := insert(ctx, itx.tx, d); err != nil {
			return fmt.Errorf("creating deal %q: %w", d.CompanyName, err)
		}
	}

	return nil
}
