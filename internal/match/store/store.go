package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	dealstore "github.com/MrJamesThe3rd/dealboard/internal/deal/store"
	"github.com/MrJamesThe3rd/dealboard/internal/match"
	partystore "github.com/MrJamesThe3rd/dealboard/internal/party/store"
)

// Postgres SQLSTATE codes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
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

// joinScanner prepends the match destinations so a joined row can be handed
// to another store's scan function.
type joinScanner struct {
	s    scanner
	head []any
}

func (j joinScanner) Scan(dest ...any) error {
	return j.s.Scan(append(j.head, dest...)...)
}

const selectMatchColumns = `id, deal_id, buying_party_id, target_acquisition, budget, status, stage, created_at`

func qualify(alias, columns string) string {
	cols := strings.Split(columns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}

	return strings.Join(cols, ", ")
}

type matchDest struct {
	m        match.Match
	target   sql.NullInt64
	stageStr string
}

func (d *matchDest) fields() []any {
	return []any{
		&d.m.ID, &d.m.DealID, &d.m.BuyingPartyID, &d.target, &d.m.Budget, &d.m.Status, &d.stageStr, &d.m.CreatedAt,
	}
}

func (d *matchDest) match() *match.Match {
	m := d.m
	m.Stage = match.Stage(d.stageStr)

	if d.target.Valid {
		m.TargetAcquisition = new(int(d.target.Int64))
	}

	return &m
}

func scanMatch(s scanner) (*match.Match, error) {
	var d matchDest
	if err := s.Scan(d.fields()...); err != nil {
		return nil, err
	}

	return d.match(), nil
}

func (s *Store) CreateMatch(ctx context.Context, m *match.Match) error {
	query := `
		INSERT INTO deal_buyer_matches (deal_id, buying_party_id, target_acquisition, budget, status, stage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.DealID, m.BuyingPartyID, m.TargetAcquisition, m.Budget, m.Status, m.Stage,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case codeUniqueViolation:
				return match.ErrDuplicate
			case codeForeignKeyViolation:
				return fmt.Errorf("%w: unknown deal or buying party", match.ErrInvalid)
			}
		}

		return fmt.Errorf("creating match: %w", err)
	}

	return nil
}

func (s *Store) GetMatch(ctx context.Context, id uuid.UUID) (*match.Match, error) {
	query := `SELECT ` + selectMatchColumns + ` FROM deal_buyer_matches WHERE id = $1`

	m, err := scanMatch(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, match.ErrNotFound
		}

		return nil, fmt.Errorf("getting match: %w", err)
	}

	return m, nil
}

func (s *Store) ListMatches(ctx context.Context, filter match.ListFilter) ([]*match.Match, error) {
	query := `SELECT ` + selectMatchColumns + ` FROM deal_buyer_matches WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.DealID != nil {
		query += fmt.Sprintf(" AND deal_id = $%d", argIdx)

		args = append(args, *filter.DealID)
		argIdx++
	}

	if filter.PartyID != nil {
		query += fmt.Sprintf(" AND buying_party_id = $%d", argIdx)

		args = append(args, *filter.PartyID)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close()

	var matches []*match.Match

	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}

		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matches: %w", err)
	}

	return matches, nil
}

func (s *Store) UpdateMatch(ctx context.Context, m *match.Match) error {
	query := `UPDATE deal_buyer_matches SET stage = $1, status = $2 WHERE id = $3`

	res, err := s.db.ExecContext(ctx, query, m.Stage, m.Status, m.ID)
	if err != nil {
		return fmt.Errorf("updating match: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return match.ErrNotFound
	}

	return nil
}

func (s *Store) ListBuyers(ctx context.Context, dealID uuid.UUID) ([]*match.BuyerRow, error) {
	query := `SELECT ` + qualify("m", selectMatchColumns) + `, ` + qualify("p", partystore.Columns) + `
		FROM deal_buyer_matches m
		JOIN buying_parties p ON p.id = m.buying_party_id
		WHERE m.deal_id = $1
		ORDER BY m.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, dealID)
	if err != nil {
		return nil, fmt.Errorf("listing deal buyers: %w", err)
	}
	defer rows.Close()

	var out []*match.BuyerRow

	for rows.Next() {
		var d matchDest

		p, err := partystore.ScanParty(joinScanner{s: rows, head: d.fields()})
		if err != nil {
			return nil, fmt.Errorf("scanning deal buyer: %w", err)
		}

		out = append(out, &match.BuyerRow{Match: d.match(), Party: p})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deal buyers: %w", err)
	}

	return out, nil
}

func (s *Store) ListPartyDeals(ctx context.Context, partyID uuid.UUID) ([]*match.DealRow, error) {
	query := `SELECT ` + qualify("m", selectMatchColumns) + `, ` + qualify("d", dealstore.Columns) + `
		FROM deal_buyer_matches m
		JOIN deals d ON d.id = m.deal_id
		WHERE m.buying_party_id = $1
		ORDER BY m.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("listing party deals: %w", err)
	}
	defer rows.Close()

	var out []*match.DealRow

	for rows.Next() {
		var d matchDest

		dl, err := dealstore.ScanDeal(joinScanner{s: rows, head: d.fields()})
		if err != nil {
			return nil, fmt.Errorf("scanning party deal: %w", err)
		}

		out = append(out, &match.DealRow{Match: d.match(), Deal: dl})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating party deals: %w", err)
	}

	return out, nil
}
