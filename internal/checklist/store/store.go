package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/dealboard/internal/checklist"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// itemRecord is the JSON shape of one item inside the items blob.
type itemRecord struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Done  bool       `json:"done"`
	Note  string     `json:"note,omitempty"`
	TS    *time.Time `json:"ts,omitempty"`
}

func (s *Store) GetChecklist(ctx context.Context, owner entity.Ref) ([]checklist.Item, error) {
	query := `SELECT items FROM checklists WHERE owner_type = $1 AND owner_id = $2`

	var raw []byte

	err := s.db.QueryRowContext(ctx, query, owner.Kind.String(), owner.ID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, checklist.ErrNotFound
		}

		return nil, fmt.Errorf("getting checklist: %w", err)
	}

	var records []itemRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding checklist %s: %w", owner, err)
	}

	items := make([]checklist.Item, len(records))
	for i, r := range records {
		items[i] = checklist.Item{Key: r.Key, Label: r.Label, Done: r.Done, Note: r.Note, TS: r.TS}
	}

	return items, nil
}

// SaveChecklist replaces the owner's whole sequence.
func (s *Store) SaveChecklist(ctx context.Context, owner entity.Ref, items []checklist.Item) error {
	records := make([]itemRecord, len(items))
	for i, it := range items {
		records[i] = itemRecord{Key: it.Key, Label: it.Label, Done: it.Done, Note: it.Note, TS: it.TS}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding checklist: %w", err)
	}

	query := `
		INSERT INTO checklists (owner_type, owner_id, items, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (owner_type, owner_id) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, owner.Kind.String(), owner.ID, raw); err != nil {
		return fmt.Errorf("saving checklist: %w", err)
	}

	return nil
}
