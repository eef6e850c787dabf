package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/document"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
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

const selectDocumentColumns = `id, deal_id, buying_party_id, name, status, url, created_at`

func scanDocument(s scanner) (*document.Document, error) {
	var (
		doc             document.Document
		dealID, partyID *uuid.UUID
		statusStr       string
		url             sql.NullString
	)

	if err := s.Scan(&doc.ID, &dealID, &partyID, &doc.Name, &statusStr, &url, &doc.CreatedAt); err != nil {
		return nil, err
	}

	owner, err := entity.FromColumns(dealID, partyID)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.ID, err)
	}

	doc.Owner = owner
	doc.Status = document.Status(statusStr)
	doc.URL = url.String

	return &doc, nil
}

func (s *Store) CreateDocument(ctx context.Context, doc *document.Document) error {
	dealID, partyID, err := doc.Owner.Columns()
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}

	query := `
		INSERT INTO documents (deal_id, buying_party_id, name, status, url, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query, dealID, partyID, doc.Name, doc.Status, doc.URL).
		Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}

	return nil
}

func (s *Store) GetDocument(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	query := `SELECT ` + selectDocumentColumns + ` FROM documents WHERE id = $1`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.ErrNotFound
		}

		return nil, fmt.Errorf("getting document: %w", err)
	}

	return doc, nil
}

func (s *Store) ListDocuments(ctx context.Context, filter document.ListFilter) ([]*document.Document, error) {
	query := `SELECT ` + selectDocumentColumns + ` FROM documents`

	var args []any

	if filter.EntityID != nil {
		query += ` WHERE deal_id = $1 OR buying_party_id = $1`

		args = append(args, *filter.EntityID)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*document.Document

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status document.Status) error {
	res, err := s.db.ExecContext(ctx, `UPDATE documents SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("updating document status: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return document.ErrNotFound
	}

	return nil
}
