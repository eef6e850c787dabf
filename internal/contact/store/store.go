package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/contact"
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

const selectContactColumns = `id, name, role, email, phone, entity_id, entity_type`

func scanContact(s scanner) (*contact.Contact, error) {
	var (
		c            contact.Contact
		email, phone sql.NullString
		entityID     uuid.UUID
		entityType   string
	)

	if err := s.Scan(&c.ID, &c.Name, &c.Role, &email, &phone, &entityID, &entityType); err != nil {
		return nil, err
	}

	kind, err := entity.ParseKind(entityType)
	if err != nil {
		return nil, fmt.Errorf("contact %s: %w", c.ID, err)
	}

	c.Email = email.String
	c.Phone = phone.String
	c.Owner = entity.Ref{Kind: kind, ID: entityID}

	return &c, nil
}

func (s *Store) CreateContact(ctx context.Context, c *contact.Contact) error {
	query := `
		INSERT INTO contacts (name, role, email, phone, entity_id, entity_type)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Name, c.Role, c.Email, c.Phone, c.Owner.ID, c.Owner.Kind.String(),
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("creating contact: %w", err)
	}

	return nil
}

func (s *Store) GetContact(ctx context.Context, id uuid.UUID) (*contact.Contact, error) {
	query := `SELECT ` + selectContactColumns + ` FROM contacts WHERE id = $1`

	c, err := scanContact(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contact.ErrNotFound
		}

		return nil, fmt.Errorf("getting contact: %w", err)
	}

	return c, nil
}

func (s *Store) ListContacts(ctx context.Context, filter contact.ListFilter) ([]*contact.Contact, error) {
	query := `SELECT ` + selectContactColumns + ` FROM contacts WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Owner != nil {
		query += fmt.Sprintf(" AND entity_type = $%d AND entity_id = $%d", argIdx, argIdx+1)

		args = append(args, filter.Owner.Kind.String(), filter.Owner.ID)
		argIdx += 2
	}

	if filter.Query != "" {
		query += fmt.Sprintf(
			" AND (name ILIKE $%[1]d OR role ILIKE $%[1]d OR COALESCE(email, '') ILIKE $%[1]d)", argIdx,
		)

		args = append(args, "%"+filter.Query+"%")
	}

	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*contact.Contact

	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	return contacts, nil
}

func (s *Store) DeleteContact(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return contact.ErrNotFound
	}

	return nil
}
