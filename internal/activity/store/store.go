package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/activity"
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

const selectActivityColumns = `
	id, deal_id, buying_party_id, type, title, description, status, assigned_to,
	due_date, completed_at, created_at
`

func scanActivity(s scanner) (*activity.Activity, error) {
	var (
		a                       activity.Activity
		dealID, partyID         *uuid.UUID
		typeStr, statusStr      string
		description, assignedTo sql.NullString
	)

	if err := s.Scan(
		&a.ID, &dealID, &partyID, &typeStr, &a.Title, &description, &statusStr, &assignedTo,
		&a.DueDate, &a.CompletedAt, &a.CreatedAt,
	); err != nil {
		return nil, err
	}

	owner, err := entity.FromColumns(dealID, partyID)
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", a.ID, err)
	}

	a.Owner = owner
	a.Type = activity.Type(typeStr)
	a.Status = activity.Status(statusStr)
	a.Description = description.String
	a.AssignedTo = assignedTo.String

	return &a, nil
}

func (s *Store) CreateActivity(ctx context.Context, a *activity.Activity) error {
	dealID, partyID, err := a.Owner.Columns()
	if err != nil {
		return fmt.Errorf("creating activity: %w", err)
	}

	query := `
		INSERT INTO activities (
			deal_id, buying_party_id, type, title, description, status, assigned_to,
			due_date, completed_at, created_at
		)
		VALUES (
			$1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8,
			CASE WHEN $6 = 'completed' THEN NOW() END, NOW()
		)
		RETURNING id, completed_at, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		dealID,
		partyID,
		a.Type,
		a.Title,
		a.Description,
		a.Status,
		a.AssignedTo,
		a.DueDate,
	).Scan(&a.ID, &a.CompletedAt, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating activity: %w", err)
	}

	return nil
}

func (s *Store) ListActivities(ctx context.Context, filter activity.ListFilter) ([]*activity.Activity, error) {
	query := `SELECT ` + selectActivityColumns + ` FROM activities`

	var args []any

	if filter.EntityID != nil {
		query += ` WHERE deal_id = $1 OR buying_party_id = $1`

		args = append(args, *filter.EntityID)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var activities []*activity.Activity

	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}

		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}

	return activities, nil
}

func (s *Store) CompleteActivity(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	query := `
		UPDATE activities
		SET status = 'completed', completed_at = COALESCE(completed_at, NOW())
		WHERE id = $1
		RETURNING ` + selectActivityColumns

	a, err := scanActivity(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, activity.ErrNotFound
		}

		return nil, fmt.Errorf("completing activity: %w", err)
	}

	return a, nil
}
