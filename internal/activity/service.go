package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=activity
type Repository interface {
	CreateActivity(ctx context.Context, a *Activity) error
	ListActivities(ctx context.Context, filter ListFilter) ([]*Activity, error)
	CompleteActivity(ctx context.Context, id uuid.UUID) (*Activity, error)
}

type Service struct {
	repo    Repository
	catalog *Catalog
}

func NewService(repo Repository, catalog *Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

type ListFilter struct {
	EntityID *uuid.UUID
}

type CreateParams struct {
	Owner       entity.Ref
	Type        Type
	Title       string
	Description string
	Status      Status
	AssignedTo  string
	DueDate     *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Activity, error) {
	a := &Activity{
		Owner:       params.Owner,
		Type:        params.Type,
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Status:      params.Status,
		AssignedTo:  strings.TrimSpace(params.AssignedTo),
		DueDate:     params.DueDate,
	}

	if a.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}

	if a.Status == "" {
		a.Status = StatusPending
	}

	if _, err := ParseType(string(a.Type)); err != nil {
		return nil, err
	}

	if _, err := ParseStatus(string(a.Status)); err != nil {
		return nil, err
	}

	if _, _, err := a.Owner.Columns(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := s.repo.CreateActivity(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// CreateFromPreset logs the preset activity named by key against owner.
func (s *Service) CreateFromPreset(ctx context.Context, owner entity.Ref, key string) (*Activity, error) {
	p := s.catalog.Lookup(key)

	return s.Create(ctx, CreateParams{
		Owner:  owner,
		Type:   p.Type,
		Title:  p.Title,
		Status: p.Status,
	})
}

func (s *Service) Presets() []Preset {
	return s.catalog.Presets()
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Activity, error) {
	return s.repo.ListActivities(ctx, filter)
}

// Complete marks the activity completed and stamps completion time.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Activity, error) {
	return s.repo.CompleteActivity(ctx, id)
}
