package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=document
type Repository interface {
	CreateDocument(ctx context.Context, doc *Document) error
	GetDocument(ctx context.Context, id uuid.UUID) (*Document, error)
	ListDocuments(ctx context.Context, filter ListFilter) ([]*Document, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows a listing to the documents of one deal or party. An empty
// filter returns every document.
type ListFilter struct {
	EntityID *uuid.UUID
}

type CreateParams struct {
	Owner  entity.Ref
	Name   string
	Status Status
	URL    string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Document, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if params.Owner.Kind != entity.KindDeal && params.Owner.Kind != entity.KindBuyingParty {
		return nil, fmt.Errorf("%w: owner must be a deal or a buying party", ErrInvalid)
	}

	status := params.Status
	if status == "" {
		status = StatusDraft
	}

	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	doc := &Document{
		Owner:  params.Owner,
		Name:   name,
		Status: status,
		URL:    strings.TrimSpace(params.URL),
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.repo.GetDocument(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Document, error) {
	return s.repo.ListDocuments(ctx, filter)
}

// ListByOwner returns the documents attached to a single deal or party.
func (s *Service) ListByOwner(ctx context.Context, owner entity.Ref) ([]*Document, error) {
	return s.repo.ListDocuments(ctx, ListFilter{EntityID: new(owner.ID)})
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}

	return s.repo.UpdateStatus(ctx, id, status)
}
