package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contact
type Repository interface {
	CreateContact(ctx context.Context, c *Contact) error
	GetContact(ctx context.Context, id uuid.UUID) (*Contact, error)
	ListContacts(ctx context.Context, filter ListFilter) ([]*Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows a listing. Query matches name, role or email,
// case-insensitively.
type ListFilter struct {
	Owner *entity.Ref
	Query string
}

type CreateParams struct {
	Name  string
	Role  string
	Email string
	Phone string
	Owner entity.Ref
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Contact, error) {
	c := &Contact{
		Name:  strings.TrimSpace(params.Name),
		Role:  strings.TrimSpace(params.Role),
		Email: strings.TrimSpace(params.Email),
		Phone: strings.TrimSpace(params.Phone),
		Owner: params.Owner,
	}

	switch {
	case c.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	case c.Role == "":
		return nil, fmt.Errorf("%w: role is required", ErrInvalid)
	case c.Email != "" && !strings.Contains(c.Email, "@"):
		return nil, fmt.Errorf("%w: malformed email %q", ErrInvalid, c.Email)
	}

	switch c.Owner.Kind {
	case entity.KindDeal, entity.KindBuyingParty:
	default:
		return nil, fmt.Errorf("%w: owner must be a deal or a buying party", ErrInvalid)
	}

	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Contact, error) {
	return s.repo.GetContact(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Contact, error) {
	filter.Query = strings.TrimSpace(filter.Query)

	return s.repo.ListContacts(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContact(ctx, id)
}
