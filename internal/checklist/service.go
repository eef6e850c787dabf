package checklist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=checklist
type Repository interface {
	// GetChecklist returns ErrNotFound when nothing was saved for owner.
	GetChecklist(ctx context.Context, owner entity.Ref) ([]Item, error)
	SaveChecklist(ctx context.Context, owner entity.Ref, items []Item) error
}

type Service struct {
	repo     Repository
	defaults *Defaults
	now      func() time.Time
}

func NewService(repo Repository, defaults *Defaults) *Service {
	return &Service{repo: repo, defaults: defaults, now: time.Now}
}

// Get returns the saved sequence, or the default sequence for the owner kind
// when none was saved. Defaults are not persisted by a read.
func (s *Service) Get(ctx context.Context, owner entity.Ref) ([]Item, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}

	items, err := s.repo.GetChecklist(ctx, owner)
	if errors.Is(err, ErrNotFound) {
		return s.defaults.For(owner.Kind), nil
	}

	if err != nil {
		return nil, err
	}

	return items, nil
}

// Toggle flips the first item with key and saves the whole sequence.
func (s *Service) Toggle(ctx context.Context, owner entity.Ref, key string) ([]Item, error) {
	items, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	i := indexOf(items, key)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, key)
	}

	items = clone(items)
	items[i].Done = !items[i].Done
	items[i].TS = new(s.now().UTC())

	if err := s.repo.SaveChecklist(ctx, owner, items); err != nil {
		return nil, err
	}

	return items, nil
}

// Add appends a new undone item keyed by DeriveKey(label) and saves the whole
// sequence.
func (s *Service) Add(ctx context.Context, owner entity.Ref, label string) ([]Item, error) {
	label = strings.TrimSpace(label)

	key := DeriveKey(label)
	if key == "" {
		return nil, fmt.Errorf("%w: %q has no usable characters", ErrInvalidLabel, label)
	}

	items, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	if indexOf(items, key) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}

	items = append(clone(items), Item{Key: key, Label: label})

	if err := s.repo.SaveChecklist(ctx, owner, items); err != nil {
		return nil, err
	}

	return items, nil
}

// Replace stores items as the owner's whole checklist. Items without a key get
// one derived from their label.
func (s *Service) Replace(ctx context.Context, owner entity.Ref, items []Item) ([]Item, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}

	items = clone(items)

	for i := range items {
		items[i].Label = strings.TrimSpace(items[i].Label)
		if items[i].Key == "" {
			items[i].Key = DeriveKey(items[i].Label)
		}
	}

	if err := validate(items); err != nil {
		return nil, err
	}

	if err := s.repo.SaveChecklist(ctx, owner, items); err != nil {
		return nil, err
	}

	return items, nil
}

func validate(items []Item) error {
	seen := make(map[string]struct{}, len(items))

	for _, it := range items {
		if it.Key == "" || it.Label == "" {
			return fmt.Errorf("%w: items need a key and a label", ErrInvalidLabel)
		}

		if _, dup := seen[it.Key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, it.Key)
		}

		seen[it.Key] = struct{}{}
	}

	return nil
}
