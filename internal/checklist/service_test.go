package checklist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dealboard/internal/checklist"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

func TestService_Get(t *testing.T) {
	matchRef := entity.Match(uuid.New())

	t.Run("AbsentReturnsDefaultsWithoutSaving", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := checklist.NewMockRepository(ctrl)
		repo.EXPECT().GetChecklist(gomock.Any(), matchRef).Return(nil, checklist.ErrNotFound)

		items, err := checklist.NewService(repo, checklist.BuiltinDefaults()).Get(context.Background(), matchRef)

		require.NoError(t, err)
		assert.Equal(t, checklist.BuiltinDefaults().Match, items)
	})

	t.Run("StoreError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := checklist.NewMockRepository(ctrl)
		repo.EXPECT().GetChecklist(gomock.Any(), matchRef).Return(nil, errors.New("db down"))

		_, err := checklist.NewService(repo, checklist.BuiltinDefaults()).Get(context.Background(), matchRef)

		assert.Error(t, err)
	})

	t.Run("PartyOwnerRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := checklist.NewService(checklist.NewMockRepository(ctrl), checklist.BuiltinDefaults())
		_, err := svc.Get(context.Background(), entity.BuyingParty(uuid.New()))

		assert.ErrorIs(t, err, checklist.ErrInvalidOwner)
	})
}

// memRepo keeps checklists in memory so sequences of calls can be observed.
type memRepo struct {
	data  map[entity.Ref][]checklist.Item
	saves int
}

func newMemRepo() *memRepo {
	return &memRepo{data: make(map[entity.Ref][]checklist.Item)}
}

func (m *memRepo) GetChecklist(_ context.Context, owner entity.Ref) ([]checklist.Item, error) {
	items, ok := m.data[owner]
	if !ok {
		return nil, checklist.ErrNotFound
	}

	return append([]checklist.Item(nil), items...), nil
}

func (m *memRepo) SaveChecklist(_ context.Context, owner entity.Ref, items []checklist.Item) error {
	m.data[owner] = append([]checklist.Item(nil), items...)
	m.saves++

	return nil
}

func TestService_Toggle(t *testing.T) {
	ctx := context.Background()
	owner := entity.Deal(uuid.New())
	repo := newMemRepo()
	svc := checklist.NewService(repo, checklist.BuiltinDefaults())

	items, err := svc.Toggle(ctx, owner, "docs_reviewed")
	require.NoError(t, err)

	require.Len(t, items, 6)
	assert.True(t, items[3].Done)
	assert.NotNil(t, items[3].TS)
	assert.Len(t, repo.data[owner], 6, "whole sequence persisted")

	items, err = svc.Toggle(ctx, owner, "docs_reviewed")
	require.NoError(t, err)
	assert.False(t, items[3].Done, "toggling twice restores the original value")
	assert.Equal(t, 2, repo.saves)

	_, err = svc.Toggle(ctx, owner, "missing")
	assert.ErrorIs(t, err, checklist.ErrItemNotFound)
	assert.Equal(t, 2, repo.saves)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	owner := entity.Match(uuid.New())
	repo := newMemRepo()
	svc := checklist.NewService(repo, checklist.BuiltinDefaults())

	items, err := svc.Add(ctx, owner, "  Site visit!  ")
	require.NoError(t, err)

	last := items[len(items)-1]
	assert.Equal(t, checklist.Item{Key: "site_visit", Label: "Site visit!"}, last)
	assert.Len(t, repo.data[owner], 8)

	_, err = svc.Add(ctx, owner, "Site Visit")
	assert.ErrorIs(t, err, checklist.ErrDuplicateKey)

	_, err = svc.Add(ctx, owner, "NDA Signed!")
	assert.ErrorIs(t, err, checklist.ErrDuplicateKey)

	_, err = svc.Add(ctx, owner, "???")
	assert.ErrorIs(t, err, checklist.ErrInvalidLabel)

	assert.Equal(t, 1, repo.saves, "rejected additions persist nothing")
}

func TestService_Replace(t *testing.T) {
	ctx := context.Background()
	owner := entity.Deal(uuid.New())

	t.Run("DerivesMissingKeys", func(t *testing.T) {
		repo := newMemRepo()
		svc := checklist.NewService(repo, checklist.BuiltinDefaults())

		items, err := svc.Replace(ctx, owner, []checklist.Item{
			{Label: "Tax returns"},
			{Key: "custom", Label: "Custom", Done: true},
		})

		require.NoError(t, err)
		assert.Equal(t, "tax_returns", items[0].Key)
		assert.Equal(t, items, repo.data[owner])
	})

	t.Run("RejectsDuplicates", func(t *testing.T) {
		repo := newMemRepo()
		svc := checklist.NewService(repo, checklist.BuiltinDefaults())

		_, err := svc.Replace(ctx, owner, []checklist.Item{
			{Key: "a", Label: "A"},
			{Key: "a", Label: "Again"},
		})

		assert.ErrorIs(t, err, checklist.ErrDuplicateKey)
		assert.Zero(t, repo.saves)
	})
}
