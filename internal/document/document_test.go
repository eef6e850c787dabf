package document_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dealboard/internal/document"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

func TestDocument_IsValuation(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "Valuation.xlsx", want: true},
		{name: "2025 VALUATION summary.pdf", want: true},
		{name: "pre-valuation notes", want: true},
		{name: "NDA.pdf", want: false},
		{name: "valu ation.xlsx", want: false},
		{name: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &document.Document{Name: tt.name}
			assert.Equal(t, tt.want, doc.IsValuation())
		})
	}
}

func TestHasValuation(t *testing.T) {
	assert.False(t, document.HasValuation(nil))
	assert.False(t, document.HasValuation([]*document.Document{{Name: "CIM.pptx"}}))
	assert.True(t, document.HasValuation([]*document.Document{
		{Name: "CIM.pptx"},
		{Name: "Acme Valuation.xlsx"},
	}))
}

func TestPin(t *testing.T) {
	workbook := &document.Document{Name: "Acme Valuation.xlsx"}
	deck := &document.Document{Name: "Acme Valuation Deck.pptx"}
	cim := &document.Document{Name: "Confidential Information Memorandum.pdf"}
	nda := &document.Document{Name: "Mutual Non-Disclosure.pdf"}
	other := &document.Document{Name: "Tax return 2024.pdf"}

	p := document.Pin([]*document.Document{other, nda, deck, workbook, cim})

	assert.Same(t, workbook, p.ValuationWorkbook)
	assert.Same(t, deck, p.ValuationDeck)
	assert.Same(t, cim, p.CIM)
	assert.Same(t, nda, p.NDA)
}

func TestPin_FirstMatchWins(t *testing.T) {
	first := &document.Document{Name: "NDA v1.pdf"}
	second := &document.Document{Name: "NDA v2.pdf"}

	p := document.Pin([]*document.Document{first, second})

	assert.Same(t, first, p.NDA)
	assert.Nil(t, p.CIM)
	assert.Nil(t, p.ValuationWorkbook)
}

func TestService_Create(t *testing.T) {
	dealID := uuid.New()

	type testCase struct {
		name      string
		params    document.CreateParams
		setupMock func(m *document.MockRepository)
		wantErr   error
		want      document.Status
	}

	tests := []testCase{
		{
			name:   "DefaultsToDraft",
			params: document.CreateParams{Owner: entity.Deal(dealID), Name: "  Valuation.xlsx "},
			setupMock: func(m *document.MockRepository) {
				m.EXPECT().
					CreateDocument(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, doc *document.Document) error {
						assert.Equal(t, "Valuation.xlsx", doc.Name)
						doc.ID = uuid.New()
						return nil
					})
			},
			want: document.StatusDraft,
		},
		{
			name:    "MissingName",
			params:  document.CreateParams{Owner: entity.Deal(dealID), Name: "   "},
			wantErr: document.ErrInvalid,
		},
		{
			name:    "MatchOwnerRejected",
			params:  document.CreateParams{Owner: entity.Match(dealID), Name: "NDA.pdf"},
			wantErr: document.ErrInvalid,
		},
		{
			name:    "UnknownStatus",
			params:  document.CreateParams{Owner: entity.Deal(dealID), Name: "NDA.pdf", Status: "lost"},
			wantErr: document.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := document.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := document.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_ListByOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	partyID := uuid.New()
	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().
		ListDocuments(gomock.Any(), document.ListFilter{EntityID: &partyID}).
		Return([]*document.Document{{Name: "LOI.pdf"}}, nil)

	svc := document.NewService(repo)
	docs, err := svc.ListByOwner(context.Background(), entity.BuyingParty(partyID))

	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := document.NewMockRepository(ctrl)
	repo.EXPECT().UpdateStatus(gomock.Any(), id, document.StatusSigned).Return(errors.New("db down"))

	svc := document.NewService(repo)

	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), id, "archived"), document.ErrInvalid)
	assert.Error(t, svc.UpdateStatus(context.Background(), id, document.StatusSigned))
}
