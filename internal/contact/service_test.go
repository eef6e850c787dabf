package contact_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dealboard/internal/contact"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

func TestService_Create(t *testing.T) {
	dealID := uuid.New()

	type testCase struct {
		name      string
		params    contact.CreateParams
		setupMock func(m *contact.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: contact.CreateParams{
				Name: "Dana Whitfield", Role: "Owner", Email: "dana@acme.test", Owner: entity.Deal(dealID),
			},
			setupMock: func(m *contact.MockRepository) {
				m.EXPECT().
					CreateContact(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *contact.Contact) error {
						assert.Equal(t, entity.Deal(dealID), c.Owner)

						c.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:    "MissingRole",
			params:  contact.CreateParams{Name: "Dana", Owner: entity.Deal(dealID)},
			wantErr: contact.ErrInvalid,
		},
		{
			name:    "MalformedEmail",
			params:  contact.CreateParams{Name: "Dana", Role: "CFO", Email: "dana", Owner: entity.Deal(dealID)},
			wantErr: contact.ErrInvalid,
		},
		{
			name:    "NoOwner",
			params:  contact.CreateParams{Name: "Dana", Role: "CFO"},
			wantErr: contact.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contact.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := contact.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_List_TrimsQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := entity.BuyingParty(uuid.New())
	repo := contact.NewMockRepository(ctrl)
	repo.EXPECT().
		ListContacts(gomock.Any(), contact.ListFilter{Owner: &owner, Query: "cfo"}).
		Return([]*contact.Contact{{Name: "Lee", Role: "CFO"}}, nil)

	got, err := contact.NewService(repo).List(context.Background(), contact.ListFilter{Owner: &owner, Query: "  cfo "})

	require.NoError(t, err)
	assert.Len(t, got, 1)
}
