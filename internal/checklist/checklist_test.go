package checklist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealboard/internal/checklist"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"NDA Signed!", "nda_signed"},
		{"  multiple   spaces ", "multiple_spaces"},
		{"Intro call held", "intro_call_held"},
		{"Q3 -- P&L / review", "q3_p_l_review"},
		{"__already_keyed__", "already_keyed"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, checklist.DeriveKey(tt.label))
		})
	}
}

func TestBuiltinDefaults(t *testing.T) {
	d := checklist.BuiltinDefaults()

	match := d.For(entity.KindMatch)
	require.Len(t, match, 7)
	assert.Equal(t, "nda_sent", match[0].Key)
	assert.Equal(t, "Received IOI", match[6].Label)

	deal := d.For(entity.KindDeal)
	require.Len(t, deal, 6)
	assert.Equal(t, "listing_price_set", deal[5].Key)

	for _, it := range append(match, deal...) {
		assert.False(t, it.Done, it.Key)
	}

	assert.Nil(t, d.For(entity.KindBuyingParty))
}

func TestDefaults_ForReturnsCopy(t *testing.T) {
	d := checklist.BuiltinDefaults()

	first := d.For(entity.KindDeal)
	first[0].Done = true

	assert.False(t, d.For(entity.KindDeal)[0].Done)
}

func TestLoadDefaults_RejectsDuplicates(t *testing.T) {
	_, err := checklist.LoadDefaults([]byte("deal:\n  - label: Docs reviewed\n  - key: docs_reviewed\n    label: Again\n"))

	assert.ErrorIs(t, err, checklist.ErrDuplicateKey)
}
