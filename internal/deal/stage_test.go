package deal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
)

func TestCanMove(t *testing.T) {
	tests := []struct {
		name         string
		current      deal.Stage
		target       deal.Stage
		hasValuation bool
		want         bool
	}{
		{"OnboardingToValuationWithoutDoc", deal.StageOnboarding, deal.StageValuation, false, false},
		{"OnboardingToValuationWithDoc", deal.StageOnboarding, deal.StageValuation, true, true},
		{"OnboardingToSoldWithoutDoc", deal.StageOnboarding, deal.StageSold, false, false},
		{"OnboardingToItself", deal.StageOnboarding, deal.StageOnboarding, false, true},
		{"BackToOnboarding", deal.StageValuation, deal.StageOnboarding, false, true},
		{"ValuationToBuyerMatching", deal.StageValuation, deal.StageBuyerMatching, false, true},
		{"SoldToDueDiligence", deal.StageSold, deal.StageDueDiligence, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deal.CanMove(tt.current, tt.target, tt.hasValuation))
		})
	}
}

func TestCanMove_OnlyOnboardingIsGated(t *testing.T) {
	for _, from := range deal.Stages {
		for _, to := range deal.Stages {
			want := from != deal.StageOnboarding || to == deal.StageOnboarding
			assert.Equal(t, want, deal.CanMove(from, to, false), "%s -> %s", from, to)
			assert.True(t, deal.CanMove(from, to, true), "%s -> %s with valuation", from, to)
		}
	}
}

func TestParseStage(t *testing.T) {
	st, err := deal.ParseStage("due_diligence")
	assert.NoError(t, err)
	assert.Equal(t, deal.StageDueDiligence, st)
	assert.Equal(t, "Due Diligence", st.Label())

	_, err = deal.ParseStage("closing")
	assert.ErrorIs(t, err, deal.ErrInvalidStage)
	assert.False(t, deal.Stage("closing").Valid())
}
