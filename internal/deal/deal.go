package deal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stage is one of the five fixed pipeline phases.
type Stage string

const (
	StageOnboarding    Stage = "onboarding"
	StageValuation     Stage = "valuation"
	StageBuyerMatching Stage = "buyer_matching"
	StageDueDiligence  Stage = "due_diligence"
	StageSold          Stage = "sold"
)

// Stages lists the pipeline in board order.
var Stages = []Stage{
	StageOnboarding,
	StageValuation,
	StageBuyerMatching,
	StageDueDiligence,
	StageSold,
}

func ParseStage(s string) (Stage, error) {
	for _, st := range Stages {
		if string(st) == s {
			return st, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStage, s)
}

func (s Stage) Valid() bool {
	_, err := ParseStage(string(s))
	return err == nil
}

func (s Stage) Label() string {
	switch s {
	case StageOnboarding:
		return "Onboarding"
	case StageValuation:
		return "Valuation"
	case StageBuyerMatching:
		return "Buyer Matching"
	case StageDueDiligence:
		return "Due Diligence"
	case StageSold:
		return "Sold"
	}

	return string(s)
}

// Priority ranks a deal on the board.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}

	return "", fmt.Errorf("%w: unknown priority %q", ErrInvalid, s)
}

const DefaultHealthScore = 85

// Deal is a company moving through the sell-side pipeline.
type Deal struct {
	ID              uuid.UUID
	CompanyName     string
	Revenue         decimal.Decimal
	SDE             decimal.NullDecimal
	ValuationMin    decimal.NullDecimal
	ValuationMax    decimal.NullDecimal
	SDEMultiple     decimal.NullDecimal
	RevenueMultiple decimal.NullDecimal
	Commission      decimal.NullDecimal
	Stage           Stage
	Priority        Priority
	Description     string
	Notes           string
	NextStepDays    *int
	Touches         int
	AgeInStage      int
	HealthScore     int
	Owner           string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
