package party

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("buying party not found")
	ErrInvalid  = errors.New("invalid buying party")
)

const DefaultStatus = "evaluating"

// BuyingParty is a prospective acquirer.
type BuyingParty struct {
	ID                   uuid.UUID
	Name                 string
	TargetAcquisitionMin *int
	TargetAcquisitionMax *int
	BudgetMin            decimal.NullDecimal
	BudgetMax            decimal.NullDecimal
	Timeline             string
	Status               string
	Notes                string
	TargetIndustries     []string
	Operational          bool
	CreatedAt            time.Time
}

// Covers reports whether amount falls inside the party's budget range. Open
// bounds are unbounded; a party with no budget at all covers nothing.
func (p *BuyingParty) Covers(amount decimal.Decimal) bool {
	if !p.BudgetMin.Valid && !p.BudgetMax.Valid {
		return false
	}

	if p.BudgetMin.Valid && amount.LessThan(p.BudgetMin.Decimal) {
		return false
	}

	if p.BudgetMax.Valid && amount.GreaterThan(p.BudgetMax.Decimal) {
		return false
	}

	return true
}
