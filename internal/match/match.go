package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/party"
)

var (
	ErrNotFound  = errors.New("match not found")
	ErrInvalid   = errors.New("invalid match")
	ErrDuplicate = errors.New("buying party already matched to deal")
)

// Stage tracks a buyer's progress on a single deal.
type Stage string

const (
	StageNew           Stage = "new"
	StageNDASent       Stage = "nda_sent"
	StageNDASigned     Stage = "nda_signed"
	StageCIMSent       Stage = "cim_sent"
	StageCIMViewed     Stage = "cim_viewed"
	StageIntroCall     Stage = "intro_call"
	StageDiligence     Stage = "diligence"
	StageIOI           Stage = "ioi"
	StageLOI           Stage = "loi"
	StageUnderContract Stage = "under_contract"
	StageWon           Stage = "won"
	StageLost          Stage = "lost"
)

var Stages = []Stage{
	StageNew, StageNDASent, StageNDASigned, StageCIMSent, StageCIMViewed, StageIntroCall,
	StageDiligence, StageIOI, StageLOI, StageUnderContract, StageWon, StageLost,
}

var stageLabels = map[Stage]string{
	StageNew:           "New",
	StageNDASent:       "NDA Sent",
	StageNDASigned:     "NDA Signed",
	StageCIMSent:       "CIM Sent",
	StageCIMViewed:     "CIM Viewed",
	StageIntroCall:     "Intro Call",
	StageDiligence:     "Diligence",
	StageIOI:           "IOI",
	StageLOI:           "LOI",
	StageUnderContract: "Under Contract",
	StageWon:           "Won",
	StageLost:          "Lost",
}

func ParseStage(s string) (Stage, error) {
	if _, ok := stageLabels[Stage(s)]; ok {
		return Stage(s), nil
	}

	return "", fmt.Errorf("%w: unknown stage %q", ErrInvalid, s)
}

func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}

	return string(s)
}

func (s Stage) index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}

	return -1
}

// HasSignedNDA reports whether a buyer at this stage may receive confidential
// material: at or past nda_signed and not lost.
func (s Stage) HasSignedNDA() bool {
	return s != StageLost && s.index() >= StageNDASigned.index()
}

const DefaultStatus = "interested"

// Match pairs a deal with a buying party.
type Match struct {
	ID                uuid.UUID
	DealID            uuid.UUID
	BuyingPartyID     uuid.UUID
	TargetAcquisition *int
	Budget            decimal.NullDecimal
	Status            string
	Stage             Stage
	CreatedAt         time.Time
}

// BuyerRow is a match seen from its deal.
type BuyerRow struct {
	Match *Match
	Party *party.BuyingParty
}

// DealRow is a match seen from its buying party.
type DealRow struct {
	Match *Match
	Deal  *deal.Deal
}
