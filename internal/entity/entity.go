// Package entity holds the typed reference used wherever a record belongs to
// either a deal, a buying party or a match.
package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrUnknownKind = errors.New("unknown entity kind")

// Kind discriminates a Ref.
type Kind int

const (
	KindDeal Kind = iota + 1
	KindBuyingParty
	KindMatch
)

func (k Kind) String() string {
	switch k {
	case KindDeal:
		return "deal"
	case KindBuyingParty:
		return "buying_party"
	case KindMatch:
		return "match"
	}

	return "unknown"
}

// ParseKind maps the wire/storage tag back onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "deal":
		return KindDeal, nil
	case "buying_party":
		return KindBuyingParty, nil
	case "match":
		return KindMatch, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Ref points at a single owning record.
type Ref struct {
	Kind Kind
	ID   uuid.UUID
}

func Deal(id uuid.UUID) Ref        { return Ref{Kind: KindDeal, ID: id} }
func BuyingParty(id uuid.UUID) Ref { return Ref{Kind: KindBuyingParty, ID: id} }
func Match(id uuid.UUID) Ref       { return Ref{Kind: KindMatch, ID: id} }

func (r Ref) IsZero() bool {
	return r.Kind == 0 && r.ID == uuid.Nil
}

func (r Ref) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}

// Columns splits the reference into the nullable deal_id / buying_party_id
// pair used by tables that link to either side.
func (r Ref) Columns() (dealID, partyID *uuid.UUID, err error) {
	switch r.Kind {
	case KindDeal:
		return new(r.ID), nil, nil
	case KindBuyingParty:
		return nil, new(r.ID), nil
	}

	return nil, nil, fmt.Errorf("%w for deal/party link: %s", ErrUnknownKind, r.Kind)
}

// FromColumns is the inverse of Columns.
func FromColumns(dealID, partyID *uuid.UUID) (Ref, error) {
	switch {
	case dealID != nil && partyID == nil:
		return Deal(*dealID), nil
	case partyID != nil && dealID == nil:
		return BuyingParty(*partyID), nil
	}

	return Ref{}, errors.New("exactly one of deal_id, buying_party_id must be set")
}
