package document

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrInvalid  = errors.New("invalid document")
)

// Status tracks a document through signature.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusSent   Status = "sent"
	StatusSigned Status = "signed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusSent, StatusSigned:
		return Status(s), nil
	}

	return "", fmt.Errorf("%w: unknown status %q", ErrInvalid, s)
}

// Document is a file reference attached to a deal or a buying party. The file
// itself lives in an external document service; only its name and URL are kept.
type Document struct {
	ID        uuid.UUID
	Owner     entity.Ref
	Name      string
	Status    Status
	URL       string
	CreatedAt time.Time
}

// IsValuation reports whether the document is tagged as a valuation by name.
func (d *Document) IsValuation() bool {
	return nameHas(d.Name, "valuation")
}

// HasValuation reports whether any of docs is a valuation document.
func HasValuation(docs []*Document) bool {
	for _, d := range docs {
		if d.IsValuation() {
			return true
		}
	}

	return false
}

// Pinned holds the well-known documents surfaced at the top of a deal.
type Pinned struct {
	ValuationWorkbook *Document
	ValuationDeck     *Document
	CIM               *Document
	NDA               *Document
}

// Pin picks the first document matching each well-known slot, by name.
func Pin(docs []*Document) Pinned {
	var p Pinned

	for _, d := range docs {
		switch {
		case p.ValuationWorkbook == nil && d.IsValuation() && nameHas(d.Name, ".xlsx"):
			p.ValuationWorkbook = d
		case p.ValuationDeck == nil && d.IsValuation() && nameHas(d.Name, ".ppt"):
			p.ValuationDeck = d
		case p.CIM == nil && (nameHas(d.Name, "cim") || nameHas(d.Name, "confidential information memorandum")):
			p.CIM = d
		case p.NDA == nil && (nameHas(d.Name, "nda") || nameHas(d.Name, "non-disclosure")):
			p.NDA = d
		}
	}

	return p
}

func nameHas(name, substr string) bool {
	return strings.Contains(strings.ToLower(name), substr)
}
