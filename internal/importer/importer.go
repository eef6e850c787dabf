package importer

import (
	"io"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
)

// Format names a supported deal spreadsheet layout family.
type Format string

const (
	FormatSheet Format = "sheet"
)

type Importer interface {
	Parse(r io.Reader) ([]deal.CreateParams, error)
}
