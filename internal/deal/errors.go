package deal

import "errors"

var (
	ErrNotFound       = errors.New("deal not found")
	ErrInvalid        = errors.New("invalid deal")
	ErrInvalidStage   = errors.New("invalid stage")
	ErrNeedsValuation = errors.New("needs valuation")
)
