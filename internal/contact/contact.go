package contact

import (
	"errors"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

var (
	ErrNotFound = errors.New("contact not found")
	ErrInvalid  = errors.New("invalid contact")
)

// Contact is a person on the seller side of a deal or on a buying party.
type Contact struct {
	ID    uuid.UUID
	Name  string
	Role  string
	Email string
	Phone string
	Owner entity.Ref
}
