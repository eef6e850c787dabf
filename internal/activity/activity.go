package activity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

var (
	ErrNotFound = errors.New("activity not found")
	ErrInvalid  = errors.New("invalid activity")
)

type Type string

const (
	TypeTask     Type = "task"
	TypeEmail    Type = "email"
	TypeMeeting  Type = "meeting"
	TypeDocument Type = "document"
	TypeSystem   Type = "system"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeTask, TypeEmail, TypeMeeting, TypeDocument, TypeSystem:
		return Type(s), nil
	}

	return "", fmt.Errorf("%w: unknown type %q", ErrInvalid, s)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted:
		return Status(s), nil
	}

	return "", fmt.Errorf("%w: unknown status %q", ErrInvalid, s)
}

// Activity is a timeline entry on a deal or a buying party.
type Activity struct {
	ID          uuid.UUID
	Owner       entity.Ref
	Type        Type
	Title       string
	Description string
	Status      Status
	AssignedTo  string
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}
