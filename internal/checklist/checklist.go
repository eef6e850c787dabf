// Package checklist keeps the keyed done-lists attached to deals and matches.
// A checklist is always read and written as a whole sequence.
package checklist

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

var (
	ErrNotFound     = errors.New("checklist not found")
	ErrItemNotFound = errors.New("checklist item not found")
	ErrInvalidLabel = errors.New("invalid checklist label")
	ErrDuplicateKey = errors.New("duplicate checklist key")
	ErrInvalidOwner = errors.New("checklists belong to a deal or a match")
)

type Item struct {
	Key   string
	Label string
	Done  bool
	Note  string
	TS    *time.Time
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// DeriveKey lower-cases label, collapses every run of characters outside
// [a-z0-9] into one underscore and trims underscores from both ends.
func DeriveKey(label string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(label), "_"), "_")
}

func checkOwner(owner entity.Ref) error {
	switch owner.Kind {
	case entity.KindDeal, entity.KindMatch:
		return nil
	}

	return fmt.Errorf("%w: got %s", ErrInvalidOwner, owner.Kind)
}

func indexOf(items []Item, key string) int {
	for i, it := range items {
		if it.Key == key {
			return i
		}
	}

	return -1
}

func clone(items []Item) []Item {
	return append([]Item(nil), items...)
}
