package checklist

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultItem struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Defaults holds the sequence each owner kind starts from.
type Defaults struct {
	Match []Item
	Deal  []Item
}

// LoadDefaults parses a defaults document. Keys must be unique per sequence.
func LoadDefaults(data []byte) (*Defaults, error) {
	var raw struct {
		Match []defaultItem `yaml:"match"`
		Deal  []defaultItem `yaml:"deal"`
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing checklist defaults: %w", err)
	}

	match, err := toItems(raw.Match)
	if err != nil {
		return nil, fmt.Errorf("match defaults: %w", err)
	}

	deal, err := toItems(raw.Deal)
	if err != nil {
		return nil, fmt.Errorf("deal defaults: %w", err)
	}

	return &Defaults{Match: match, Deal: deal}, nil
}

// BuiltinDefaults returns the embedded default sequences.
func BuiltinDefaults() *Defaults {
	d, err := LoadDefaults(defaultsYAML)
	if err != nil {
		panic(err)
	}

	return d
}

// For returns a fresh copy of the default sequence for owner's kind.
func (d *Defaults) For(kind entity.Kind) []Item {
	switch kind {
	case entity.KindDeal:
		return clone(d.Deal)
	case entity.KindMatch:
		return clone(d.Match)
	}

	return nil
}

func toItems(raw []defaultItem) ([]Item, error) {
	items := make([]Item, 0, len(raw))

	for _, r := range raw {
		key := r.Key
		if key == "" {
			key = DeriveKey(r.Label)
		}

		items = append(items, Item{Key: key, Label: r.Label})
	}

	if err := validate(items); err != nil {
		return nil, err
	}

	return items, nil
}
