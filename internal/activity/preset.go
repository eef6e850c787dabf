package activity

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// Preset is a one-click activity template.
type Preset struct {
	Key    string `yaml:"key"`
	Type   Type   `yaml:"type"`
	Title  string `yaml:"title"`
	Status Status `yaml:"status"`
}

type presetFile struct {
	Default Preset   `yaml:"default"`
	Presets []Preset `yaml:"presets"`
}

// Catalog resolves preset keys. Unknown keys fall back to a generic pending task.
type Catalog struct {
	fallback Preset
	presets  []Preset
	byKey    map[string]Preset
}

// LoadCatalog parses a preset document.
func LoadCatalog(data []byte) (*Catalog, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}

	c := &Catalog{
		fallback: f.Default,
		presets:  f.Presets,
		byKey:    make(map[string]Preset, len(f.Presets)),
	}

	for _, p := range append([]Preset{f.Default}, f.Presets...) {
		if _, err := ParseType(string(p.Type)); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Key, err)
		}

		if _, err := ParseStatus(string(p.Status)); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Key, err)
		}
	}

	for _, p := range f.Presets {
		if _, dup := c.byKey[p.Key]; dup {
			return nil, fmt.Errorf("duplicate preset %q", p.Key)
		}

		c.byKey[p.Key] = p
	}

	return c, nil
}

// DefaultCatalog returns the built-in presets.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(templatesYAML)
	if err != nil {
		panic(err)
	}

	return c
}

// Lookup returns the preset for key, or the fallback preset when key is unknown.
func (c *Catalog) Lookup(key string) Preset {
	if p, ok := c.byKey[key]; ok {
		return p
	}

	p := c.fallback
	p.Key = key

	return p
}

func (c *Catalog) Presets() []Preset {
	return append([]Preset(nil), c.presets...)
}
