// Package profile loads declarative setup profiles. A profile names the
// selected product, the display locale, and the network connections that
// should exist on the target system; applying one drives the network client
// and announces the resulting state changes on the broadcast hub.
package profile

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/installd/switchboard/pkg/errors"
	"github.com/installd/switchboard/pkg/locale"
	"github.com/installd/switchboard/pkg/network"
)

// Profile is a declarative description of the desired setup state.
type Profile struct {
	Product     string               `yaml:"product" json:"product"`
	Locale      string               `yaml:"locale,omitempty" json:"locale,omitempty"`
	Connections []network.Connection `yaml:"connections,omitempty" json:"connections,omitempty"`
}

// Load reads and parses a profile from a YAML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", "profile", err)
	}
	return Parse(data)
}

// Parse parses a YAML profile document.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.WrapParse("yaml", "profile", err)
	}
	return &p, nil
}

// Validate checks the profile for consistency and normalizes its locale to
// the canonical POSIX form.
func (p *Profile) Validate() error {
	if p.Product == "" {
		return errors.NewValidationError("product", p.Product, "must not be empty")
	}

	if p.Locale != "" {
		normalized, err := locale.Normalize(p.Locale)
		if err != nil {
			return err
		}
		p.Locale = normalized
	}

	seen := make(map[string]struct{}, len(p.Connections))
	for _, conn := range p.Connections {
		if conn.ID == "" {
			return errors.NewValidationError("connections", conn, "connection id must not be empty")
		}
		if _, dup := seen[conn.ID]; dup {
			return errors.NewValidationError("connections", conn.ID, "duplicate connection id")
		}
		seen[conn.ID] = struct{}{}
	}

	return nil
}
