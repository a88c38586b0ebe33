package profile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"fibertract/internal/tract"
)

// yamlProfile is the on-disk shape of a custom profile document.
type yamlProfile struct {
	Name   string      `yaml:"name"`
	Tracts []yamlTract `yaml:"tracts"`
}

type yamlTract struct {
	Kind string `yaml:"kind"`
	Dim  int    `yaml:"dim"`

	Conductivity *uint8 `yaml:"conductivity,omitempty"`
	Jitter       *uint8 `yaml:"jitter,omitempty"`
	Gain         *uint8 `yaml:"gain,omitempty"`
	Sensitivity  *uint8 `yaml:"sensitivity,omitempty"`
	Endurance    *uint8 `yaml:"endurance,omitempty"`
	Elasticity   *uint8 `yaml:"elasticity,omitempty"`
	Strength     *uint8 `yaml:"strength,omitempty"`
	ReceptorMode string `yaml:"receptor_mode,omitempty"`
}

// Parse reads a profile document from r.
func Parse(r io.Reader) (Profile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var doc yamlProfile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if doc.Name == "" {
		return Profile{}, fmt.Errorf("parse profile: missing name")
	}
	if len(doc.Tracts) == 0 {
		return Profile{}, fmt.Errorf("parse profile %s: no tracts", doc.Name)
	}

	p := Profile{Name: doc.Name, Tracts: make([]TractSpec, 0, len(doc.Tracts))}
	for i, yt := range doc.Tracts {
		kind, err := tract.ParseKind(yt.Kind)
		if err != nil {
			return Profile{}, fmt.Errorf("parse profile %s: tract %d: %w", doc.Name, i, err)
		}
		if yt.Dim <= 0 {
			return Profile{}, fmt.Errorf("parse profile %s: tract %d: dim must be positive, got %d", doc.Name, i, yt.Dim)
		}
		spec := TractSpec{
			Kind:         kind,
			Dim:          yt.Dim,
			Conductivity: yt.Conductivity,
			Jitter:       yt.Jitter,
			Gain:         yt.Gain,
			Sensitivity:  yt.Sensitivity,
			Endurance:    yt.Endurance,
			Elasticity:   yt.Elasticity,
			Strength:     yt.Strength,
		}
		if yt.ReceptorMode != "" {
			mode, err := tract.ParseReceptorMode(yt.ReceptorMode)
			if err != nil {
				return Profile{}, fmt.Errorf("parse profile %s: tract %d: %w", doc.Name, i, err)
			}
			spec.ReceptorMode = &mode
		}
		p.Tracts = append(p.Tracts, spec)
	}
	return p, nil
}

// Load reads a profile document from a file.
func Load(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
