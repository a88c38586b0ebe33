// Package profile provides preset tract compositions for body regions.
// A hand gets dense mechanoreception and fine motor control; a leg gets
// strength and endurance; vocal cords get extreme precision and almost no
// pain fibers. Profiles build pre-configured bundles.
package profile

import (
	"fmt"
	"sort"

	"fibertract/internal/bundle"
	"fibertract/internal/tract"
)

// TractSpec describes one tract within a profile. Nil override fields
// keep the tract's construction defaults.
type TractSpec struct {
	Kind tract.Kind
	Dim  int

	Conductivity *uint8
	Jitter       *uint8
	Gain         *uint8
	Sensitivity  *uint8
	Endurance    *uint8
	Elasticity   *uint8
	Strength     *uint8
	ReceptorMode *tract.ReceptorMode
}

// NewTractSpec returns a spec with all defaults for a kind and dimension.
func NewTractSpec(kind tract.Kind, dim int) TractSpec {
	return TractSpec{Kind: kind, Dim: dim}
}

// Build constructs the tract described by the spec.
func (s TractSpec) Build() (*tract.Tract, error) {
	var tr *tract.Tract
	var err error
	if s.Kind.IsEfferent() {
		tr, err = tract.NewMotor(s.Kind, s.Dim)
	} else {
		tr, err = tract.NewSensory(s.Kind, s.Dim)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s tract: %w", s.Kind, err)
	}

	if s.Conductivity != nil {
		tr.Conductivity = *s.Conductivity
	}
	if s.Jitter != nil {
		tr.Jitter = *s.Jitter
	}
	if s.Gain != nil {
		tr.Gain = *s.Gain
	}
	if s.Sensitivity != nil {
		tr.Sensitivity = *s.Sensitivity
	}
	if s.Endurance != nil {
		tr.Endurance = *s.Endurance
	}
	if s.Elasticity != nil {
		tr.Elasticity = *s.Elasticity
	}
	if s.Strength != nil {
		tr.Strength = *s.Strength
	}
	if s.ReceptorMode != nil {
		tr.ReceptorMode = *s.ReceptorMode
	}
	return tr, nil
}

// Profile defines the fiber composition of a body region.
type Profile struct {
	Name   string
	Tracts []TractSpec
}

// Build constructs the bundle described by the profile.
func (p Profile) Build() (*bundle.Bundle, error) {
	b := bundle.New(p.Name)
	for _, spec := range p.Tracts {
		tr, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}
		b.Add(tr)
	}
	return b, nil
}

func u8(v uint8) *uint8 { return &v }

// Hand has the highest mechanoreceptive density in the body, fine motor
// control with very clean signals, and high elasticity for fast fingers.
func Hand(side string) Profile {
	return Profile{
		Name: side + "_hand",
		Tracts: []TractSpec{
			{
				Kind: tract.MotorSkeletal, Dim: 32,
				Gain:       u8(150),
				Jitter:     u8(40),
				Elasticity: u8(220),
				Strength:   u8(100),
			},
			NewTractSpec(tract.MotorSpindle, 16),
			{
				Kind: tract.Mechanoreceptive, Dim: 64,
				Sensitivity: u8(230),
				Gain:        u8(110),
				Jitter:      u8(30),
			},
			{
				Kind: tract.Proprioceptive, Dim: 24,
				Sensitivity: u8(200),
			},
			NewTractSpec(tract.NociceptiveFast, 8),
			NewTractSpec(tract.NociceptiveSlow, 4),
		},
	}
}

// Arm has moderate dexterity, good strength and balanced sensory cover.
func Arm(side string) Profile {
	return Profile{
		Name: side + "_arm",
		Tracts: []TractSpec{
			{
				Kind: tract.MotorSkeletal, Dim: 16,
				Gain:      u8(180),
				Strength:  u8(160),
				Endurance: u8(150),
			},
			NewTractSpec(tract.MotorSpindle, 8),
			{
				Kind: tract.Mechanoreceptive, Dim: 16,
				Sensitivity: u8(150),
			},
			{
				Kind: tract.Proprioceptive, Dim: 16,
				Sensitivity: u8(180),
			},
			NewTractSpec(tract.NociceptiveFast, 8),
			NewTractSpec(tract.NociceptiveSlow, 4),
			NewTractSpec(tract.Interoceptive, 4),
		},
	}
}

// Leg trades precision for power: high strength and endurance, coarser
// control, proprioception tuned for balance.
func Leg(side string) Profile {
	return Profile{
		Name: side + "_leg",
		Tracts: []TractSpec{
			{
				Kind: tract.MotorSkeletal, Dim: 12,
				Gain:       u8(200),
				Strength:   u8(220),
				Endurance:  u8(200),
				Jitter:     u8(160),
				Elasticity: u8(140),
			},
			NewTractSpec(tract.MotorSpindle, 8),
			{
				Kind: tract.Mechanoreceptive, Dim: 16,
				Sensitivity: u8(120),
			},
			{
				Kind: tract.Proprioceptive, Dim: 20,
				Sensitivity: u8(220),
			},
			NewTractSpec(tract.NociceptiveFast, 8),
			NewTractSpec(tract.NociceptiveSlow, 4),
			NewTractSpec(tract.Interoceptive, 8),
		},
	}
}

// VocalTract needs extremely precise, fast motor control and pitch-grade
// proprioception, with almost no pain fibers.
func VocalTract() Profile {
	return Profile{
		Name: "vocal_tract",
		Tracts: []TractSpec{
			{
				Kind: tract.MotorSkeletal, Dim: 24,
				Gain:       u8(140),
				Jitter:     u8(20),
				Elasticity: u8(250),
				Strength:   u8(60),
				Endurance:  u8(180),
			},
			{
				Kind: tract.Proprioceptive, Dim: 16,
				Sensitivity: u8(240),
			},
			NewTractSpec(tract.NociceptiveFast, 2),
			NewTractSpec(tract.Interoceptive, 4),
		},
	}
}

// Gaze is the fastest motor response in the body: cleanest signals,
// instant tracking, tiny muscles, no pain fibers at all.
func Gaze() Profile {
	return Profile{
		Name: "gaze",
		Tracts: []TractSpec{
			{
				Kind: tract.MotorSkeletal, Dim: 12,
				Gain:       u8(140),
				Jitter:     u8(15),
				Elasticity: u8(255),
				Strength:   u8(40),
				Endurance:  u8(220),
			},
			{
				Kind: tract.Proprioceptive, Dim: 12,
				Sensitivity: u8(250),
			},
		},
	}
}

// Torso covers core stability: postural muscles that never stop, deep
// ache fibers and high visceral awareness.
func Torso() Profile {
	return Profile{
		Name: "torso",
		Tracts: []TractSpec{
			{
				Kind: tract.MotorSkeletal, Dim: 8,
				Gain:      u8(170),
				Strength:  u8(200),
				Endurance: u8(230),
				Jitter:    u8(160),
			},
			NewTractSpec(tract.MotorSpindle, 8),
			{
				Kind: tract.Mechanoreceptive, Dim: 8,
				Sensitivity: u8(100),
			},
			{
				Kind: tract.Proprioceptive, Dim: 12,
				Sensitivity: u8(180),
			},
			NewTractSpec(tract.NociceptiveFast, 4),
			NewTractSpec(tract.NociceptiveSlow, 8),
			{
				Kind: tract.Interoceptive, Dim: 16,
				Sensitivity: u8(180),
			},
		},
	}
}

// Presets returns every built-in profile keyed by name.
func Presets() map[string]Profile {
	presets := []Profile{
		Hand("left"), Hand("right"),
		Arm("left"), Arm("right"),
		Leg("left"), Leg("right"),
		VocalTract(), Gaze(), Torso(),
	}
	out := make(map[string]Profile, len(presets))
	for _, p := range presets {
		out[p.Name] = p
	}
	return out
}

// ByName resolves a built-in profile.
func ByName(name string) (Profile, bool) {
	p, ok := Presets()[name]
	return p, ok
}

// Names returns the built-in profile names in sorted order.
func Names() []string {
	presets := Presets()
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
