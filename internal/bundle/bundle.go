// Package bundle groups fiber tracts into named functional pathways
// ("left_arm", "vocal_tract", "gaze"). The bundle is the unit of
// embodiment and the level at which broadcast chemistry applies:
// hormones are systemic, not per-fiber.
package bundle

import (
	"fibertract/internal/model"
	"fibertract/internal/signal"
	"fibertract/internal/tract"
)

// Bundle is a named ordered collection of tracts forming one pathway.
type Bundle struct {
	Name   string
	Tracts []*tract.Tract
}

// New creates an empty bundle.
func New(name string) *Bundle {
	return &Bundle{Name: name}
}

// Add appends a tract to the bundle.
func (b *Bundle) Add(t *tract.Tract) {
	b.Tracts = append(b.Tracts, t)
}

// Tract returns the first tract of the given kind, if present.
func (b *Bundle) Tract(kind tract.Kind) (*tract.Tract, bool) {
	for _, t := range b.Tracts {
		if t.Kind() == kind {
			return t, true
		}
	}
	return nil, false
}

// MotorTracts returns all efferent tracts in bundle order.
func (b *Bundle) MotorTracts() []*tract.Tract {
	var out []*tract.Tract
	for _, t := range b.Tracts {
		if t.Kind().IsEfferent() {
			out = append(out, t)
		}
	}
	return out
}

// SensoryTracts returns all afferent tracts in bundle order.
func (b *Bundle) SensoryTracts() []*tract.Tract {
	var out []*tract.Tract
	for _, t := range b.Tracts {
		if t.Kind().IsAfferent() {
			out = append(out, t)
		}
	}
	return out
}

// IsActive reports whether any tract is currently transmitting.
func (b *Bundle) IsActive() bool {
	for _, t := range b.Tracts {
		if t.IsActive() {
			return true
		}
	}
	return false
}

// TotalActivity sums absolute activity across all tracts.
func (b *Bundle) TotalActivity() uint64 {
	var total uint64
	for _, t := range b.Tracts {
		total += t.ActivityLevel()
	}
	return total
}

// TractCount returns the number of tracts in the bundle.
func (b *Bundle) TractCount() int {
	return len(b.Tracts)
}

// ApplyAdrenaline models a fight-or-flight dump: stronger motor output,
// reduced pain awareness. Intensity is chemical concentration 0-255.
func (b *Bundle) ApplyAdrenaline(intensity uint8) {
	boost := intensity / 4
	for _, t := range b.Tracts {
		switch {
		case t.Kind().IsEfferent():
			t.Gain = signal.SatAdd(t.Gain, boost)
		case isNociceptive(t.Kind()):
			t.Sensitivity = signal.SatSub(t.Sensitivity, boost)
		}
	}
}

// ApplyEndorphin reduces nociceptive sensitivity across the bundle:
// the natural painkiller, gating pain at the fiber level.
func (b *Bundle) ApplyEndorphin(intensity uint8) {
	reduction := intensity / 3
	for _, t := range b.Tracts {
		if isNociceptive(t.Kind()) {
			t.Sensitivity = signal.SatSub(t.Sensitivity, reduction)
		}
	}
}

// ApplyCortisol models sustained stress: signal quality and stamina
// degrade gradually across every tract.
func (b *Bundle) ApplyCortisol(intensity uint8) {
	degradation := intensity / 8
	for _, t := range b.Tracts {
		t.Jitter = signal.SatAdd(t.Jitter, degradation)
		t.Endurance = signal.SatSub(t.Endurance, degradation/2)
	}
}

// ApplyGABA lowers gain across all tracts: systemic inhibition.
func (b *Bundle) ApplyGABA(intensity uint8) {
	reduction := intensity / 4
	for _, t := range b.Tracts {
		t.Gain = signal.SatSub(t.Gain, reduction)
	}
}

// ResetToBaseline returns chemically modulated properties to their
// neutral defaults, for when an effect wears off.
func (b *Bundle) ResetToBaseline() {
	for _, t := range b.Tracts {
		if t.Kind().IsEfferent() {
			t.Gain = tract.MotorGainDefault
		} else {
			t.Gain = tract.SensoryGainDefault
		}
		t.Sensitivity = 128
		t.Jitter = 128
		t.Endurance = 128
	}
}

func isNociceptive(k tract.Kind) bool {
	return k == tract.NociceptiveFast || k == tract.NociceptiveSlow
}

// Snapshot serializes the bundle and all its tracts.
func (b *Bundle) Snapshot() model.BundleRecord {
	rec := model.BundleRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: model.CurrentSchemaVersion,
			CodecVersion:  model.CurrentCodecVersion,
		},
		Name: b.Name,
	}
	for _, t := range b.Tracts {
		rec.Tracts = append(rec.Tracts, t.Snapshot())
	}
	return rec
}

// FromRecord restores a bundle and its tracts from a snapshot.
func FromRecord(rec model.BundleRecord) (*Bundle, error) {
	b := New(rec.Name)
	for _, tr := range rec.Tracts {
		restored, err := tract.FromRecord(tr)
		if err != nil {
			return nil, err
		}
		b.Add(restored)
	}
	return b, nil
}
