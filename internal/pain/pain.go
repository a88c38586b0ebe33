// Package pain models nociception as a decision, not a sensation: it
// reads nociceptive and interoceptive tract activity and produces scored
// severity records. It never feeds back into the tracts; gating happens
// upstream through chemical modulation and sensitivity thresholds.
package pain

import (
	"fibertract/internal/tract"
)

// Source classifies what biological process generated the pain. Ordinals
// are fixed wire values.
type Source uint8

const (
	// Sharp is fast, well-localized pain: withdraw reflex territory.
	Sharp Source = 0
	// Burning is slow, diffuse pain that lingers.
	Burning Source = 1
	// Aching is dull, deep, poorly localized pain.
	Aching Source = 2
	// Visceral is internal discomfort.
	Visceral Source = 3
	// Fatigue is the metabolic overexertion signal.
	Fatigue Source = 4
)

// SourceCount is the number of pain sources.
const SourceCount = 5

// PrimaryTract returns the fiber kind that typically generates this pain.
func (s Source) PrimaryTract() tract.Kind {
	switch s {
	case Sharp:
		return tract.NociceptiveFast
	case Burning, Aching:
		return tract.NociceptiveSlow
	default:
		return tract.Interoceptive
	}
}

// Urgency returns how quickly the pain demands a response (0-255).
func (s Source) Urgency() uint8 {
	switch s {
	case Sharp:
		return 240
	case Burning:
		return 180
	case Visceral:
		return 140
	case Aching:
		return 100
	default:
		return 60
	}
}

// String returns the stable identifier for the source.
func (s Source) String() string {
	switch s {
	case Sharp:
		return "sharp"
	case Burning:
		return "burning"
	case Aching:
		return "aching"
	case Visceral:
		return "visceral"
	case Fatigue:
		return "fatigue"
	default:
		return "unknown"
	}
}

// SourceFromOrdinal converts a stored ordinal back to a Source.
func SourceFromOrdinal(v uint8) (Source, bool) {
	if v >= SourceCount {
		return 0, false
	}
	return Source(v), true
}

// Event is one detected pain occurrence. Intensity is the perceived
// value after all upstream gating, not the raw stimulus.
type Event struct {
	// BundleName identifies the originating pathway.
	BundleName string
	// Source is the pain classification.
	Source Source
	// Intensity is perceived severity, 0-255.
	Intensity uint8
	// Onset is how fast the signal rose; high means sudden injury.
	Onset uint8
	// DurationTicks is how long the source has been continuously active.
	DurationTicks uint32
	// Habituating reports whether perceived intensity is falling despite
	// a sustained stimulus.
	Habituating bool
}

// IsUrgent reports whether the event needs immediate attention: both
// intensity and source urgency must be high.
func (e Event) IsUrgent() bool {
	return e.Intensity > 128 && e.Source.Urgency() > 160
}

// IsChronic reports long-lived, non-habituating pain.
func (e Event) IsChronic() bool {
	return e.DurationTicks > 1000 && !e.Habituating
}

// Salience combines intensity, urgency, onset and novelty into a 0-255
// attention-allocation score.
func (e Event) Salience() uint8 {
	urgency := uint16(e.Source.Urgency())
	intensity := uint16(e.Intensity)
	onset := uint16(e.Onset)
	novelty := uint16(192)
	if e.Habituating {
		novelty = 64
	}

	score := (intensity*3 + urgency*2 + onset + novelty*2) / 8
	if score > 255 {
		return 255
	}
	return uint8(score)
}
