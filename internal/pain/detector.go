package pain

import (
	"fibertract/internal/bundle"
	"fibertract/internal/tract"
)

// Detector turns a bundle's nociceptive and interoceptive activity into
// pain events, tracking per-source duration, onset and habituation across
// ticks. Observe once per tick, after transmission.
type Detector struct {
	bundleName string
	states     [SourceCount]sourceState
}

type sourceState struct {
	duration      uint32
	lastIntensity uint8
}

// Slow nociception with a gradual rise reads as ache rather than burn.
const achingOnsetCeiling = 32

// FatigueEventFloor is the motor fatigue level at which the interoceptive
// system starts reporting overexertion.
const FatigueEventFloor = 200

// NewDetector creates a detector for a named bundle.
func NewDetector(bundleName string) *Detector {
	return &Detector{bundleName: bundleName}
}

// Observe scans the bundle and returns the pain events active this tick.
// It reads only the tracts' public activity queries and property fields.
func (d *Detector) Observe(b *bundle.Bundle) []Event {
	var events []Event

	if intensity := kindIntensity(b, tract.NociceptiveFast); intensity > 0 {
		events = append(events, d.emit(Sharp, intensity))
	} else {
		d.clear(Sharp)
	}

	if intensity := kindIntensity(b, tract.NociceptiveSlow); intensity > 0 {
		onset := d.onset(Burning, intensity)
		source := Burning
		if onset < achingOnsetCeiling && d.states[Burning].duration > 0 {
			source = Aching
		}
		ev := d.emit(Burning, intensity)
		ev.Source = source
		events = append(events, ev)
	} else {
		d.clear(Burning)
	}

	if intensity := kindIntensity(b, tract.Interoceptive); intensity > 0 {
		events = append(events, d.emit(Visceral, intensity))
	} else {
		d.clear(Visceral)
	}

	if intensity := motorFatigueIntensity(b); intensity > 0 {
		events = append(events, d.emit(Fatigue, intensity))
	} else {
		d.clear(Fatigue)
	}

	return events
}

// emit updates the per-source state and builds the event. Aching shares
// Burning's state slot since both ride the slow nociceptive tract.
func (d *Detector) emit(s Source, intensity uint8) Event {
	st := &d.states[s]

	onset := d.onset(s, intensity)
	habituating := st.duration > 1 && intensity < st.lastIntensity

	st.duration++
	st.lastIntensity = intensity

	return Event{
		BundleName:    d.bundleName,
		Source:        s,
		Intensity:     intensity,
		Onset:         onset,
		DurationTicks: st.duration,
		Habituating:   habituating,
	}
}

func (d *Detector) onset(s Source, intensity uint8) uint8 {
	last := d.states[s].lastIntensity
	if intensity <= last {
		return 0
	}
	return intensity - last
}

func (d *Detector) clear(s Source) {
	d.states[s] = sourceState{}
}

// kindIntensity averages absolute activity per channel for the first
// tract of the kind, clamped to a byte.
func kindIntensity(b *bundle.Bundle, kind tract.Kind) uint8 {
	tr, ok := b.Tract(kind)
	if !ok || tr.Dim() == 0 {
		return 0
	}
	mean := tr.ActivityLevel() / uint64(tr.Dim())
	if mean > 255 {
		return 255
	}
	return uint8(mean)
}

// motorFatigueIntensity reports the worst motor-tract fatigue past the
// overexertion floor.
func motorFatigueIntensity(b *bundle.Bundle) uint8 {
	var worst uint8
	for _, tr := range b.MotorTracts() {
		if tr.Fatigue >= FatigueEventFloor && tr.Fatigue > worst {
			worst = tr.Fatigue
		}
	}
	return worst
}
