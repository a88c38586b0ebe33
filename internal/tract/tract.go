// Package tract implements the fiber tract entity: a fixed-width channel
// that carries either outgoing motor commands or incoming sensory stimuli,
// shaped by physical properties that slowly change with use.
//
// All dynamics are integer and range-bounded. There is no floating point
// anywhere in the pipeline; re-implementations must stay bit-exact.
package tract

import (
	"errors"
	"fmt"

	"fibertract/internal/model"
	"fibertract/internal/signal"
	"fibertract/internal/weber"
)

// ErrKindMismatch is returned when a transmission operation is invoked on
// a tract of the wrong category. It indicates a caller bug, not a runtime
// condition.
var ErrKindMismatch = errors.New("tract kind mismatch")

// ReceptorMode selects between change-emphasizing and level-faithful
// sensory reporting.
type ReceptorMode uint8

const (
	// Phasic gates out signals below the sensitivity-derived threshold,
	// emphasizing change. The default.
	Phasic ReceptorMode = 0
	// Tonic bypasses the threshold and faithfully reports sustained level.
	Tonic ReceptorMode = 1
)

// String returns the configuration identifier for the mode.
func (m ReceptorMode) String() string {
	if m == Tonic {
		return "tonic"
	}
	return "phasic"
}

// ParseReceptorMode resolves a configuration identifier to a ReceptorMode.
func ParseReceptorMode(name string) (ReceptorMode, error) {
	switch name {
	case "phasic":
		return Phasic, nil
	case "tonic":
		return Tonic, nil
	default:
		return Phasic, fmt.Errorf("unknown receptor mode: %s", name)
	}
}

// Tract is a single fiber tract. Exactly one signal representation is
// populated, determined by kind: efferent tracts carry signal.Signal,
// afferent tracts carry wide int32 readings.
//
// All physical properties are independently bounded in [0, 255] and are
// mutated only through saturating arithmetic.
type Tract struct {
	kind Kind
	dim  int

	// Current outputs, one representation per category.
	MotorSignals   []signal.Signal
	SensorySignals []int32

	// Previous outputs for elasticity smoothing.
	motorPrev   []signal.Signal
	sensoryPrev []int32

	// Conductivity is myelination quality: 0 severed, 255 perfect.
	Conductivity uint8
	// Jitter is transmission noise: 0 clean, 255 overwhelmed.
	Jitter uint8
	// Fatigue is current exhaustion: 0 fresh, 255 spent.
	Fatigue uint8
	// Endurance is fatigue resistance: 0 fragile, 255 tireless.
	Endurance uint8
	// Elasticity is the low-pass tracking coefficient: 0 frozen, 255 instant.
	Elasticity uint8
	// Sensitivity is the detection threshold: 0 numb, 255 hypersensitive.
	Sensitivity uint8
	// Gain is amplification, unity at 128.
	Gain uint8
	// Strength is max force output (motor) or acuity (sensory).
	Strength uint8

	// ReceptorMode only affects the sensory path.
	ReceptorMode ReceptorMode

	// LifetimeActivations counts ticks the tract was active. Saturates,
	// never wraps.
	LifetimeActivations uint64
	// RecentDensity is a rolling 0-255 measure of recent activity.
	RecentDensity uint8
}

const (
	// MotorGainDefault amplifies: the body needs more drive than the
	// command encodes.
	MotorGainDefault = 160
	// SensoryGainDefault attenuates: raw stimuli are toned down before
	// they reach the brain.
	SensoryGainDefault = 100
)

// NewMotor creates an efferent tract with default properties.
func NewMotor(kind Kind, dim int) (*Tract, error) {
	if !kind.IsEfferent() {
		return nil, fmt.Errorf("%w: %s is not an efferent kind", ErrKindMismatch, kind)
	}
	if dim < 0 {
		return nil, fmt.Errorf("negative tract dimension: %d", dim)
	}
	t := newDefault(kind, dim)
	t.Gain = MotorGainDefault
	t.MotorSignals = make([]signal.Signal, dim)
	t.motorPrev = make([]signal.Signal, dim)
	return t, nil
}

// NewSensory creates an afferent tract with default properties.
func NewSensory(kind Kind, dim int) (*Tract, error) {
	if !kind.IsAfferent() {
		return nil, fmt.Errorf("%w: %s is not an afferent kind", ErrKindMismatch, kind)
	}
	if dim < 0 {
		return nil, fmt.Errorf("negative tract dimension: %d", dim)
	}
	t := newDefault(kind, dim)
	t.Gain = SensoryGainDefault
	t.SensorySignals = make([]int32, dim)
	t.sensoryPrev = make([]int32, dim)
	return t, nil
}

func newDefault(kind Kind, dim int) *Tract {
	return &Tract{
		kind:         kind,
		dim:          dim,
		Conductivity: 128,
		Jitter:       128,
		Fatigue:      0,
		Endurance:    128,
		Elasticity:   128,
		Sensitivity:  128,
		Strength:     128,
		ReceptorMode: Phasic,
	}
}

// Kind returns the tract's kind, fixed at creation.
func (t *Tract) Kind() Kind {
	return t.kind
}

// Dim returns the channel count, fixed at creation.
func (t *Tract) Dim() int {
	return t.dim
}

// TransmitMotor shapes a motor command through the tract. Only the first
// min(len(input), dim) entries are processed; remaining channels are
// zeroed. The seed drives the deterministic jitter noise stream for this
// call. Calling on an afferent tract returns ErrKindMismatch.
//
// Stages, in order: gain, conductivity loss, fatigue degradation, jitter
// noise, recruitment threshold, clamp, elasticity smoothing.
func (t *Tract) TransmitMotor(input []signal.Signal, seed uint64) error {
	if !t.kind.IsEfferent() {
		return fmt.Errorf("%w: TransmitMotor on %s tract", ErrKindMismatch, t.kind)
	}

	n := len(input)
	if n > t.dim {
		n = t.dim
	}

	for i := 0; i < n; i++ {
		sig := input[i]

		if sig.IsZero() {
			// Decay the previous output toward silence. Higher elasticity
			// means faster release.
			prev := t.motorPrev[i]
			mag := uint8(uint16(prev.Magnitude) * uint16(255-t.Elasticity) / 255)
			out := signal.Signal{}
			if mag != 0 {
				out = signal.Signal{Polarity: prev.Polarity, Magnitude: mag}
			}
			t.MotorSignals[i] = out
			t.motorPrev[i] = out
			continue
		}

		mag := uint32(sig.Magnitude)

		// 1. Gain: unity at 128.
		mag = mag * uint32(t.Gain) / 128

		// 2. Conductivity loss.
		mag = mag * uint32(t.Conductivity) / 255

		// 3. Fatigue degradation.
		mag = mag * (255 - uint32(t.Fatigue)) / 255

		// 4. Jitter noise, amplitude bounded by jitter/4.
		polarity := sig.Polarity
		if t.Jitter > 0 {
			seed = signal.Xorshift(seed)
			noise := int32(seed % (uint64(t.Jitter)/4 + 1))
			seed = signal.Xorshift(seed)
			if seed%2 != 0 {
				noise = -noise
			}
			noisy := int32(mag) + noise
			if noisy < 0 {
				noisy = 0
			} else if noisy > 512 {
				noisy = 512
			}
			mag = uint32(noisy)

			// Severe jitter occasionally flips polarity outright.
			if t.Jitter > 200 {
				seed = signal.Xorshift(seed)
				if seed%8 == 0 {
					polarity = -polarity
				}
			}
		}

		// 5. Recruitment threshold: higher sensitivity recruits weaker
		// signals (size principle).
		if mag < 255-uint32(t.Sensitivity) {
			mag = 0
		}

		if mag > 255 {
			mag = 255
		}

		// 6. Elasticity smoothing toward the target, signed so decreasing
		// signals track too.
		prevMag := int32(t.motorPrev[i].Magnitude)
		smoothed := prevMag + (int32(mag)-prevMag)*int32(t.Elasticity)/255
		if smoothed < 0 {
			smoothed = 0
		} else if smoothed > 255 {
			smoothed = 255
		}

		out := signal.Signal{}
		if smoothed != 0 {
			out = signal.Signal{Polarity: polarity, Magnitude: uint8(smoothed)}
		}
		t.MotorSignals[i] = out
		t.motorPrev[i] = out
	}

	for i := n; i < t.dim; i++ {
		t.MotorSignals[i] = signal.Signal{}
		t.motorPrev[i] = signal.Signal{}
	}
	return nil
}

// TransmitSensory shapes raw sensory readings through the tract. Values
// are Weber-quantized first; the remaining stages mirror the motor path
// over wide signed integers. Phasic tracts gate values below the
// sensitivity threshold, tonic tracts pass them through. Calling on an
// efferent tract returns ErrKindMismatch.
func (t *Tract) TransmitSensory(input []int32, seed uint64) error {
	if !t.kind.IsAfferent() {
		return fmt.Errorf("%w: TransmitSensory on %s tract", ErrKindMismatch, t.kind)
	}

	n := len(input)
	if n > t.dim {
		n = t.dim
	}

	for i := 0; i < n; i++ {
		quantized := weber.Quantize(input[i])

		if quantized == 0 {
			prev := t.sensoryPrev[i]
			smoothed := prev * (255 - int32(t.Elasticity)) / 255
			t.SensorySignals[i] = smoothed
			t.sensoryPrev[i] = smoothed
			continue
		}

		val := int64(quantized)

		// 1. Gain: unity at 128.
		val = val * int64(t.Gain) / 128

		// 2. Conductivity loss.
		val = val * int64(t.Conductivity) / 255

		// 3. Fatigue degradation.
		val = val * (255 - int64(t.Fatigue)) / 255

		// 4. Jitter noise, uniform in [-jitter/2, +jitter/2].
		if t.Jitter > 0 {
			seed = signal.Xorshift(seed)
			span := int64(t.Jitter)
			val += int64(seed)%(span+1) - span/2
		}

		// 5. Sensitivity threshold, phasic only. Tonic receptors report
		// absolute levels and skip the gate entirely.
		if t.ReceptorMode == Phasic {
			threshold := (255 - int64(t.Sensitivity)) * 4
			abs := val
			if abs < 0 {
				abs = -abs
			}
			if abs < threshold {
				val = 0
			}
		}

		target := clampInt32(val)

		// 6. Elasticity smoothing.
		prev := int64(t.sensoryPrev[i])
		final := clampInt32(prev + (int64(target)-prev)*int64(t.Elasticity)/255)
		t.SensorySignals[i] = final
		t.sensoryPrev[i] = final
	}

	for i := n; i < t.dim; i++ {
		t.SensorySignals[i] = 0
		t.sensoryPrev[i] = 0
	}
	return nil
}

// IsActive reports whether any channel currently carries a nonzero signal.
func (t *Tract) IsActive() bool {
	if t.kind.IsEfferent() {
		for _, s := range t.MotorSignals {
			if !s.IsZero() {
				return true
			}
		}
		return false
	}
	for _, v := range t.SensorySignals {
		if v != 0 {
			return true
		}
	}
	return false
}

// ActivityLevel returns the summed absolute signal magnitude across
// channels.
func (t *Tract) ActivityLevel() uint64 {
	var total uint64
	if t.kind.IsEfferent() {
		for _, s := range t.MotorSignals {
			total += uint64(s.Magnitude)
		}
		return total
	}
	for _, v := range t.SensorySignals {
		if v < 0 {
			total += uint64(uint32(-int64(v)))
		} else {
			total += uint64(v)
		}
	}
	return total
}

func clampInt32(v int64) int32 {
	if v < -2147483648 {
		return -2147483648
	}
	if v > 2147483647 {
		return 2147483647
	}
	return int32(v)
}

// Snapshot serializes the full tract state, smoothing buffers included.
func (t *Tract) Snapshot() model.TractRecord {
	return model.TractRecord{
		Kind:                uint8(t.kind),
		Dim:                 t.dim,
		MotorSignals:        append([]signal.Signal(nil), t.MotorSignals...),
		SensorySignals:      append([]int32(nil), t.SensorySignals...),
		MotorPrev:           append([]signal.Signal(nil), t.motorPrev...),
		SensoryPrev:         append([]int32(nil), t.sensoryPrev...),
		Conductivity:        t.Conductivity,
		Jitter:              t.Jitter,
		Fatigue:             t.Fatigue,
		Endurance:           t.Endurance,
		Elasticity:          t.Elasticity,
		Sensitivity:         t.Sensitivity,
		Gain:                t.Gain,
		Strength:            t.Strength,
		ReceptorMode:        uint8(t.ReceptorMode),
		LifetimeActivations: t.LifetimeActivations,
		RecentDensity:       t.RecentDensity,
	}
}

// FromRecord restores a tract from a serialized snapshot.
func FromRecord(rec model.TractRecord) (*Tract, error) {
	kind, ok := KindFromOrdinal(rec.Kind)
	if !ok {
		return nil, fmt.Errorf("invalid tract kind ordinal: %d", rec.Kind)
	}

	var t *Tract
	var err error
	if kind.IsEfferent() {
		t, err = NewMotor(kind, rec.Dim)
	} else {
		t, err = NewSensory(kind, rec.Dim)
	}
	if err != nil {
		return nil, err
	}

	if kind.IsEfferent() {
		if len(rec.MotorSignals) != rec.Dim || len(rec.MotorPrev) != rec.Dim {
			return nil, fmt.Errorf("motor buffer length mismatch for dim %d", rec.Dim)
		}
		copy(t.MotorSignals, rec.MotorSignals)
		copy(t.motorPrev, rec.MotorPrev)
	} else {
		if len(rec.SensorySignals) != rec.Dim || len(rec.SensoryPrev) != rec.Dim {
			return nil, fmt.Errorf("sensory buffer length mismatch for dim %d", rec.Dim)
		}
		copy(t.SensorySignals, rec.SensorySignals)
		copy(t.sensoryPrev, rec.SensoryPrev)
	}

	t.Conductivity = rec.Conductivity
	t.Jitter = rec.Jitter
	t.Fatigue = rec.Fatigue
	t.Endurance = rec.Endurance
	t.Elasticity = rec.Elasticity
	t.Sensitivity = rec.Sensitivity
	t.Gain = rec.Gain
	t.Strength = rec.Strength
	if rec.ReceptorMode > uint8(Tonic) {
		return nil, fmt.Errorf("invalid receptor mode ordinal: %d", rec.ReceptorMode)
	}
	t.ReceptorMode = ReceptorMode(rec.ReceptorMode)
	t.LifetimeActivations = rec.LifetimeActivations
	t.RecentDensity = rec.RecentDensity
	return t, nil
}
