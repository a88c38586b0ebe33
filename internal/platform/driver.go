package platform

import (
	"fibertract/internal/signal"
)

// Driver supplies the per-tick inputs for a run. Implementations must be
// deterministic functions of their arguments or the run loses
// reproducibility.
type Driver interface {
	// MotorCommand returns the intent vector fed into a motor tract on
	// this tick. A nil return means no drive.
	MotorCommand(tick int, bundleName string, tractIndex, dim int) []signal.Signal
	// SensoryStimulus returns the raw receptor values fed into a sensory
	// tract on this tick. A nil return means silence.
	SensoryStimulus(tick int, bundleName string, tractIndex, dim int) []int32
}

// PulseDriver drives every tract with a square wave: Active ticks of
// constant input followed by Rest ticks of silence. The zero value is
// unusable; use NewPulseDriver.
type PulseDriver struct {
	active    int
	rest      int
	magnitude uint8
	stimulus  int32
}

// NewPulseDriver builds a driver that alternates active and rest phases.
// Magnitude feeds motor tracts, stimulus feeds sensory tracts.
func NewPulseDriver(active, rest int, magnitude uint8, stimulus int32) *PulseDriver {
	if active < 1 {
		active = 1
	}
	if rest < 0 {
		rest = 0
	}
	return &PulseDriver{active: active, rest: rest, magnitude: magnitude, stimulus: stimulus}
}

// DefaultPulseDriver drives tracts with 8 active ticks and 4 rest
// ticks. The drive is strong enough to clear the recruitment threshold
// of a default-configured motor tract.
func DefaultPulseDriver() *PulseDriver {
	return NewPulseDriver(8, 4, 230, 300)
}

func (d *PulseDriver) inActivePhase(tick int) bool {
	period := d.active + d.rest
	if period == 0 {
		return true
	}
	return tick%period < d.active
}

func (d *PulseDriver) MotorCommand(tick int, _ string, _, dim int) []signal.Signal {
	if !d.inActivePhase(tick) || dim == 0 {
		return nil
	}
	out := make([]signal.Signal, dim)
	for i := range out {
		polarity := int8(1)
		if i%2 == 1 {
			polarity = -1
		}
		out[i] = signal.Signal{Polarity: polarity, Magnitude: d.magnitude}
	}
	return out
}

func (d *PulseDriver) SensoryStimulus(tick int, _ string, _, dim int) []int32 {
	if !d.inActivePhase(tick) || dim == 0 {
		return nil
	}
	out := make([]int32, dim)
	for i := range out {
		out[i] = d.stimulus
	}
	return out
}
