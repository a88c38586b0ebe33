package tract

import "fmt"

// Kind classifies a tract as a labeled line: the kind defines what a
// signal on the tract MEANS. Afferent kinds carry wide sensory integers,
// efferent kinds carry ternary motor signals. Ordinals are fixed wire
// values and must not be reordered.
type Kind uint8

const (
	// Afferent (sensory, body to brain).

	// Proprioceptive carries position, extension and force feedback.
	Proprioceptive Kind = 0
	// Mechanoreceptive carries touch, pressure and contact.
	Mechanoreceptive Kind = 1
	// NociceptiveFast carries sharp pain and temperature extremes.
	NociceptiveFast Kind = 2
	// NociceptiveSlow carries burning, aching and itch.
	NociceptiveSlow Kind = 3
	// Interoceptive carries fatigue, metabolic state and exertion cost.
	Interoceptive Kind = 4

	// Efferent (motor, brain to body).

	// MotorSkeletal carries voluntary movement commands.
	MotorSkeletal Kind = 5
	// MotorSpindle carries muscle tone and reflex arc control.
	MotorSpindle Kind = 6
)

// KindCount is the number of tract kinds.
const KindCount = 7

// IsAfferent reports whether the kind is sensory (body to brain).
func (k Kind) IsAfferent() bool {
	return k < MotorSkeletal
}

// IsEfferent reports whether the kind is motor (brain to body).
func (k Kind) IsEfferent() bool {
	return k >= MotorSkeletal && k < KindCount
}

// BaseSpeed returns the biological transmission speed class (0-255).
// Higher is faster propagation.
func (k Kind) BaseSpeed() uint8 {
	switch k {
	case Proprioceptive:
		return 240
	case Mechanoreceptive:
		return 200
	case NociceptiveFast:
		return 140
	case NociceptiveSlow:
		return 40
	case Interoceptive:
		return 30
	case MotorSkeletal:
		return 240
	case MotorSpindle:
		return 180
	default:
		return 0
	}
}

// String returns the stable identifier used in configuration files.
func (k Kind) String() string {
	switch k {
	case Proprioceptive:
		return "proprioceptive"
	case Mechanoreceptive:
		return "mechanoreceptive"
	case NociceptiveFast:
		return "nociceptive_fast"
	case NociceptiveSlow:
		return "nociceptive_slow"
	case Interoceptive:
		return "interoceptive"
	case MotorSkeletal:
		return "motor_skeletal"
	case MotorSpindle:
		return "motor_spindle"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// FiberName returns the short biological fiber class label.
func (k Kind) FiberName() string {
	switch k {
	case Proprioceptive:
		return "Ia/Ib"
	case Mechanoreceptive:
		return "Ab"
	case NociceptiveFast:
		return "Ad"
	case NociceptiveSlow:
		return "C-noci"
	case Interoceptive:
		return "C-visc"
	case MotorSkeletal:
		return "Aa-mot"
	case MotorSpindle:
		return "Ag-spin"
	default:
		return "unknown"
	}
}

// KindFromOrdinal converts a stored ordinal back to a Kind.
func KindFromOrdinal(v uint8) (Kind, bool) {
	if v >= KindCount {
		return 0, false
	}
	return Kind(v), true
}

// ParseKind resolves a configuration identifier to a Kind.
func ParseKind(name string) (Kind, error) {
	for k := Kind(0); k < KindCount; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown tract kind: %s", name)
}

// Kinds returns all tract kinds in ordinal order.
func Kinds() []Kind {
	kinds := make([]Kind, KindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}
