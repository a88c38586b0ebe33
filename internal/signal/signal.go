// Package signal holds the ternary motor signal format and the small
// integer primitives the transmission and adaptation pipelines share:
// a deterministic xorshift noise source and saturating byte arithmetic.
package signal

// Signal is the motor wire format: polarity in {-1, 0, +1} plus an
// unsigned magnitude. A zero polarity or zero magnitude means silence.
type Signal struct {
	Polarity  int8  `json:"polarity"`
	Magnitude uint8 `json:"magnitude"`
}

// IsZero reports whether the signal carries nothing.
func (s Signal) IsZero() bool {
	return s.Polarity == 0 || s.Magnitude == 0
}
