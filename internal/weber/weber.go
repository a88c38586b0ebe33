// Package weber implements just-noticeable-difference quantization for
// sensory values. Resolution coarsens as magnitude grows: fine steps for
// weak stimuli, survival-only resolution for extreme ones.
package weber

// Quantize snaps a raw sensory value to the Weber step grid for its
// magnitude band. Sign is preserved and zero passes through unchanged.
// The quantized magnitude is the largest step multiple not exceeding
// the absolute input.
func Quantize(raw int32) int32 {
	if raw == 0 {
		return 0
	}

	abs := uint32(raw)
	if raw < 0 {
		abs = uint32(-int64(raw))
	}

	step := Step(abs)
	quantized := int32(abs / step * step)

	if raw < 0 {
		return -quantized
	}
	return quantized
}

// Step returns the quantization step for a given absolute magnitude.
//
// Bands:
//   - 0..49: step 5, fine discrimination
//   - 50..199: step 10
//   - 200..999: step 15
//   - 1000+: step 25, coarse
func Step(magnitude uint32) uint32 {
	switch {
	case magnitude <= 49:
		return 5
	case magnitude <= 199:
		return 10
	case magnitude <= 999:
		return 15
	default:
		return 25
	}
}

// FractionPct returns the Weber fraction (step / magnitude) as a
// percentage clamped to a byte. Magnitude 0 is undefined and reports 255.
func FractionPct(magnitude uint32) uint8 {
	if magnitude == 0 {
		return 255
	}
	frac := Step(magnitude) * 100 / magnitude
	if frac > 255 {
		return 255
	}
	return uint8(frac)
}
