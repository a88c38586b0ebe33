package signal

// SatAdd adds two bytes, clamping at 255 instead of wrapping.
func SatAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// SatSub subtracts b from a, clamping at 0 instead of wrapping.
func SatSub(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}
