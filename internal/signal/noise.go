package signal

// Xorshift advances a 64-bit noise state by three fixed shift/XOR mixes.
// The same seed always yields the same stream; the low bits of successive
// states are consumed as jitter noise during transmission. Reproducibility
// is the point here, not statistical quality.
func Xorshift(state uint64) uint64 {
	state ^= state << 13
	state ^= state >> 7
	state ^= state << 17
	return state
}
