package keccak

// rotationOffsets holds the rho rotation offsets for 64-bit lanes, indexed
// [x][y]. States with shorter lanes reduce each offset modulo the lane length
// at construction time.
var rotationOffsets = [5][5]int{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// roundConstants holds the 24 iota round constants for 64-bit lanes. States
// with shorter lanes keep only the low laneLength bits of each constant, and
// use only the first roundsForLaneLength(laneLength) entries.
var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082,
	0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088,
	0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b,
	0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080,
	0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080,
	0x0000000080000001, 0x8000000080008008,
}

// roundsForLaneLength returns the number of rounds per permutation for the
// given lane length: 12 + 2*log2(laneLength).
func roundsForLaneLength(laneLength int) int {
	switch laneLength {
	case 8:
		return 18
	case 16:
		return 20
	case 32:
		return 22
	case 64:
		return 24
	}
	return 0
}
