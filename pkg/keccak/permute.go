package keccak

import "math/bits"

// Permute applies the Keccak-f permutation to the state: rounds of theta,
// rho+pi, chi and iota. When the lane-complementing transform is enabled,
// six lanes are complemented before the first round and again after the last,
// and each round runs the OR-based chi variant; the visible state before and
// after Permute is identical to the standard path.
func (s *State) Permute() {
	if !s.plainChi {
		s.applyComplementingPattern()
	}
	for round := 0; round < s.rounds; round++ {
		s.theta()
		s.rhoPi()
		if s.plainChi {
			s.chi()
		} else {
			s.chiWithLaneComplementingTransform()
		}
		s.iota(round)
	}
	if !s.plainChi {
		s.applyComplementingPattern()
	}
}

// applyComplementingPattern complements the six lanes required by the lane
// complementing transform ("Keccak implementation overview" v3.2, section on
// Bebigokimisa). Applying it twice restores the standard state.
func (s *State) applyComplementingPattern() {
	s.lanes[1][0] = s.not(s.lanes[1][0])
	s.lanes[2][0] = s.not(s.lanes[2][0])
	s.lanes[3][1] = s.not(s.lanes[3][1])
	s.lanes[2][2] = s.not(s.lanes[2][2])
	s.lanes[2][3] = s.not(s.lanes[2][3])
	s.lanes[0][4] = s.not(s.lanes[0][4])
}

func (s *State) theta() {
	for x := 0; x < 5; x++ {
		s.c[x] = s.lanes[x][0] ^ s.lanes[x][1] ^ s.lanes[x][2] ^ s.lanes[x][3] ^ s.lanes[x][4]
	}
	s.d[0] = s.c[4] ^ s.rotl(s.c[1], 1)
	s.d[1] = s.c[0] ^ s.rotl(s.c[2], 1)
	s.d[2] = s.c[1] ^ s.rotl(s.c[3], 1)
	s.d[3] = s.c[2] ^ s.rotl(s.c[4], 1)
	s.d[4] = s.c[3] ^ s.rotl(s.c[0], 1)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			s.lanes[x][y] ^= s.d[x]
		}
	}
}

// rhoPi rotates every lane by its offset and moves it to its pi position in
// the scratch matrix b. Every entry of b is written before any is read.
func (s *State) rhoPi() {
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			s.b[y][(2*x+3*y)%5] = s.rotl(s.lanes[x][y], s.rotations[x][y])
		}
	}
}

// chi is the standard chi step.
func (s *State) chi() {
	for y := 0; y < 5; y++ {
		s.lanes[0][y] = s.b[0][y] ^ (s.not(s.b[1][y]) & s.b[2][y])
		s.lanes[1][y] = s.b[1][y] ^ (s.not(s.b[2][y]) & s.b[3][y])
		s.lanes[2][y] = s.b[2][y] ^ (s.not(s.b[3][y]) & s.b[4][y])
		s.lanes[3][y] = s.b[3][y] ^ (s.not(s.b[4][y]) & s.b[0][y])
		s.lanes[4][y] = s.b[4][y] ^ (s.not(s.b[0][y]) & s.b[1][y])
	}
}

// chiWithLaneComplementingTransform is chi rewritten for complemented lanes.
// The row templates follow the `UseBebigokimisa` branch of the Keccak team's
// KeccakF-1600-64.macros: each row needs a single NOT instead of five, with
// the remaining inversions absorbed by the pattern applied in Permute.
func (s *State) chiWithLaneComplementingTransform() {
	s.lanes[0][0] = s.b[0][0] ^ (s.b[1][0] | s.b[2][0])
	s.lanes[1][0] = s.b[1][0] ^ (s.not(s.b[2][0]) | s.b[3][0])
	s.lanes[2][0] = s.b[2][0] ^ (s.b[3][0] & s.b[4][0])
	s.lanes[3][0] = s.b[3][0] ^ (s.b[4][0] | s.b[0][0])
	s.lanes[4][0] = s.b[4][0] ^ (s.b[0][0] & s.b[1][0])

	s.lanes[0][1] = s.b[0][1] ^ (s.b[1][1] | s.b[2][1])
	s.lanes[1][1] = s.b[1][1] ^ (s.b[2][1] & s.b[3][1])
	s.lanes[2][1] = s.b[2][1] ^ (s.b[3][1] | s.not(s.b[4][1]))
	s.lanes[3][1] = s.b[3][1] ^ (s.b[4][1] | s.b[0][1])
	s.lanes[4][1] = s.b[4][1] ^ (s.b[0][1] & s.b[1][1])

	notB32 := s.not(s.b[3][2])
	s.lanes[0][2] = s.b[0][2] ^ (s.b[1][2] | s.b[2][2])
	s.lanes[1][2] = s.b[1][2] ^ (s.b[2][2] & s.b[3][2])
	s.lanes[2][2] = s.b[2][2] ^ (notB32 & s.b[4][2])
	s.lanes[3][2] = notB32 ^ (s.b[4][2] | s.b[0][2])
	s.lanes[4][2] = s.b[4][2] ^ (s.b[0][2] & s.b[1][2])

	notB33 := s.not(s.b[3][3])
	s.lanes[0][3] = s.b[0][3] ^ (s.b[1][3] & s.b[2][3])
	s.lanes[1][3] = s.b[1][3] ^ (s.b[2][3] | s.b[3][3])
	s.lanes[2][3] = s.b[2][3] ^ (notB33 | s.b[4][3])
	s.lanes[3][3] = notB33 ^ (s.b[4][3] & s.b[0][3])
	s.lanes[4][3] = s.b[4][3] ^ (s.b[0][3] | s.b[1][3])

	notB14 := s.not(s.b[1][4])
	s.lanes[0][4] = s.b[0][4] ^ (notB14 & s.b[2][4])
	s.lanes[1][4] = notB14 ^ (s.b[2][4] | s.b[3][4])
	s.lanes[2][4] = s.b[2][4] ^ (s.b[3][4] & s.b[4][4])
	s.lanes[3][4] = s.b[3][4] ^ (s.b[4][4] | s.b[0][4])
	s.lanes[4][4] = s.b[4][4] ^ (s.b[0][4] & s.b[1][4])
}

func (s *State) iota(round int) {
	s.lanes[0][0] ^= s.rc[round]
}

// rotl rotates a lane left by n bits within the lane length. n must already
// be reduced modulo the lane length.
func (s *State) rotl(v uint64, n int) uint64 {
	if s.laneLength == 64 {
		return bits.RotateLeft64(v, n)
	}
	return ((v << n) | (v >> (s.laneLength - n))) & s.laneMask
}

// not complements a lane within the lane mask.
func (s *State) not(v uint64) uint64 {
	return v ^ s.laneMask
}
