// Package keccak implements the Keccak permutation state and the Keccak-f
// permutation for widths 200, 400, 800 and 1600 bits.
//
// The state is a 5x5 array of lanes, each laneLength bits wide:
//
//	state_bit[x, y, z] = (lane[x][y] >> z) & 1
//
// Input and output bits are addressed least-significant-first within each
// byte, and lanes are traversed in the order (0,0), (1,0), ... (4,0), (0,1),
// ... (4,4). A whole lane is loaded from laneLength/8 consecutive bytes as a
// little-endian word.
//
// A State supports a hash computation for exactly one sponge application:
// absorb one or more blocks (permuting between them), then squeeze one or
// more blocks. It is not safe for concurrent use.
package keccak

import "fmt"

// State is the Keccak permutation state. Create one with NewState, use it for
// a single absorb/squeeze cycle, and do not share it across goroutines.
type State struct {
	lanes [5][5]uint64

	// laneLength is the number of live bits in each lane (8, 16, 32 or 64).
	laneLength int

	// laneMask has the low laneLength bits set. Lanes narrower than 64 bits
	// must be masked after every shift or inversion so that the high bits of
	// the backing uint64 stay zero.
	laneMask uint64

	rounds    int
	rc        []uint64
	rotations [5][5]int

	// plainChi selects the standard chi step instead of the lane-complementing
	// transform. Both produce identical permutation results.
	plainChi bool

	// Scratch arrays reused by every round. Each entry is overwritten before
	// it is read within a round, so no clearing is needed between rounds.
	b [5][5]uint64
	c [5]uint64
	d [5]uint64
}

// NewState returns a zeroed permutation state with lanes of the given length
// in bits. Supported lane lengths are 8, 16, 32 and 64 (permutation widths
// 200, 400, 800 and 1600). The lane-complementing chi transform is enabled.
func NewState(laneLength int) (*State, error) {
	return newState(laneLength, false)
}

// NewStateWithPlainChi is NewState with the lane-complementing transform
// disabled, so that the permutation runs the standard chi step. Outputs are
// identical either way; the plain path exists so the optimised path can be
// validated against it.
func NewStateWithPlainChi(laneLength int) (*State, error) {
	return newState(laneLength, true)
}

func newState(laneLength int, plainChi bool) (*State, error) {
	rounds := roundsForLaneLength(laneLength)
	if rounds == 0 {
		return nil, fmt.Errorf("unsupported lane length %d (supported: 8, 16, 32, 64)", laneLength)
	}
	s := &State{
		laneLength: laneLength,
		rounds:     rounds,
		plainChi:   plainChi,
	}
	if laneLength == 64 {
		s.laneMask = ^uint64(0)
	} else {
		s.laneMask = (1 << laneLength) - 1
	}
	s.rc = make([]uint64, rounds)
	for i := range s.rc {
		s.rc[i] = roundConstants[i] & s.laneMask
	}
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			s.rotations[x][y] = rotationOffsets[x][y] % laneLength
		}
	}
	return s, nil
}

// LaneLength returns the length of each lane in bits.
func (s *State) LaneLength() int {
	return s.laneLength
}

// Width returns the permutation width in bits (25 lanes).
func (s *State) Width() int {
	return 25 * s.laneLength
}

// Rounds returns the number of rounds applied by each permutation.
func (s *State) Rounds() int {
	return s.rounds
}

// Reset sets every lane to zero.
func (s *State) Reset() {
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			s.lanes[x][y] = 0
		}
	}
}

// Absorb absorbs the given input into the state, reading blocks of at most
// bitrate bits at a time and permuting the state after each block. The input
// must already carry its domain suffix and pad10*1 padding, so its length is
// a positive multiple of the bitrate.
func (s *State) Absorb(input []byte, inputLengthBits, bitrate int) {
	for bitIndex := 0; bitIndex < inputLengthBits; bitIndex += bitrate {
		readLength := min(bitrate, inputLengthBits-bitIndex)
		s.AbsorbBits(input, bitIndex, readLength)
		s.Permute()
	}
}

// AbsorbBits XORs readLengthBits consecutive bits of input, starting at
// startBit, into the state beginning at lane (0,0) bit 0. Whole byte-aligned
// lanes are loaded as little-endian words; a trailing partial lane is handled
// bit by bit. readLengthBits must not exceed the permutation width.
func (s *State) AbsorbBits(input []byte, startBit, readLengthBits int) {
	bitIndex := startBit
	remaining := readLengthBits
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if bitIndex%8 == 0 && remaining >= s.laneLength {
				s.absorbLane(input, bitIndex, x, y)
				bitIndex += s.laneLength
				remaining -= s.laneLength
			} else {
				s.absorbTailBits(input, bitIndex, remaining, x, y)
				return
			}
		}
	}
}

// absorbLane XORs one whole lane into the state from a byte-aligned position.
func (s *State) absorbLane(input []byte, bitIndex, x, y int) {
	byteIndex := bitIndex / 8
	var lane uint64
	for i := s.laneLength/8 - 1; i >= 0; i-- {
		lane = lane<<8 | uint64(input[byteIndex+i])
	}
	s.lanes[x][y] ^= lane
}

// absorbTailBits XORs the final, non-lane-aligned bits into the state one bit
// at a time, advancing through lane positions z, then x, then y.
func (s *State) absorbTailBits(input []byte, startBit, readLengthBits, x, y int) {
	stopBit := startBit + readLengthBits
	z := 0
	for bitIndex := startBit; bitIndex < stopBit; bitIndex++ {
		if input[bitIndex/8]&(1<<(bitIndex%8)) != 0 {
			s.lanes[x][y] ^= 1 << z
		}
		if z++; z == s.laneLength {
			z = 0
			x++
		}
		if x == 5 {
			x = 0
			y++
		}
	}
}

// Squeeze squeezes the state as many times as needed to produce
// outputLengthBits bits, permuting between blocks of bitrate bits. When the
// output length is not a multiple of eight, the unused high bits of the final
// byte are zero.
func (s *State) Squeeze(bitrate, outputLengthBits int) []byte {
	output := make([]byte, (outputLengthBits+7)/8)
	writeLength := min(bitrate, outputLengthBits)
	s.squeezeBits(output, 0, writeLength)
	for bitIndex := bitrate; bitIndex < outputLengthBits; bitIndex += bitrate {
		s.Permute()
		writeLength = min(bitrate, outputLengthBits-bitIndex)
		s.squeezeBits(output, bitIndex, writeLength)
	}
	return output
}

// squeezeBits writes writeLengthBits bits of state into output starting at
// output bit startBit, in the same traversal order and little-endian lane
// layout as AbsorbBits. The output buffer must be zero wherever bits land;
// the bit path only ORs high bits in.
func (s *State) squeezeBits(output []byte, startBit, writeLengthBits int) {
	bitIndex := startBit
	stopBit := startBit + writeLengthBits
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if bitIndex == stopBit {
				return
			}
			if bitIndex%8 == 0 && stopBit-bitIndex >= s.laneLength {
				s.squeezeLane(output, bitIndex, x, y)
				bitIndex += s.laneLength
			} else {
				bitIndex = s.squeezeTailBits(output, bitIndex, stopBit, x, y)
			}
		}
	}
}

// squeezeLane writes one whole lane into output at a byte-aligned position.
func (s *State) squeezeLane(output []byte, bitIndex, x, y int) {
	byteIndex := bitIndex / 8
	lane := s.lanes[x][y]
	for i := 0; i < s.laneLength/8; i++ {
		output[byteIndex+i] = byte(lane)
		lane >>= 8
	}
}

// squeezeTailBits writes lane (x,y) into output one bit at a time, stopping
// at stopBit, and returns the next output bit index.
func (s *State) squeezeTailBits(output []byte, bitIndex, stopBit, x, y int) int {
	for z := 0; z < s.laneLength && bitIndex < stopBit; z++ {
		if s.lanes[x][y]&(1<<z) != 0 {
			output[bitIndex/8] |= 1 << (bitIndex % 8)
		}
		bitIndex++
	}
	return bitIndex
}
