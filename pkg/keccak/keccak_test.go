package keccak

import (
	"bytes"
	"testing"
)

// Keccak-f[1600] applied to the all-zero state, lane by lane in the order
// (0,0), (1,0), ... (4,4). Source: the Keccak team's
// KeccakF-1600-IntermediateValues.txt.
var zeroStatePermuted = [25]uint64{
	0xf1258f7940e1dde7, 0x84d5ccf933c0478a, 0xd598261ea65aa9ee, 0xbd1547306f80494d, 0x8b284e056253d057,
	0xff97a42d7f8e6fd4, 0x90fee5a0a44647c4, 0x8c5bda0cd6192e76, 0xad30a6f71b19059c, 0x30935ab7d08ffc64,
	0xeb5aa93f2317d635, 0xa9a6e6260d712103, 0x81a57c16dbcf555f, 0x43b831cd0347c826, 0x01f22f1a11a5569f,
	0x05e5635a21d9ae61, 0x64befef28cc970f2, 0x613670957bc46611, 0xb87c5a554fd00ecb, 0x8c3ee88a1ccf32c8,
	0x940c7922ae3a2614, 0x1841f924a2c509e4, 0x16f53526e70465c2, 0x75f644e97f30a13b, 0xeaf1ff7b5ceca249,
}

func TestPermuteZeroState1600(t *testing.T) {
	s, err := NewState(64)
	if err != nil {
		t.Fatalf("NewState(64): %v", err)
	}
	s.Permute()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := zeroStatePermuted[x+5*y]
			if s.lanes[x][y] != want {
				t.Errorf("lane (%d,%d) = %016x, want %016x", x, y, s.lanes[x][y], want)
			}
		}
	}
}

func TestPermuteZeroState1600PlainChi(t *testing.T) {
	s, err := NewStateWithPlainChi(64)
	if err != nil {
		t.Fatalf("NewStateWithPlainChi(64): %v", err)
	}
	s.Permute()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := zeroStatePermuted[x+5*y]
			if s.lanes[x][y] != want {
				t.Errorf("lane (%d,%d) = %016x, want %016x", x, y, s.lanes[x][y], want)
			}
		}
	}
}

func TestNewStateRejectsBadLaneLengths(t *testing.T) {
	for _, laneLength := range []int{0, 1, 2, 4, 7, 12, 63, 65, 128} {
		if _, err := NewState(laneLength); err == nil {
			t.Errorf("NewState(%d): expected error", laneLength)
		}
	}
}

func TestStateParameters(t *testing.T) {
	tests := []struct {
		laneLength int
		width      int
		rounds     int
	}{
		{8, 200, 18},
		{16, 400, 20},
		{32, 800, 22},
		{64, 1600, 24},
	}
	for _, tt := range tests {
		s, err := NewState(tt.laneLength)
		if err != nil {
			t.Fatalf("NewState(%d): %v", tt.laneLength, err)
		}
		if s.Width() != tt.width {
			t.Errorf("lane %d: Width() = %d, want %d", tt.laneLength, s.Width(), tt.width)
		}
		if s.Rounds() != tt.rounds {
			t.Errorf("lane %d: Rounds() = %d, want %d", tt.laneLength, s.Rounds(), tt.rounds)
		}
		if s.LaneLength() != tt.laneLength {
			t.Errorf("LaneLength() = %d, want %d", s.LaneLength(), tt.laneLength)
		}
	}
}

func TestRotationsReducedToLaneLength(t *testing.T) {
	for _, laneLength := range []int{8, 16, 32, 64} {
		s, _ := NewState(laneLength)
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				r := s.rotations[x][y]
				if r < 0 || r >= laneLength {
					t.Errorf("lane %d: rotation[%d][%d] = %d out of range", laneLength, x, y, r)
				}
				if r != rotationOffsets[x][y]%laneLength {
					t.Errorf("lane %d: rotation[%d][%d] = %d, want %d", laneLength, x, y, r,
						rotationOffsets[x][y]%laneLength)
				}
			}
		}
	}
}

func TestRoundConstantsMasked(t *testing.T) {
	s, _ := NewState(8)
	if len(s.rc) != 18 {
		t.Fatalf("len(rc) = %d, want 18", len(s.rc))
	}
	for i, rc := range s.rc {
		if rc&^uint64(0xff) != 0 {
			t.Errorf("rc[%d] = %#x has bits above the lane mask", i, rc)
		}
		if rc != roundConstants[i]&0xff {
			t.Errorf("rc[%d] = %#x, want %#x", i, rc, roundConstants[i]&0xff)
		}
	}
}

// Absorbing into a zero state is a plain copy, so squeezing the same number
// of bits must return the input unchanged. This pins down the little-endian
// lane layout and the lane traversal order.
func TestAbsorbSqueezeRoundTrip(t *testing.T) {
	for _, laneLength := range []int{8, 16, 32, 64} {
		bitrate := 25 * laneLength / 2
		bitrate -= bitrate % 8
		block := make([]byte, bitrate/8)
		for i := range block {
			block[i] = byte(i*37 + 11)
		}
		s, _ := NewState(laneLength)
		s.AbsorbBits(block, 0, bitrate)
		out := make([]byte, len(block))
		s.squeezeBits(out, 0, bitrate)
		if !bytes.Equal(out, block) {
			t.Errorf("lane %d: round trip\n got  %x\n want %x", laneLength, out, block)
		}
	}
}

// A bit count that ends mid-lane exercises the bit-by-bit tail on both the
// absorb and squeeze paths.
func TestAbsorbSqueezePartialBits(t *testing.T) {
	s, _ := NewState(64)
	input := []byte{0xff, 0x5b}
	const bitLen = 13
	s.AbsorbBits(input, 0, bitLen)
	out := make([]byte, 2)
	s.squeezeBits(out, 0, bitLen)
	want := []byte{0xff, 0x5b & 0x1f}
	if !bytes.Equal(out, want) {
		t.Errorf("partial bits round trip = %x, want %x", out, want)
	}
	if s.lanes[0][0] != uint64(want[0])|uint64(want[1])<<8 {
		t.Errorf("lane (0,0) = %#x, want %#x", s.lanes[0][0], uint64(want[0])|uint64(want[1])<<8)
	}
}

// AbsorbBits XORs rather than overwrites: absorbing the same block twice
// restores the zero state.
func TestAbsorbIsXor(t *testing.T) {
	s, _ := NewState(32)
	block := make([]byte, 32)
	for i := range block {
		block[i] = byte(i + 1)
	}
	s.AbsorbBits(block, 0, len(block)*8)
	s.AbsorbBits(block, 0, len(block)*8)
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			if s.lanes[x][y] != 0 {
				t.Fatalf("lane (%d,%d) = %#x after double absorb, want 0", x, y, s.lanes[x][y])
			}
		}
	}
}

func TestReset(t *testing.T) {
	s, _ := NewState(64)
	s.AbsorbBits([]byte{0xaa, 0xbb, 0xcc}, 0, 24)
	s.Reset()
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			if s.lanes[x][y] != 0 {
				t.Fatalf("lane (%d,%d) = %#x after Reset, want 0", x, y, s.lanes[x][y])
			}
		}
	}
}

// The lane-complementing transform must be invisible: for every width, a
// state permuted with the OR-based chi matches one permuted with the
// standard chi, over several consecutive permutations.
func TestPlainChiMatchesLaneComplementing(t *testing.T) {
	for _, laneLength := range []int{8, 16, 32, 64} {
		bitrate := 8 * laneLength // byte-aligned, below the width
		block := make([]byte, bitrate/8)
		for i := range block {
			block[i] = byte(i*29 + 3)
		}
		fast, _ := NewState(laneLength)
		plain, _ := NewStateWithPlainChi(laneLength)
		fast.AbsorbBits(block, 0, bitrate)
		plain.AbsorbBits(block, 0, bitrate)
		for round := 0; round < 3; round++ {
			fast.Permute()
			plain.Permute()
			if fast.lanes != plain.lanes {
				t.Fatalf("lane %d: states diverge after permutation %d", laneLength, round+1)
			}
		}
	}
}
