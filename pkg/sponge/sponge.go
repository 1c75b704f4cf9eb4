// Package sponge implements the Keccak sponge construction over the
// permutation state in pkg/keccak.
//
// A sponge is configured with a bitrate r, a capacity c, a domain suffix
// bitstring and an output length n. Applying it to a message proceeds as:
//
//	message bits || suffix bits || pad10*1  ->  absorb blocks of r bits,
//	permuting after each  ->  squeeze blocks of r bits, permuting between
//	them, until n bits have been produced
//
// Bits are addressed least-significant-first within each byte: bit i of a
// buffer is bit (i & 7) of byte (i >> 3). Message lengths are given in bits,
// so messages need not occupy a whole number of bytes.
//
// A Sponge is immutable and safe to share; every application allocates its
// own permutation state.
package sponge

import (
	"errors"
	"fmt"
	"io"

	"keccak-sponge/pkg/keccak"
)

// Error kinds reported by sponge construction and application. Errors are
// wrapped with detail; test with errors.Is.
var (
	// ErrInvalidParameter reports a bitrate, capacity, suffix, output length
	// or message length outside the valid range.
	ErrInvalidParameter = errors.New("invalid sponge parameter")

	// ErrUnsupported reports a configuration that is valid Keccak but outside
	// what this implementation supports: bitrates not divisible by eight, and
	// permutation widths below 200 bits.
	ErrUnsupported = errors.New("unsupported sponge configuration")
)

// validWidths is the set of Keccak permutation widths (25 lanes of
// 1, 2, 4, 8, 16, 32 or 64 bits).
var validWidths = map[int]bool{
	25:   true,
	50:   true,
	100:  true,
	200:  true,
	400:  true,
	800:  true,
	1600: true,
}

// minSupportedWidth is the smallest permutation width with whole-byte lanes.
// Narrower widths are valid Keccak but have no published known-answer
// vectors, so they stay unsupported.
const minSupportedWidth = 200

// Sponge is an immutable Keccak sponge function: a permutation width split
// into bitrate and capacity, a domain suffix, and an output length. Create
// one with New and share it freely; each Apply uses a fresh state.
type Sponge struct {
	bitrate    int
	capacity   int
	suffixBits string
	outputBits int
	laneLength int
	plainChi   bool
}

// New returns a sponge function with the given bitrate, capacity, domain
// suffix and output length, all in bits. The suffix is a bitstring such as
// "01", read least-significant-first, and may be empty; it is appended after
// the message and before the pad10*1 padding. The sum bitrate+capacity must
// be a valid permutation width of at least 200 bits, and the bitrate must be
// divisible by eight.
func New(bitrate, capacity int, suffixBits string, outputBits int) (*Sponge, error) {
	return newSponge(bitrate, capacity, suffixBits, outputBits, false)
}

// NewWithPlainChi is New with the lane-complementing optimisation disabled,
// so permutations run the standard chi step. Output is identical to New's;
// the plain path exists to validate the optimised one.
func NewWithPlainChi(bitrate, capacity int, suffixBits string, outputBits int) (*Sponge, error) {
	return newSponge(bitrate, capacity, suffixBits, outputBits, true)
}

func newSponge(bitrate, capacity int, suffixBits string, outputBits int, plainChi bool) (*Sponge, error) {
	if bitrate < 1 {
		return nil, fmt.Errorf("bitrate %d must be greater than zero: %w", bitrate, ErrInvalidParameter)
	}
	if bitrate%8 != 0 {
		return nil, fmt.Errorf("bitrate %d not divisible by 8: %w", bitrate, ErrUnsupported)
	}
	if bitrate >= 1600 {
		return nil, fmt.Errorf("bitrate %d must be less than 1600: %w", bitrate, ErrInvalidParameter)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("capacity %d must be greater than zero: %w", capacity, ErrInvalidParameter)
	}
	for _, c := range suffixBits {
		if c != '0' && c != '1' {
			return nil, fmt.Errorf("suffix %q may contain only 0 and 1 digits: %w", suffixBits, ErrInvalidParameter)
		}
	}
	if len(suffixBits) > 8 {
		return nil, fmt.Errorf("suffix %q longer than 8 bits: %w", suffixBits, ErrInvalidParameter)
	}
	if outputBits < 1 {
		return nil, fmt.Errorf("output length %d must be greater than zero: %w", outputBits, ErrInvalidParameter)
	}
	width := bitrate + capacity
	if !validWidths[width] {
		return nil, fmt.Errorf("width %d (bitrate+capacity) must be one of 25, 50, 100, 200, 400, 800, 1600: %w",
			width, ErrInvalidParameter)
	}
	if width < minSupportedWidth {
		return nil, fmt.Errorf("width %d below 200 bits: %w", width, ErrUnsupported)
	}
	return &Sponge{
		bitrate:    bitrate,
		capacity:   capacity,
		suffixBits: suffixBits,
		outputBits: outputBits,
		laneLength: width / 25,
		plainChi:   plainChi,
	}, nil
}

// Bitrate returns the number of bits exchanged with the state per block.
func (s *Sponge) Bitrate() int { return s.bitrate }

// Capacity returns the number of state bits never touched by absorb or
// squeeze.
func (s *Sponge) Capacity() int { return s.capacity }

// Width returns the permutation width in bits, bitrate plus capacity.
func (s *Sponge) Width() int { return s.bitrate + s.capacity }

// LaneLength returns the length in bits of each of the 25 state lanes.
func (s *Sponge) LaneLength() int { return s.laneLength }

// Rounds returns the number of rounds in each permutation of this sponge.
func (s *Sponge) Rounds() int {
	return 12 + 2*log2(s.laneLength)
}

// SuffixBits returns the domain suffix bitstring, possibly empty.
func (s *Sponge) SuffixBits() string { return s.suffixBits }

// OutputBits returns the configured hash output length in bits.
func (s *Sponge) OutputBits() int { return s.outputBits }

// String summarises the sponge as Keccak[r, c](M || suffix, n).
func (s *Sponge) String() string {
	if s.suffixBits == "" {
		return fmt.Sprintf("Keccak[%d, %d](M, %d)", s.bitrate, s.capacity, s.outputBits)
	}
	return fmt.Sprintf("Keccak[%d, %d](M || %s, %d)", s.bitrate, s.capacity, s.suffixBits, s.outputBits)
}

func log2(laneLength int) int {
	n := 0
	for v := laneLength; v > 1; v >>= 1 {
		n++
	}
	return n
}

// Apply hashes the given message, treating every bit of the byte slice as
// message input, and returns the output bits packed into a byte slice of
// ceil(n/8) bytes. When n is not a multiple of eight, the unused high bits of
// the final byte are zero.
func (s *Sponge) Apply(message []byte) []byte {
	out, err := s.ApplyBits(message, len(message)*8)
	if err != nil {
		// Unreachable: a whole-slice bit length is always in range.
		panic(err)
	}
	return out
}

// ApplyBits hashes the first messageBits bits of the given message. Bits are
// read least-significant-first from each byte; any bits past messageBits are
// ignored.
func (s *Sponge) ApplyBits(message []byte, messageBits int) ([]byte, error) {
	if messageBits < 0 {
		return nil, fmt.Errorf("message length %d bits is negative: %w", messageBits, ErrInvalidParameter)
	}
	if messageBits > len(message)*8 {
		return nil, fmt.Errorf("message length %d bits exceeds the %d bits available: %w",
			messageBits, len(message)*8, ErrInvalidParameter)
	}
	totalBits := s.totalInputLength(messageBits)
	input := make([]byte, totalBits/8)
	copyMessageBits(message, messageBits, input)
	s.appendSuffix(input, messageBits)
	s.padInput(input, messageBits)

	state, err := s.newState()
	if err != nil {
		return nil, err
	}
	state.Absorb(input, totalBits, s.bitrate)
	hash := state.Squeeze(s.bitrate, s.outputBits)
	state.Reset()
	return hash, nil
}

// ApplyStream hashes every byte read from the given source. Blocks of
// bitrate/8 bytes are absorbed as they are read; the final short block goes
// through the same suffix and padding path as ApplyBits. A read failure
// aborts the computation with the source's error wrapped.
func (s *Sponge) ApplyStream(source io.Reader) ([]byte, error) {
	state, err := s.newState()
	if err != nil {
		return nil, err
	}
	block := make([]byte, s.bitrate/8)
	bytesRead, err := readBlock(source, block)
	for err == nil && bytesRead == len(block) {
		state.AbsorbBits(block, 0, s.bitrate)
		state.Permute()
		bytesRead, err = readBlock(source, block)
	}
	if err != nil {
		return nil, fmt.Errorf("read message block: %w", err)
	}

	messageBits := bytesRead * 8
	final := s.prepareFinalBlock(block, bytesRead, messageBits)
	s.appendSuffix(final, messageBits)
	s.padInput(final, messageBits)
	state.Absorb(final, len(final)*8, s.bitrate)
	hash := state.Squeeze(s.bitrate, s.outputBits)
	state.Reset()
	return hash, nil
}

func (s *Sponge) newState() (*keccak.State, error) {
	if s.plainChi {
		return keccak.NewStateWithPlainChi(s.laneLength)
	}
	return keccak.NewState(s.laneLength)
}

// readBlock fills block from the source, returning the number of bytes read.
// A clean end of input is not an error: the byte count is simply short.
func readBlock(source io.Reader, block []byte) (int, error) {
	n, err := io.ReadFull(source, block)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, nil
	}
	return n, err
}

// prepareFinalBlock returns a zero-padded buffer large enough to hold the
// final messageBits bits plus suffix and padding. Usually this is a single
// block, but when the suffix and the two padding bits do not fit after the
// message, the padding spills into a second block.
func (s *Sponge) prepareFinalBlock(block []byte, bytesRead, messageBits int) []byte {
	totalBits := s.totalInputLength(messageBits)
	final := make([]byte, totalBits/8)
	copy(final, block[:bytesRead])
	return final
}

// totalInputLength returns the length, in bits, of the message once suffix
// and pad10*1 are appended: the smallest positive multiple of the bitrate
// that is at least messageBits + len(suffix) + 2.
func (s *Sponge) totalInputLength(messageBits int) int {
	minimum := messageBits + len(s.suffixBits) + 2
	if minimum%s.bitrate == 0 {
		return minimum
	}
	return minimum + s.bitrate - minimum%s.bitrate
}

// copyMessageBits copies exactly messageBits bits of message into the zeroed
// input buffer: whole bytes first, then the masked partial byte.
func copyMessageBits(message []byte, messageBits int, input []byte) {
	wholeBytes := messageBits / 8
	copy(input, message[:wholeBytes])
	if rem := messageBits % 8; rem != 0 {
		input[wholeBytes] = message[wholeBytes] & (1<<rem - 1)
	}
}

// appendSuffix ORs the domain suffix bits into input starting at bit index
// messageBits.
func (s *Sponge) appendSuffix(input []byte, messageBits int) {
	for i := 0; i < len(s.suffixBits); i++ {
		if s.suffixBits[i] == '1' {
			setBit(input, messageBits+i)
		}
	}
}

// padInput applies pad10*1 after the message and suffix bits: a 1 bit, the
// smallest run of 0 bits that lands the final 1 bit on a multiple of the
// bitrate, then that final 1 bit. When the first padding bit falls on the
// last bit of a block, the padding spans two whole blocks.
func (s *Sponge) padInput(input []byte, messageBits int) {
	padStart := messageBits + len(s.suffixBits)
	setBit(input, padStart)
	setBit(input, padStart+1+s.zeroPadLength(padStart))
}

// zeroPadLength returns the number of 0 bits between the two 1 bits of
// pad10*1 when padding starts at bit position p.
func (s *Sponge) zeroPadLength(p int) int {
	rem := (p + 2) % s.bitrate
	if rem == 0 {
		return 0
	}
	return s.bitrate - rem
}

// setBit ORs bit i of the buffer high. OR rather than addition keeps the
// write idempotent.
func setBit(buf []byte, i int) {
	buf[i/8] |= 1 << (i % 8)
}
