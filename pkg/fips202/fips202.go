// Package fips202 provides the hash and extendable-output functions
// standardised by FIPS PUB 202, built on the Keccak sponge in pkg/sponge.
//
// All eight standard functions use the 1600-bit permutation:
//
//	SHA3-224     Keccak[1152,  448](M || 01, 224)
//	SHA3-256     Keccak[1088,  512](M || 01, 256)
//	SHA3-384     Keccak[ 832,  768](M || 01, 384)
//	SHA3-512     Keccak[ 576, 1024](M || 01, 512)
//	SHAKE128     Keccak[1344,  256](M || 1111, d)
//	SHAKE256     Keccak[1088,  512](M || 1111, d)
//	RawSHAKE128  Keccak[1344,  256](M || 11, d)
//	RawSHAKE256  Keccak[1088,  512](M || 11, d)
//
// The pre-standard Keccak-256 and Keccak-512 functions (no domain suffix) are
// also provided; they differ from SHA3-256/512 on every input.
package fips202

import "keccak-sponge/pkg/sponge"

// SHA3_224 returns the SHA3-224 sponge function.
func SHA3_224() *sponge.Sponge {
	return mustSponge(1152, 448, "01", 224)
}

// SHA3_256 returns the SHA3-256 sponge function.
func SHA3_256() *sponge.Sponge {
	return mustSponge(1088, 512, "01", 256)
}

// SHA3_384 returns the SHA3-384 sponge function.
func SHA3_384() *sponge.Sponge {
	return mustSponge(832, 768, "01", 384)
}

// SHA3_512 returns the SHA3-512 sponge function.
func SHA3_512() *sponge.Sponge {
	return mustSponge(576, 1024, "01", 512)
}

// SHAKE128 returns the SHAKE128 extendable-output function with the chosen
// output length in bits.
func SHAKE128(outputBits int) (*sponge.Sponge, error) {
	return sponge.New(1344, 256, "1111", outputBits)
}

// SHAKE256 returns the SHAKE256 extendable-output function with the chosen
// output length in bits.
func SHAKE256(outputBits int) (*sponge.Sponge, error) {
	return sponge.New(1088, 512, "1111", outputBits)
}

// RawSHAKE128 returns the RawSHAKE128 extendable-output function with the
// chosen output length in bits.
func RawSHAKE128(outputBits int) (*sponge.Sponge, error) {
	return sponge.New(1344, 256, "11", outputBits)
}

// RawSHAKE256 returns the RawSHAKE256 extendable-output function with the
// chosen output length in bits.
func RawSHAKE256(outputBits int) (*sponge.Sponge, error) {
	return sponge.New(1088, 512, "11", outputBits)
}

// Keccak256 returns the original Keccak-256 function (no domain suffix), as
// used by Ethereum. Not the same function as SHA3-256.
func Keccak256() *sponge.Sponge {
	return mustSponge(1088, 512, "", 256)
}

// Keccak512 returns the original Keccak-512 function (no domain suffix).
func Keccak512() *sponge.Sponge {
	return mustSponge(576, 1024, "", 512)
}

// Sum224 computes the SHA3-224 hash of data.
func Sum224(data []byte) []byte {
	return SHA3_224().Apply(data)
}

// Sum256 computes the SHA3-256 hash of data.
func Sum256(data []byte) []byte {
	return SHA3_256().Apply(data)
}

// Sum384 computes the SHA3-384 hash of data.
func Sum384(data []byte) []byte {
	return SHA3_384().Apply(data)
}

// Sum512 computes the SHA3-512 hash of data.
func Sum512(data []byte) []byte {
	return SHA3_512().Apply(data)
}

// ShakeSum128 derives outputBits bits of SHAKE128 output from data.
func ShakeSum128(data []byte, outputBits int) ([]byte, error) {
	s, err := SHAKE128(outputBits)
	if err != nil {
		return nil, err
	}
	return s.Apply(data), nil
}

// ShakeSum256 derives outputBits bits of SHAKE256 output from data.
func ShakeSum256(data []byte, outputBits int) ([]byte, error) {
	s, err := SHAKE256(outputBits)
	if err != nil {
		return nil, err
	}
	return s.Apply(data), nil
}

// mustSponge builds a preset sponge whose parameters are known valid.
func mustSponge(bitrate, capacity int, suffixBits string, outputBits int) *sponge.Sponge {
	s, err := sponge.New(bitrate, capacity, suffixBits, outputBits)
	if err != nil {
		panic(err)
	}
	return s
}
