// Command keccaksum hashes files (or standard input) with one of the FIPS 202
// functions and prints the result as "hex  name" lines, one per input.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"keccak-sponge/pkg/fips202"
	"keccak-sponge/pkg/sponge"
)

// fixedAlgorithms are the fixed-output hash functions; output length is part
// of the function definition and --output-bits is rejected.
var fixedAlgorithms = map[string]func() *sponge.Sponge{
	"sha3-224":   fips202.SHA3_224,
	"sha3-256":   fips202.SHA3_256,
	"sha3-384":   fips202.SHA3_384,
	"sha3-512":   fips202.SHA3_512,
	"keccak-256": fips202.Keccak256,
	"keccak-512": fips202.Keccak512,
}

// xofAlgorithms are the extendable-output functions; --output-bits selects
// the output length.
var xofAlgorithms = map[string]func(int) (*sponge.Sponge, error){
	"shake128":    fips202.SHAKE128,
	"shake256":    fips202.SHAKE256,
	"rawshake128": fips202.RawSHAKE128,
	"rawshake256": fips202.RawSHAKE256,
}

func main() {
	app := &cli.App{
		Name:      "keccaksum",
		Usage:     "compute FIPS 202 (SHA-3 family) digests of files or stdin",
		ArgsUsage: "[file ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "algorithm",
				Aliases: []string{"a"},
				Value:   "sha3-256",
				Usage:   "hash function: " + algorithmNames(),
			},
			&cli.IntFlag{
				Name:    "output-bits",
				Aliases: []string{"n"},
				Usage:   "output length in bits (extendable-output functions only)",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "keccaksum: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	fn, err := selectSponge(ctx.String("algorithm"), ctx.Int("output-bits"))
	if err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return hashOne(fn, os.Stdin, "-")
	}
	for _, name := range ctx.Args().Slice() {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}
		err = hashOne(fn, f, name)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func hashOne(fn *sponge.Sponge, source io.Reader, name string) error {
	sum, err := fn.ApplyStream(source)
	if err != nil {
		return fmt.Errorf("hash %s: %w", name, err)
	}
	fmt.Printf("%s  %s\n", fips202.HexFromBytes(sum), name)
	return nil
}

func selectSponge(algorithm string, outputBits int) (*sponge.Sponge, error) {
	if fixed, ok := fixedAlgorithms[algorithm]; ok {
		if outputBits != 0 {
			return nil, fmt.Errorf("%s has a fixed output length; --output-bits applies only to %s",
				algorithm, xofNames())
		}
		return fixed(), nil
	}
	if xof, ok := xofAlgorithms[algorithm]; ok {
		if outputBits == 0 {
			outputBits = 256
		}
		return xof(outputBits)
	}
	return nil, fmt.Errorf("unknown algorithm %q (choose from %s)", algorithm, algorithmNames())
}

func algorithmNames() string {
	names := make([]string, 0, len(fixedAlgorithms)+len(xofAlgorithms))
	for name := range fixedAlgorithms {
		names = append(names, name)
	}
	for name := range xofAlgorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func xofNames() string {
	names := make([]string, 0, len(xofAlgorithms))
	for name := range xofAlgorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
