// Command contribute reads the last contribution, derives a fresh secret
// pair from the configured entropy sources, rescales the SRS, and writes
// the resulting contribution. Grounded on
// _examples/original_source/src/execs/contribute.rs and
// src/lib/contribute.rs's contribute orchestration.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zircuit-labs/ceremony/internal/chain"
	"github.com/zircuit-labs/ceremony/internal/logging"
	"github.com/zircuit-labs/ceremony/internal/rescale"
	"github.com/zircuit-labs/ceremony/internal/secrets"
	"github.com/zircuit-labs/ceremony/internal/srsverify"
)

// stringList accumulates repeated -f flags, since the stdlib flag package
// has no native repeated-string-flag type.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	contributionsPath := flag.String("c", "", "the directory containing the contributions (required)")
	var filesToHash stringList
	flag.Var(&filesToHash, "f", "hash the given file into the entropy accumulator (repeatable)")
	fromStdin := flag.Bool("i", false, "hash input from stdin into the entropy accumulator")
	randomBytesSize := flag.Uint64("r", 0, "hash this many OS-random bytes into the entropy accumulator")
	hashIterations := flag.Uint("h", 0, "iterate the entropy accumulator this many times")
	revealS := flag.Bool("p", false, "reveal the rescaling secret by setting the blinding factor to zero")
	flag.Parse()

	if *contributionsPath == "" {
		fmt.Fprintln(os.Stderr, "contribute: -c <contributions dir> is required")
		os.Exit(1)
	}

	explicit := len(filesToHash) > 0 || *fromStdin || *randomBytesSize > 0 || *hashIterations > 0 || *revealS

	var cfg secrets.Config
	if explicit {
		cfg = secrets.Config{
			FilesToHash: filesToHash,
			FromStdin:   *fromStdin,
			RevealS:     *revealS,
		}
		if *randomBytesSize > 0 {
			cfg.RandomBytesSize = randomBytesSize
		}
		if *hashIterations > 0 {
			iter := uint32(*hashIterations)
			cfg.HashIterations = &iter
		}
	} else {
		cfg = secrets.DefaultConfig()
	}

	last, err := chain.Last(*contributionsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "contribute: %v\n", err)
		os.Exit(1)
	}

	if !srsverify.Verify(&last) {
		fmt.Fprintf(os.Stderr, "contribute: the retrieved last contribution (id %d) is not valid\n", last.Id)
		os.Exit(1)
	}

	s, z, err := secrets.Derive(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "contribute: %v\n", err)
		os.Exit(1)
	}

	next := rescale.Apply(&last, s.Get(), z.Get())
	s.Clear()
	z.Clear()

	path, err := chain.DefaultPath(*contributionsPath, next.Id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "contribute: %v\n", err)
		os.Exit(1)
	}
	if err := next.WriteFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "contribute: %v\n", err)
		os.Exit(1)
	}

	logging.Log.Info().Uint32("id", next.Id).Msg("contribution complete")
}
