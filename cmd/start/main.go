// Command start creates contribution 0 of a new ceremony: either the curve
// generators repeated N times, or an SRS imported from an external
// Powers-of-Tau challenge file. Grounded on
// _examples/original_source/src/execs/start.rs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zircuit-labs/ceremony/internal/chain"
	"github.com/zircuit-labs/ceremony/internal/contribution"
	"github.com/zircuit-labs/ceremony/internal/logging"
	"github.com/zircuit-labs/ceremony/internal/ppot"
)

func main() {
	contributionsPath := flag.String("c", "", "the directory for storing the initial contribution (required)")
	challengePath := flag.String("p", "", "the file path for a PPoT challenge to import")
	challengeK := flag.Uint("k", 0, "the k value the PPoT challenge was generated with (required with -p)")
	hashChallenge := flag.Bool("h", false, "hash the PPoT challenge file for audit logging (only with -p)")
	flag.Parse()

	if *contributionsPath == "" {
		fmt.Fprintln(os.Stderr, "start: -c <contributions dir> is required")
		os.Exit(1)
	}
	if *challengePath != "" && *challengeK == 0 {
		fmt.Fprintln(os.Stderr, "start: -k <challenge k> is required when -p is given")
		os.Exit(1)
	}

	var c contribution.Contribution
	var err error
	if *challengePath != "" {
		logging.Log.Info().Str("path", *challengePath).Msg("reading PPoT challenge")
		c, err = ppot.ReadChallenge(*challengePath, uint32(*challengeK), *hashChallenge)
	} else {
		logging.Log.Info().Msg("creating a default SRS from the curve generators")
		c = contribution.Genesis()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}

	path, err := chain.DefaultPath(*contributionsPath, c.Id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}
	if err := c.WriteFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}
}
