// Command finalize lifts the latest contribution into downstream KZG
// parameters. Grounded on _examples/original_source/src/execs/finalize.rs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zircuit-labs/ceremony"
	"github.com/zircuit-labs/ceremony/internal/finalize"
)

func main() {
	contributionsPath := flag.String("c", "", "the directory containing the contributions (required)")
	outputPath := flag.String("o", "", "the output filepath for the finalized parameters (default <dir>/final.params)")
	flag.Parse()

	if *contributionsPath == "" {
		fmt.Fprintln(os.Stderr, "finalize: -c <contributions dir> is required")
		os.Exit(1)
	}

	out := *outputPath
	if out == "" {
		out = filepath.Join(*contributionsPath, ceremony.DefaultParamsFilename)
	}

	if err := finalize.Finalize(*contributionsPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "finalize: %v\n", err)
		os.Exit(1)
	}
}
