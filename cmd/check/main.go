// Command check walks every contribution in a directory in id order,
// verifying each one's SRS and each one's proof against its predecessor.
// Grounded on _examples/original_source/src/execs/check.rs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zircuit-labs/ceremony/internal/chain"
)

func main() {
	contributionsPath := flag.String("c", "", "the directory containing the contributions (required)")
	flag.Parse()

	if *contributionsPath == "" {
		fmt.Fprintln(os.Stderr, "check: -c <contributions dir> is required")
		os.Exit(1)
	}

	ok, err := chain.CheckChain(*contributionsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "check: chain verification failed")
		os.Exit(1)
	}

	fmt.Println("chain verification succeeded")
}
