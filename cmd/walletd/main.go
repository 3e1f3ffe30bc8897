// Command walletd is the post-quantum XMSS wallet daemon entrypoint.
// It is a thin front-end: every subcommand calls straight into the
// internal/ library packages — internal/daemon for wallet and relay
// operations, internal/xmss, internal/seed and internal/qaddress for the
// stateless generate and derive commands (spec §9, "library core + thin
// front-end").
package main

import (
	"fmt"
	"os"

	"github.com/pqwallet/walletd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
