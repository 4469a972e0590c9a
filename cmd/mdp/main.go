// Command mdp checks, normalizes and exports MDP parameter files.
package main

import (
	"os"

	"github.com/roach88/mdp/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
