// Package main provides the rowcap CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/rowcap/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
