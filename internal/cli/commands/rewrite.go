// Package commands implements the rowcap subcommands.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/rowcap/internal/cli/config"
	"github.com/leapstack-labs/rowcap/pkg/rowlimit"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// RewriteOptions holds options for the rewrite command.
type RewriteOptions struct {
	Input string
}

// NewRewriteCommand creates the rewrite command.
func NewRewriteCommand() *cobra.Command {
	opts := &RewriteOptions{}

	cmd := &cobra.Command{
		Use:   "rewrite [SQL]",
		Short: "Apply the row cap to a SQL statement",
		Long: `Apply the configured row cap to a SQL statement and print the result.

Queries with an oversized (or ALL) LIMIT get it tightened in place; queries
with an oversized FETCH FIRST clause likewise. Queries without any limiting
clause get one appended. Non-query statements are printed unchanged apart
from trailing-terminator trimming. Invalid SQL fails with a positioned
syntax error.`,
		Example: `  # Cap an oversized limit
  rowcap rewrite "SELECT * FROM events LIMIT 50000"

  # Inject a limit where none exists
  rowcap rewrite --max-rows 500 "SELECT * FROM events"

  # Read from a file or a pipe
  rowcap rewrite --input query.sql
  cat query.sql | rowcap rewrite`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readSQL(cmd, args, opts.Input)
			if err != nil {
				return err
			}

			cfg := config.FromContext(cmd.Context())
			out, err := rowlimit.Apply(sql, cfg.Policy())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	return cmd
}

// readSQL resolves the SQL text from args, an input file, or piped stdin.
func readSQL(cmd *cobra.Command, args []string, input string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case input != "":
		content, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), nil
	case !isTerminal(os.Stdin):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	default:
		return "", fmt.Errorf("no SQL given: pass it as an argument, via --input, or on stdin")
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
