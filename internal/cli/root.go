// Package cli provides the command-line interface for rowcap.
package cli

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/rowcap/internal/cli/commands"
	"github.com/leapstack-labs/rowcap/internal/cli/config"
	"github.com/leapstack-labs/rowcap/pkg/rowlimit"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rowcap",
		Short: "rowcap - SQL classifier and row-limit enforcer",
		Long: `rowcap classifies SQL statements and enforces a maximum row limit on
SELECT-family queries. An existing LIMIT or FETCH FIRST clause above the cap
is tightened in place; a query without one gets a LIMIT appended. DDL, DML,
and utility statements pass through untouched, and invalid SQL is reported
with line and column instead of being silently mangled.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(config.NewContext(cmd.Context(), cfg))

			if cfg.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "max-rows=%d no-limit=%v\n", cfg.MaxRows, cfg.NoLimit)
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default rowcap.yaml in working directory)")
	pf.Int("max-rows", rowlimit.DefaultMaxRows, "maximum number of rows a query may return")
	pf.Bool("no-limit", false, "disable row-limit enforcement")
	pf.StringP("format", "f", "table", "output format: table, json, csv, md")
	pf.BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(commands.NewRewriteCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))

	return rootCmd
}

// Execute runs the root command and returns an exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
