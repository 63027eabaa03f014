package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/leapstack-labs/rowcap/internal/cli/config"
	"github.com/leapstack-labs/rowcap/pkg/rowlimit"
	"github.com/spf13/cobra"

	// sqlite driver for executing capped queries.
	_ "modernc.org/sqlite"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Database string
	Input    string
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [SQL]",
		Short: "Apply the row cap and execute against a SQLite database",
		Long: `Apply the row cap to a statement and execute it against a SQLite
database.

Queries are capped before execution, so an unbounded SELECT can never pull
more than max-rows rows. Non-query statements are executed as-is.

When invoked without SQL on a terminal, enters interactive REPL mode.`,
		Example: `  # Execute a capped query
  rowcap run --db app.db "SELECT * FROM events"

  # Interactive mode
  rowcap run --db app.db

  # Output as JSON
  rowcap run --db app.db "SELECT * FROM events" --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			dbPath := opts.Database
			if dbPath == "" {
				dbPath = cfg.Database
			}
			if dbPath == "" {
				return fmt.Errorf("no database given: pass --db or set database in rowcap.yaml")
			}

			db, err := sql.Open("sqlite", dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			if len(args) == 0 && opts.Input == "" && isTerminal(os.Stdin) {
				replCfg := *cfg
				replCfg.Database = dbPath
				return runREPL(cmd, db, &replCfg)
			}

			query, err := readSQL(cmd, args, opts.Input)
			if err != nil {
				return err
			}
			return executeCapped(cmd.Context(), cmd, db, query, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database path")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	return cmd
}

// executeCapped applies the row cap to query and executes the result,
// rendering rows for queries and an affected-row count for everything else.
func executeCapped(ctx context.Context, cmd *cobra.Command, db *sql.DB, query string, cfg *config.Config) error {
	shape, err := rowlimit.Classify(query)
	if err != nil {
		return err
	}
	capped, err := rowlimit.Apply(query, cfg.Policy())
	if err != nil {
		return err
	}

	if !shape.IsQuery {
		res, err := db.ExecContext(ctx, capped)
		if err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		affected, _ := res.RowsAffected()
		fmt.Fprintf(cmd.OutOrStdout(), "OK (%d rows affected)\n", affected)
		return nil
	}

	rows, err := db.QueryContext(ctx, capped)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return renderResults(cmd.OutOrStdout(), rows, cfg.Format)
}
