package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/rowcap/internal/cli/config"
	"github.com/leapstack-labs/rowcap/pkg/rowlimit"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Input string
}

// checkReport is the JSON shape of a classification result.
type checkReport struct {
	Kind       string `json:"kind"`
	IsQuery    bool   `json:"isQuery"`
	Limit      string `json:"limit,omitempty"`
	FetchFirst string `json:"fetchFirst,omitempty"`
	Capped     string `json:"capped"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [SQL]",
		Short: "Classify a SQL statement and show what the cap would do",
		Long: `Classify a SQL statement without executing anything.

Reports the statement family (query, ddl, dml, utility), any limiting clause
found on the outermost query body, and the text the row cap would produce.`,
		Example: `  rowcap check "SELECT * FROM events LIMIT 50000"

  # Machine-readable output
  rowcap check --format json "SELECT * FROM events"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readSQL(cmd, args, opts.Input)
			if err != nil {
				return err
			}

			cfg := config.FromContext(cmd.Context())
			shape, err := rowlimit.Classify(sql)
			if err != nil {
				return err
			}
			capped, err := rowlimit.Apply(sql, cfg.Policy())
			if err != nil {
				return err
			}

			report := checkReport{
				Kind:       shape.Kind.String(),
				IsQuery:    shape.IsQuery,
				Limit:      shape.LimitText,
				FetchFirst: shape.FetchFirstText,
				Capped:     capped,
			}
			return renderCheck(cmd.OutOrStdout(), report, cfg.Format)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	return cmd
}

// renderCheck writes a classification report in the requested format.
func renderCheck(w io.Writer, report checkReport, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRow(table.Row{"kind", report.Kind})
	t.AppendRow(table.Row{"query", fmt.Sprintf("%v", report.IsQuery)})
	t.AppendRow(table.Row{"limit", orDash(report.Limit)})
	t.AppendRow(table.Row{"fetch first", orDash(report.FetchFirst)})
	t.AppendRow(table.Row{"capped", report.Capped})
	t.Render()
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
