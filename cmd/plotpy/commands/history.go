package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [PATH]",
		Short: "List recorded runs, optionally only those of one script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			var path string
			if len(args) == 1 {
				path = args[0]
			}

			records, err := c.app.History(cmd.Context(), path, c.options())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "TIME\tSTATUS\tMODE\tEXIT\tDURATION\tSCRIPT\tPATH")
			for _, r := range records {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
					r.Timestamp.Local().Format(time.DateTime),
					r.Status,
					r.Mode,
					r.ExitCode,
					r.Duration.Round(time.Millisecond),
					r.Script,
					r.Path,
				)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Bool("json", false, "Print the records as JSON")
	return cmd
}
