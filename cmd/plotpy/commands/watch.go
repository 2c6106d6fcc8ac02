package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/plotpy/internal/app"
	"go.trai.ch/plotpy/internal/engine/scheduler"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Run the body stored in FILE and run it again whenever FILE changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			window, _ := cmd.Flags().GetDuration("window")

			return c.app.Watch(cmd.Context(), args[0], app.WatchOptions{
				Options: c.options(),
				Out:     out,
				Window:  window,
				Report: func(res scheduler.Result, err error) {
					if err != nil {
						_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "run failed: %v\n", err)
						return
					}
					if perr := printOutput(cmd.OutOrStdout(), res.Output); perr != nil {
						_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "run failed: %v\n", perr)
					}
				},
			})
		},
	}
	cmd.Flags().StringP("out", "o", "", "Script path")
	cmd.Flags().Duration("window", 0, "Quiet period after a change before running again (default 150ms)")
	return cmd
}
