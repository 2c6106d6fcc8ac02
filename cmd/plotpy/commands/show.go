package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/plotpy/internal/app"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show BODY",
		Short: "Run a body in cancellable mode and keep its window open",
		Long: "Run a body in cancellable mode. The interpreter stays open until the script ends,\n" +
			"the timeout passes, Enter is pressed or the command is interrupted. Enter is only\n" +
			"read when stdin is a terminal.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			noDismiss, _ := cmd.Flags().GetBool("no-dismiss")

			body, err := app.ReadBody(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			opts := app.ShowOptions{
				Options: c.options(),
				Out:     out,
				Timeout: timeout,
			}
			// stdin cannot carry both the body and the dismiss line, and only a
			// terminal can answer the prompt.
			if !noDismiss && args[0] != "-" && c.isTerminal(cmd.InOrStdin()) {
				opts.Dismiss = cmd.InOrStdin()
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Press Enter to close the window")
			}

			res, err := c.app.Show(cmd.Context(), body, opts)
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), res.Output)
		},
	}
	cmd.Flags().StringP("out", "o", "", "Script path")
	cmd.Flags().Duration("timeout", 0, "Close the window after this long (default: never)")
	cmd.Flags().Bool("no-dismiss", false, "Do not close the window when Enter is pressed")
	return cmd
}
