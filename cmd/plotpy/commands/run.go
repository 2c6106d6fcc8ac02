package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.trai.ch/plotpy/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run BODY...",
		Short: "Write each body after the plot header and run it to completion",
		Long: "Write each body after the plot header and run it to completion.\n\n" +
			"A body is Python source text, @FILE to read it from a file, or - to read it from stdin.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			out, _ := cmd.Flags().GetString("out")
			jobs, _ := cmd.Flags().GetInt("jobs")

			bodies := make([]string, len(args))
			for i, arg := range args {
				body, err := app.ReadBody(arg, cmd.InOrStdin())
				if err != nil {
					return err
				}
				bodies[i] = body
			}

			opts := app.RunOptions{
				Options: c.options(),
				Out:     out,
				Jobs:    jobs,
				Summary: cmd.ErrOrStderr(),
			}
			results, err := c.app.Run(cmd.Context(), bodies, opts)

			var errs []error
			if err != nil {
				errs = append(errs, err)
			}
			for _, res := range results {
				if perr := printOutput(cmd.OutOrStdout(), res.Output); perr != nil {
					errs = append(errs, perr)
				}
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringP("out", "o", "", "Script path for one body, or directory for several")
	cmd.Flags().IntP("jobs", "j", 0, "Number of interpreters to run at once (default: one per CPU)")
	return cmd
}
