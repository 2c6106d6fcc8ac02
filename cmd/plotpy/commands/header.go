package commands

import (
	"io"

	"github.com/spf13/cobra"
)

func (c *CLI) newHeaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "header",
		Short: "Print the text written before every script body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), c.app.Header())
			return err
		},
	}
}
