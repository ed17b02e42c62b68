package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmds, err := c.commandsFrom(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmds.List(cmd.Context())
			return err
		},
	}
}
