package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the current configuration",
		Long: `Show configuration paths, the API base URL, whether an API key is
set and the last upload. The API key itself is never printed and no
network request is made.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmds, err := c.commandsFrom(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmds.ShowConfig(cmd.Context())
			return err
		},
	}
}
