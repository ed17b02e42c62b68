package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "link [ulid]",
		Aliases: []string{"url"},
		Short:   "Print the edit link of a document",
		Long: `Print the shareable edit link of a document.

Without a ULID, the last uploaded document is used. Only the URL is
written to stdout, so the output can be piped.

Examples:
  nudocs link
  nudocs link 01JABCDEF0123456789ABCDEFG
  open "$(nudocs link)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := c.commandsFrom(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmds.Link(cmd.Context(), firstArg(args))
			return err
		},
	}
}
