package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document",
		Long: `Upload a local file to Nudocs and print its edit link.

The uploaded document becomes the default for link and pull.

Examples:
  nudocs upload notes.md
  nudocs upload --json report.docx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := c.commandsFrom(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmds.Upload(cmd.Context(), firstArg(args))
			return err
		},
	}
}
