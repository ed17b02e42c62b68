package main

import (
	"github.com/spf13/cobra"

	"github.com/pspdfkit/nudocs"
	"github.com/pspdfkit/nudocs/clientcli"
)

func (c *cli) newPullCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:     "pull [ulid]",
		Aliases: []string{"download", "export"},
		Short:   "Export a document to a local file",
		Long: `Export a document and save it locally.

Without a ULID, the last uploaded document is used. The file is written to
<ulid>.<ext> in the current directory unless --output is given. Existing
files are overwritten.

Formats: md, docx, pdf, html, txt, odt, rtf, epub, latex

Examples:
  nudocs pull
  nudocs pull --format md
  nudocs pull 01JABCDEF0123456789ABCDEFG --format pdf --output report.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := c.commandsFrom(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmds.Pull(cmd.Context(), clientcli.PullOptions{
				ULID:   firstArg(args),
				Format: format,
				Output: output,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", nudocs.DefaultExportFormat, "export format")
	cmd.Flags().StringVar(&output, "output", "", "output file path (default: <ulid>.<ext>)")
	return cmd
}
