package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/pspdfkit/nudocs/clientcli"
)

func (c *cli) newDeleteCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:     "delete <ulid>",
		Aliases: []string{"rm"},
		Short:   "Delete a document",
		Long: `Delete a document from Nudocs.

A ULID is always required. If the document is the last upload, link and
pull no longer default to it.

Examples:
  nudocs delete 01JABCDEF0123456789ABCDEFG
  nudocs rm -i 01JABCDEF0123456789ABCDEFG`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirm clientcli.ConfirmFunc
			if interactive {
				confirm = c.confirmDelete
			}
			cmds, err := c.commandsFrom(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmds.Delete(cmd.Context(), firstArg(args), confirm)
			return err
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask before deleting")
	return cmd
}

// confirmDelete prompts on stderr. Declining or interrupting counts as no.
func (c *cli) confirmDelete(ulid string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Delete document %s", ulid),
		IsConfirm: true,
		Stdin:     c.stdin,
		Stdout:    nopWriteCloser{c.stderr},
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) ||
			errors.Is(err, promptui.ErrInterrupt) ||
			errors.Is(err, promptui.ErrEOF) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
