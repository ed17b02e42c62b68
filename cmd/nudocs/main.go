package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pspdfkit/nudocs"
	"github.com/pspdfkit/nudocs/clientcli"
	"github.com/pspdfkit/nudocs/config"
	"github.com/pspdfkit/nudocs/state"
)

var version = "dev"

// cli holds the state of a single invocation.
type cli struct {
	stdin  io.ReadCloser
	stdout io.Writer
	stderr io.Writer
	paths  config.Paths

	jsonOutput bool
	quiet      bool
	debug      bool

	formatter clientcli.Formatter
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.ReadCloser, stdout, stderr io.Writer) int {
	c := &cli{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		paths:  config.DefaultPaths(),
	}
	root := c.newRootCmd()

	if handled, err := c.preflight(root, args); handled {
		if err != nil {
			c.reportError(err)
			return 1
		}
		return 0
	}

	root.SetArgs(normalizeArgs(root, args))
	if err := root.ExecuteContext(ctx); err != nil {
		c.reportError(err)
		return 1
	}
	return 0
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nudocs",
		Short: "Command-line client for Nudocs",
		Long: `Nudocs CLI - upload, share and export documents with Nudocs.

After an upload, link and pull default to the uploaded document.

Examples:
  nudocs upload notes.md
  nudocs link
  nudocs pull --format pdf
  nudocs list`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&c.quiet, "quiet", "q", false, "suppress non-essential output")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().String("url", "", "API base URL (default: "+config.DefaultURL+", env: NUDOCS_URL)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: NUDOCS_LOG_LEVEL)")

	root.AddCommand(
		c.newUploadCmd(),
		c.newListCmd(),
		c.newLinkCmd(),
		c.newPullCmd(),
		c.newDeleteCmd(),
		c.newConfigCmd(),
	)

	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.SetIn(c.stdin)
	return root
}

// setup loads settings into the command context and configures logging.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	c.formatter = clientcli.NewFormatter(c.jsonOutput, c.quiet)

	settings, err := config.Load([]string{c.paths.ConfigFile}, cmd.Flags())
	if err != nil {
		return err
	}
	setupLogging(c.stderr, settings.Log.Level, c.debug)
	cmd.SetContext(config.WithContext(cmd.Context(), settings))
	return nil
}

// commandsFrom wires the command handlers from the settings stored in ctx.
func (c *cli) commandsFrom(ctx context.Context) (*clientcli.Commands, error) {
	settings, err := config.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	resolver := config.NewResolver(c.paths, settings)
	client, err := clientcli.New(&clientcli.Config{
		BaseURL:     resolver.BaseURL(),
		Credentials: resolver,
	}, clientcli.WithUserAgent(clientcli.DefaultUserAgent+"/"+version))
	if err != nil {
		return nil, err
	}

	return &clientcli.Commands{
		API:         client,
		State:       state.NewStore(c.paths.StateFile),
		Credentials: resolver,
		Paths:       c.paths,
		BaseURL:     client.BaseURL(),
		Formatter:   c.formatter,
		Stdout:      c.stdout,
		Stderr:      c.stderr,
	}, nil
}

// preflight handles help and version before cobra parses anything, so that
// they work in any position. Help wins over version.
func (c *cli) preflight(root *cobra.Command, args []string) (bool, error) {
	if len(args) == 0 {
		return true, root.Help()
	}

	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		if sub := findSubcommand(root, args[0]); sub != nil {
			return true, sub.Help()
		}
		return true, root.Help()
	}

	if slices.Contains(args, "--version") || slices.Contains(args, "-v") {
		_, err := fmt.Fprintf(c.stdout, "nudocs-cli v%s\n", version)
		return true, err
	}

	return false, nil
}

// normalizeArgs drops unknown flags, and value flags with nothing after
// them, so that the flag parser never takes a positional argument as a
// flag value. Flags are looked up on the subcommand named by the first
// positional argument and on the root's persistent flags.
func normalizeArgs(root *cobra.Command, args []string) []string {
	var (
		out []string
		sub *cobra.Command
	)
	seenPositional := false

	lookup := func(name string) *pflag.Flag {
		if sub != nil {
			if f := sub.Flags().Lookup(name); f != nil {
				return f
			}
		}
		return root.PersistentFlags().Lookup(name)
	}
	lookupShort := func(name string) *pflag.Flag {
		if sub != nil {
			if f := sub.Flags().ShorthandLookup(name); f != nil {
				return f
			}
		}
		return root.PersistentFlags().ShorthandLookup(name)
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return append(out, args[i:]...)

		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			f := lookup(name)
			switch {
			case f == nil:
			case hasValue || !takesValue(f):
				out = append(out, arg)
			case i+1 < len(args):
				out = append(out, arg, args[i+1])
				i++
			}

		case len(arg) > 1 && arg[0] == '-':
			known := true
			for _, r := range arg[1:] {
				if f := lookupShort(string(r)); f == nil || takesValue(f) {
					known = false
					break
				}
			}
			if known {
				out = append(out, arg)
			}

		default:
			if !seenPositional {
				seenPositional = true
				sub = findSubcommand(root, arg)
			}
			out = append(out, arg)
		}
	}
	return out
}

func takesValue(f *pflag.Flag) bool {
	return f.NoOptDefVal == ""
}

func findSubcommand(root *cobra.Command, name string) *cobra.Command {
	for _, cmd := range root.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return cmd
		}
	}
	return nil
}

// reportError prints err once, followed by setup or usage guidance.
func (c *cli) reportError(err error) {
	f := c.formatter
	if f == nil {
		f = clientcli.NewFormatter(c.jsonOutput, c.quiet)
	}
	_ = f.FormatError(c.stderr, err)

	if c.jsonOutput {
		return
	}

	if errors.Is(err, nudocs.ErrMissingCredential) {
		_, _ = fmt.Fprintf(c.stderr, "\n%s\n", config.SetupInstructions)
	}

	var usageErr *nudocs.UsageError
	if errors.As(err, &usageErr) && usageErr.Usage != "" {
		_, _ = fmt.Fprintf(c.stderr, "\nUsage: %s\n", usageErr.Usage)
	}
}

// firstArg returns args[0], or "" when there are no arguments.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
