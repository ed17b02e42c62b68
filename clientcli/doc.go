// Package clientcli implements the nudocs command-line client: an HTTP
// client for the Nudocs public API, the command handlers built on it, and
// the human and JSON output formatters.
//
// # Basic Usage
//
// Create a client and upload a file:
//
//	client, err := clientcli.New(&clientcli.Config{
//		BaseURL:     "https://nudocs.ai",
//		Credentials: resolver, // e.g. *config.Resolver
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	doc, err := client.Create(ctx, "notes.md", nudocs.MIMEMarkdown, data)
//
// Failed requests return *APIError. Use errors.Is with ErrNotFound,
// ErrUnauthorized or ErrForbidden to check the status.
//
// # Commands
//
// Commands wires a client to the state store and a Formatter:
//
//	cmds := &clientcli.Commands{
//		API:       client,
//		State:     state.NewStore(paths.StateFile),
//		Formatter: clientcli.NewFormatter(jsonOutput, quiet),
//		Stdout:    os.Stdout,
//		Stderr:    os.Stderr,
//	}
//	_, err = cmds.Link(ctx, "") // link of the last upload
package clientcli
