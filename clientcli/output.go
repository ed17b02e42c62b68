package clientcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pspdfkit/nudocs"
)

// Formatter formats results for output.
type Formatter interface {
	FormatProgress(w io.Writer, msg string) error
	FormatUpload(w io.Writer, result *UploadResult) error
	FormatList(w io.Writer, docs []nudocs.Document) error
	FormatLink(w io.Writer, result *LinkResult) error
	FormatPull(w io.Writer, result *PullResult) error
	FormatDelete(w io.Writer, result *DeleteResult) error
	FormatConfig(w io.Writer, report *ConfigReport) error
	FormatError(w io.Writer, err error) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatProgress writes a status line unless Quiet is set.
func (f *HumanFormatter) FormatProgress(w io.Writer, msg string) error {
	if !f.Quiet {
		_, _ = fmt.Fprintln(w, msg)
	}
	return nil
}

// FormatUpload formats an upload result as human-readable text.
func (f *HumanFormatter) FormatUpload(w io.Writer, result *UploadResult) error {
	if !f.Quiet {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "✓ Upload successful")
	}
	_, _ = fmt.Fprintf(w, "  ULID:  %s\n", result.ULID)
	_, _ = fmt.Fprintf(w, "  Title: %s\n", result.Title)
	_, _ = fmt.Fprintf(w, "  Link:  %s\n", result.URL)
	return nil
}

// FormatList formats documents as human-readable text.
func (f *HumanFormatter) FormatList(w io.Writer, docs []nudocs.Document) error {
	if len(docs) == 0 {
		_, _ = fmt.Fprintln(w, "No documents found.")
		return nil
	}

	_, _ = fmt.Fprintf(w, "Found %d document(s):\n\n", len(docs))
	for i := range docs {
		d := &docs[i]
		_, _ = fmt.Fprintf(w, "  %s\n", d.ULID)
		_, _ = fmt.Fprintf(w, "    Title: %s\n", d.DisplayTitle())
		_, _ = fmt.Fprintf(w, "    Owner: %s\n", d.Owner)
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

// FormatLink writes the URL alone on one line.
func (f *HumanFormatter) FormatLink(w io.Writer, result *LinkResult) error {
	_, _ = fmt.Fprintln(w, result.URL)
	return nil
}

// FormatPull formats an export result as human-readable text.
func (f *HumanFormatter) FormatPull(w io.Writer, result *PullResult) error {
	_, _ = fmt.Fprintf(w, "✓ Saved: %s\n", result.Path)
	return nil
}

// FormatDelete formats a delete result as human-readable text.
func (f *HumanFormatter) FormatDelete(w io.Writer, result *DeleteResult) error {
	if result.Deleted {
		_, _ = fmt.Fprintln(w, "✓ Deleted")
	}
	return nil
}

// FormatConfig formats the configuration report as human-readable text.
func (f *HumanFormatter) FormatConfig(w io.Writer, report *ConfigReport) error {
	_, _ = fmt.Fprintln(w, "Nudocs CLI Configuration")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Config directory: %s\n", report.ConfigDir)
	_, _ = fmt.Fprintf(w, "API key file:     %s\n", report.APIKeyFile)
	_, _ = fmt.Fprintf(w, "State file:       %s\n", report.StateFile)
	_, _ = fmt.Fprintf(w, "API base URL:     %s\n", report.BaseURL)
	_, _ = fmt.Fprintln(w)

	status := "✗ not set"
	if report.APIKeyConfigured {
		status = "✓ configured"
	}
	_, _ = fmt.Fprintf(w, "API key:          %s\n", status)

	if lu := report.LastUpload; lu != nil {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Last upload:")
		_, _ = fmt.Fprintf(w, "  ULID:  %s\n", lu.ULID)
		_, _ = fmt.Fprintf(w, "  Title: %s\n", lu.Title)
		_, _ = fmt.Fprintf(w, "  Date:  %s\n", lu.UploadedAt.Format(time.RFC3339))
	}
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "✗ %v\n", err)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatProgress is a no-op; JSON output carries results only.
func (f *JSONFormatter) FormatProgress(io.Writer, string) error {
	return nil
}

// FormatUpload formats an upload result as JSON.
func (f *JSONFormatter) FormatUpload(w io.Writer, result *UploadResult) error {
	return writeJSON(w, result)
}

// FormatList formats documents as JSON.
func (f *JSONFormatter) FormatList(w io.Writer, docs []nudocs.Document) error {
	if docs == nil {
		docs = []nudocs.Document{}
	}
	output := struct {
		Count     int               `json:"count"`
		Documents []nudocs.Document `json:"documents"`
	}{
		Count:     len(docs),
		Documents: docs,
	}
	return writeJSON(w, output)
}

// FormatLink formats a link result as JSON.
func (f *JSONFormatter) FormatLink(w io.Writer, result *LinkResult) error {
	return writeJSON(w, result)
}

// FormatPull formats an export result as JSON.
func (f *JSONFormatter) FormatPull(w io.Writer, result *PullResult) error {
	return writeJSON(w, result)
}

// FormatDelete formats a delete result as JSON.
func (f *JSONFormatter) FormatDelete(w io.Writer, result *DeleteResult) error {
	return writeJSON(w, result)
}

// FormatConfig formats the configuration report as JSON.
func (f *JSONFormatter) FormatConfig(w io.Writer, report *ConfigReport) error {
	return writeJSON(w, report)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error  string `json:"error"`
		Status int    `json:"status,omitempty"`
	}{
		Error: err.Error(),
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		output.Status = apiErr.StatusCode
	}
	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
