package clientcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pspdfkit/nudocs"
	"github.com/pspdfkit/nudocs/config"
	"github.com/pspdfkit/nudocs/filesystem"
)

// Usage lines reported with argument errors.
const (
	UsageUpload = "nudocs upload <file>"
	UsageLink   = "nudocs link <ulid>"
	UsagePull   = "nudocs pull <ulid> [--format md|docx|pdf]"
	UsageDelete = "nudocs delete <ulid>"
)

// API is the subset of Client the command handlers use.
type API interface {
	Create(ctx context.Context, filename, contentType string, data []byte) (*nudocs.Document, error)
	List(ctx context.Context) ([]nudocs.Document, error)
	Link(ctx context.Context, ulid string) (string, error)
	Export(ctx context.Context, ulid, mimeType string) (io.ReadCloser, error)
	Delete(ctx context.Context, ulid string) error
}

// StateStore persists the last upload pointer.
type StateStore interface {
	LastUpload(ctx context.Context) (*nudocs.LastUpload, error)
	RecordUpload(ctx context.Context, ulid, title string) error
	ClearUploadIfMatches(ctx context.Context, ulid string) (bool, error)
}

// CredentialStatus reports whether an API key is configured.
type CredentialStatus interface {
	HasAPIKey() bool
}

// ConfirmFunc asks the user whether to go ahead with deleting ulid.
type ConfirmFunc func(ulid string) (bool, error)

// Commands implements the nudocs commands on top of injected collaborators.
// Results go to Stdout; progress and notices go to Stderr.
type Commands struct {
	API         API
	State       StateStore
	Credentials CredentialStatus
	Paths       config.Paths
	BaseURL     string
	Formatter   Formatter
	Stdout      io.Writer
	Stderr      io.Writer
}

func (c *Commands) progress(format string, args ...any) {
	_ = c.Formatter.FormatProgress(c.Stderr, fmt.Sprintf(format, args...))
}

// Upload uploads the file at path, records it as the last upload and
// prints its ULID, title and edit link. If fetching the link fails the
// document and the recorded state are kept.
func (c *Commands) Upload(ctx context.Context, path string) (*UploadResult, error) {
	if path == "" {
		return nil, nudocs.NewUsageError(fmt.Errorf("%w: file path required", nudocs.ErrMissingArgument), UsageUpload)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", nudocs.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("cannot upload %s: is a directory", path)
	}

	data, err := os.ReadFile(path) //#nosec G304 -- path is user-provided input
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	name := filepath.Base(path)
	contentType := nudocs.MIMEForUploadExtension(filepath.Ext(path))

	c.progress("Uploading: %s...", name)

	doc, err := c.API.Create(ctx, name, contentType, data)
	if err != nil {
		return nil, err
	}

	if err := c.State.RecordUpload(ctx, doc.ULID, doc.Title); err != nil {
		return nil, err
	}

	url, err := c.API.Link(ctx, doc.ULID)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{
		LocalPath: path,
		ULID:      doc.ULID,
		Title:     doc.Title,
		URL:       url,
	}
	return result, c.Formatter.FormatUpload(c.Stdout, result)
}

// List prints every document.
func (c *Commands) List(ctx context.Context) ([]nudocs.Document, error) {
	docs, err := c.API.List(ctx)
	if err != nil {
		return nil, err
	}
	return docs, c.Formatter.FormatList(c.Stdout, docs)
}

// Link prints the edit URL of ulid, or of the last upload when ulid is empty.
func (c *Commands) Link(ctx context.Context, ulid string) (*LinkResult, error) {
	target, fromLast, err := c.resolveTarget(ctx, ulid, UsageLink)
	if err != nil {
		return nil, err
	}

	url, err := c.API.Link(ctx, target)
	if err != nil {
		return nil, err
	}

	result := &LinkResult{ULID: target, URL: url, FromLastUpload: fromLast}
	return result, c.Formatter.FormatLink(c.Stdout, result)
}

// Pull exports a document and writes it to opts.Output, or to
// <ulid>.<ext> in the working directory. Existing files are overwritten.
func (c *Commands) Pull(ctx context.Context, opts PullOptions) (*PullResult, error) {
	target, _, err := c.resolveTarget(ctx, opts.ULID, UsagePull)
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = nudocs.DefaultExportFormat
	}
	mimeType := nudocs.MIMEForExportFormat(format)

	c.progress("Downloading %s as %s...", target, format)

	body, err := c.API.Export(ctx, target, mimeType)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	outFile := opts.Output
	if outFile == "" {
		outFile = target + "." + nudocs.ExtensionForMIME(mimeType, format)
	}

	saved, err := filesystem.WriteFile(ctx, outFile, body, 0o644, 0o750)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", outFile, err)
	}

	result := &PullResult{
		ULID:     target,
		Format:   format,
		MIMEType: mimeType,
		Path:     saved.Path,
		Size:     saved.BytesWritten,
		SHA256:   saved.SHA256,
	}
	return result, c.Formatter.FormatPull(c.Stdout, result)
}

// Delete deletes ulid and clears the last upload pointer if it referenced
// it. A nil confirm deletes without asking.
func (c *Commands) Delete(ctx context.Context, ulid string, confirm ConfirmFunc) (*DeleteResult, error) {
	if ulid == "" {
		return nil, nudocs.NewUsageError(fmt.Errorf("%w: ULID required for delete", nudocs.ErrMissingArgument), UsageDelete)
	}

	result := &DeleteResult{ULID: ulid}

	if confirm != nil {
		ok, err := confirm(ulid)
		if err != nil {
			return nil, err
		}
		if !ok {
			c.progress("Cancelled.")
			return result, c.Formatter.FormatDelete(c.Stdout, result)
		}
	}

	c.progress("Deleting %s...", ulid)

	if err := c.API.Delete(ctx, ulid); err != nil {
		return nil, err
	}
	result.Deleted = true

	cleared, err := c.State.ClearUploadIfMatches(ctx, ulid)
	if err != nil {
		return nil, err
	}
	result.ClearedLastUpload = cleared

	return result, c.Formatter.FormatDelete(c.Stdout, result)
}

// ShowConfig prints the resolved configuration. It makes no network calls
// and never prints the API key.
func (c *Commands) ShowConfig(ctx context.Context) (*ConfigReport, error) {
	lu, err := c.State.LastUpload(ctx)
	if err != nil {
		return nil, err
	}

	report := &ConfigReport{
		ConfigDir:        c.Paths.Dir,
		APIKeyFile:       c.Paths.APIKeyFile,
		StateFile:        c.Paths.StateFile,
		BaseURL:          c.BaseURL,
		APIKeyConfigured: c.Credentials.HasAPIKey(),
		LastUpload:       lu,
	}
	return report, c.Formatter.FormatConfig(c.Stdout, report)
}

// resolveTarget returns ulid, or the last upload's ULID when ulid is empty.
func (c *Commands) resolveTarget(ctx context.Context, ulid, usage string) (string, bool, error) {
	if ulid != "" {
		return ulid, false, nil
	}

	lu, err := c.State.LastUpload(ctx)
	if err != nil {
		return "", false, err
	}
	if lu == nil || lu.ULID == "" {
		return "", false, nudocs.NewUsageError(nudocs.ErrNoTargetDocument, usage)
	}

	c.progress("Using last upload: %s", lu.ULID)
	return lu.ULID, true, nil
}
