package clientcli

import "github.com/pspdfkit/nudocs"

// UploadResult represents the result of uploading a file.
type UploadResult struct {
	LocalPath string `json:"local_path"`
	ULID      string `json:"ulid"`
	Title     string `json:"title"`
	URL       string `json:"url"`
}

// LinkResult is the shareable URL of a document.
type LinkResult struct {
	ULID           string `json:"ulid"`
	URL            string `json:"url"`
	FromLastUpload bool   `json:"from_last_upload"`
}

// PullOptions configures an export.
type PullOptions struct {
	ULID   string // empty = last upload
	Format string // empty = docx
	Output string // empty = <ulid>.<ext>
}

// PullResult represents the result of exporting a document to disk.
type PullResult struct {
	ULID     string `json:"ulid"`
	Format   string `json:"format"`
	MIMEType string `json:"mime_type"`
	Path     string `json:"path"`
	Size     int64  `json:"size_bytes"`
	SHA256   string `json:"sha256"`
}

// DeleteResult represents the result of deleting a document.
type DeleteResult struct {
	ULID              string `json:"ulid"`
	Deleted           bool   `json:"deleted"`
	ClearedLastUpload bool   `json:"cleared_last_upload"`
}

// ConfigReport describes the local configuration without exposing the API key.
type ConfigReport struct {
	ConfigDir        string             `json:"config_dir"`
	APIKeyFile       string             `json:"api_key_file"`
	StateFile        string             `json:"state_file"`
	BaseURL          string             `json:"base_url"`
	APIKeyConfigured bool               `json:"api_key_configured"`
	LastUpload       *nudocs.LastUpload `json:"last_upload,omitempty"`
}

// createResponse mirrors the JSON returned by the create endpoint.
type createResponse struct {
	ULID  string `json:"ulid"`
	Title string `json:"title"`
}

// exportRequest is the body of an export request.
type exportRequest struct {
	MIMEType string `json:"mimeType"`
}
