package nudocs_test

import (
	"testing"

	"github.com/pspdfkit/nudocs"
	"github.com/stretchr/testify/assert"
)

func TestMIMEForUploadExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{ext: "md", want: "text/markdown"},
		{ext: "markdown", want: "text/markdown"},
		{ext: "docx", want: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{ext: "pdf", want: "application/pdf"},
		{ext: "html", want: "text/html"},
		{ext: "txt", want: "text/plain"},
		{ext: "odt", want: "application/vnd.oasis.opendocument.text"},
		{ext: "rtf", want: "application/rtf"},
		{ext: "epub", want: "application/epub+zip"},
		{ext: "latex", want: "application/x-latex"},
		{ext: "tex", want: "application/x-latex"},
		{ext: ".md", want: "text/markdown"},
		{ext: "PDF", want: "application/pdf"},
		{ext: ".DocX", want: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{ext: "doc", want: "application/octet-stream"},
		{ext: "png", want: "application/octet-stream"},
		{ext: "", want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, nudocs.MIMEForUploadExtension(tt.ext))
		})
	}
}

func TestMIMEForExportFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "md", format: "md", want: "text/markdown"},
		{name: "docx", format: "docx", want: nudocs.MIMEDocx},
		{name: "pdf", format: "pdf", want: "application/pdf"},
		{name: "html", format: "html", want: "text/html"},
		{name: "txt", format: "txt", want: "text/plain"},
		{name: "odt", format: "odt", want: "application/vnd.oasis.opendocument.text"},
		{name: "rtf", format: "rtf", want: "application/rtf"},
		{name: "epub", format: "epub", want: "application/epub+zip"},
		{name: "uppercase", format: "PDF", want: "application/pdf"},
		{name: "leading dot", format: ".html", want: "text/html"},
		{name: "leading dot uppercase", format: ".TXT", want: "text/plain"},
		{name: "unknown falls back to markdown", format: "docs", want: "text/markdown"},
		{name: "empty falls back to markdown", format: "", want: "text/markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nudocs.MIMEForExportFormat(tt.format))
		})
	}
}

func TestExtensionForMIME(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		fallback string
		want     string
	}{
		{name: "markdown", mimeType: "text/markdown", fallback: "markdown", want: "md"},
		{name: "docx", mimeType: nudocs.MIMEDocx, fallback: "docx", want: "docx"},
		{name: "pdf", mimeType: "application/pdf", fallback: "pdf", want: "pdf"},
		{name: "html", mimeType: "text/html", fallback: "html", want: "html"},
		{name: "txt", mimeType: "text/plain", fallback: "txt", want: "txt"},
		{name: "unknown uses fallback", mimeType: "application/epub+zip", fallback: "epub", want: "epub"},
		{name: "fallback kept verbatim", mimeType: "application/rtf", fallback: ".RTF", want: ".RTF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nudocs.ExtensionForMIME(tt.mimeType, tt.fallback))
		})
	}
}

func TestExportFormatRoundTrip(t *testing.T) {
	// A typo in --format still yields a markdown file name.
	mt := nudocs.MIMEForExportFormat("pfd")
	assert.Equal(t, "md", nudocs.ExtensionForMIME(mt, "pfd"))
}
