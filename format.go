package nudocs

import "strings"

const (
	// MIMEOctetStream is the content type of uploads with an unknown extension.
	MIMEOctetStream = "application/octet-stream"
	// MIMEMarkdown is the export type used for unknown formats.
	MIMEMarkdown = "text/markdown"
	// MIMEDocx is the content type of Word documents.
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// DefaultExportFormat is the format pull uses when none is given.
	DefaultExportFormat = "docx"
)

// mimeTypes maps a file extension or format name to its MIME type.
var mimeTypes = map[string]string{
	"md":       MIMEMarkdown,
	"markdown": MIMEMarkdown,
	"docx":     MIMEDocx,
	"pdf":      "application/pdf",
	"html":     "text/html",
	"txt":      "text/plain",
	"odt":      "application/vnd.oasis.opendocument.text",
	"rtf":      "application/rtf",
	"epub":     "application/epub+zip",
	"latex":    "application/x-latex",
	"tex":      "application/x-latex",
}

// extensions maps an export MIME type to the extension of the saved file.
var extensions = map[string]string{
	MIMEMarkdown:      "md",
	MIMEDocx:          "docx",
	"application/pdf": "pdf",
	"text/html":       "html",
	"text/plain":      "txt",
}

func normalizeFormat(s string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
}

// MIMEForUploadExtension returns the content type for an uploaded file
// extension, with or without the leading dot. Unknown extensions get
// application/octet-stream.
func MIMEForUploadExtension(ext string) string {
	if mt, ok := mimeTypes[normalizeFormat(ext)]; ok {
		return mt
	}
	return MIMEOctetStream
}

// MIMEForExportFormat returns the MIME type to request for an export format
// such as "pdf" or ".DOCX". Unknown formats fall back to markdown.
func MIMEForExportFormat(format string) string {
	if mt, ok := mimeTypes[normalizeFormat(format)]; ok {
		return mt
	}
	return MIMEMarkdown
}

// ExtensionForMIME returns the file extension for an exported MIME type.
// When the type has no known extension, fallbackFormat is returned as given.
func ExtensionForMIME(mimeType, fallbackFormat string) string {
	if ext, ok := extensions[strings.ToLower(mimeType)]; ok {
		return ext
	}
	return fallbackFormat
}
