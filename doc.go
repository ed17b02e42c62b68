// Package nudocs holds the domain model shared by the nudocs command-line
// client: remote document references, the locally persisted state, the
// error kinds every command reports, and the format resolver that maps
// between file extensions and MIME types.
//
// # Key Components
//
//   - Document, DocumentLink: transient views of documents owned by the
//     Nudocs service, identified by ULID
//   - State, LastUpload: the single record persisted between invocations
//   - MIMEForUploadExtension, MIMEForExportFormat, ExtensionForMIME: the
//     format resolver
//
// # Example Usage
//
//	contentType := nudocs.MIMEForUploadExtension(filepath.Ext(path))
//
//	mimeType := nudocs.MIMEForExportFormat("pdf")
//	outFile := ulid + "." + nudocs.ExtensionForMIME(mimeType, "pdf")
//
// See the clientcli package for the HTTP client and command handlers, and
// the state package for persistence of State.
package nudocs
