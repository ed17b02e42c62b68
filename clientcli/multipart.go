package clientcli

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
)

const boundaryPrefix = "NudocsBoundary"

// MultipartBody is an encoded single-part multipart/form-data request body.
type MultipartBody struct {
	Boundary    string
	ContentType string // value for the request's Content-Type header
	Bytes       []byte
}

// NewBoundary returns a multipart boundary that is unique per call.
func NewBoundary() string {
	return boundaryPrefix + uuid.NewString()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// BuildMultipart encodes data as the only part of a form, under field with
// the given filename and part content type.
func BuildMultipart(field, filename, contentType string, data []byte) (*MultipartBody, error) {
	return BuildMultipartWithBoundary(NewBoundary(), field, filename, contentType, data)
}

// BuildMultipartWithBoundary is BuildMultipart with a caller-chosen boundary.
func BuildMultipartWithBoundary(boundary, field, filename, contentType string, data []byte) (*MultipartBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, fmt.Errorf("set boundary: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	return &MultipartBody{
		Boundary:    boundary,
		ContentType: w.FormDataContentType(),
		Bytes:       buf.Bytes(),
	}, nil
}
