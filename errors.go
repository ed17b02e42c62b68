package nudocs

import "errors"

var (
	// ErrMissingCredential is returned when no API key can be resolved.
	ErrMissingCredential = errors.New("no API key found")
	// ErrFileNotFound is returned when a local upload path does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrMissingArgument is returned when a required argument is omitted.
	ErrMissingArgument = errors.New("missing argument")
	// ErrNoTargetDocument is returned when no ULID was given and there is no previous upload.
	ErrNoTargetDocument = errors.New("no ULID provided and no previous upload found")
)

// UsageError wraps an error with the usage line of the command that failed.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError returns err annotated with a usage line.
func NewUsageError(err error, usage string) error {
	return &UsageError{Err: err, Usage: usage}
}
