package errors

// Domain is the error domain for foodops errors.
const Domain = "github.com/louisbranch/foodops"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context for reporting
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithMetadata returns a copy of e carrying metadata. Code and message are
// preserved so Is matching against the original sentinel still holds.
func (e *Error) WithMetadata(metadata map[string]string) *Error {
	return &Error{
		Code:     e.Code,
		Message:  e.Message,
		Metadata: metadata,
		Cause:    e.Cause,
	}
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with context metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithMetadata creates a domain error with both metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
		Cause:    cause,
	}
}

// KindOf classifies err by walking the chain for a domain error code.
// Errors outside the domain report KindInternal.
func KindOf(err error) Kind {
	for err != nil {
		if de, ok := err.(*Error); ok {
			return de.Code.Kind()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return KindInternal
		}
		err = u.Unwrap()
	}
	return KindInternal
}
