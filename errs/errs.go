// Package errs defines the error kinds shared across the record engine.
package errs

import "fmt"

// Kind classifies an Error. The zero value is never produced by the engine.
type Kind int

const (
	// NotNITF is returned when the 9-byte magic does not match a known version.
	NotNITF Kind = iota + 1
	// WrongClass is returned when field content violates its declared character class.
	WrongClass
	// Truncation is returned when a value is too wide for its field.
	Truncation
	// Parse is returned when a numeric or date value could not be parsed.
	Parse
	// Io wraps an underlying I/O failure.
	Io
	// Eof is returned when a read runs past the end of the available bytes.
	Eof
	// NotSeekable is returned when Seek is called on a non-seekable implementation.
	NotSeekable
	// Structural is returned when offsets, counts, or block geometry are inconsistent.
	Structural
	// UnsupportedCompression is returned when no handler is registered for a compression code.
	UnsupportedCompression
	// UnknownTRE is returned when the registry falls back to the generic descriptor under strict mode.
	UnknownTRE
	// PluginLoad is returned when a plug-in fails to load.
	PluginLoad
	// InvalidArgument is returned for out-of-range sub-windows, band lists, and similar caller errors.
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case NotNITF:
		return "NotNITF"
	case WrongClass:
		return "WrongClass"
	case Truncation:
		return "Truncation"
	case Parse:
		return "Parse"
	case Io:
		return "Io"
	case Eof:
		return "Eof"
	case NotSeekable:
		return "NotSeekable"
	case Structural:
		return "Structural"
	case UnsupportedCompression:
		return "UnsupportedCompression"
	case UnknownTRE:
		return "UnknownTRE"
	case PluginLoad:
		return "PluginLoad"
	case InvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// Error is the single error type produced by the record engine. Per-field and
// per-TRE failures are reported with enough context (offset, segment kind,
// field name) to locate the failure without re-parsing the file.
type Error struct {
	Kind    Kind
	Offset  int64  // file byte offset, -1 if not applicable
	Segment string // segment kind, e.g. "image", "text", "de"; empty if not applicable
	Field   string // field or TRE tag name; empty if not applicable
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Segment != "" {
		msg += " in " + e.Segment
	}
	if e.Field != "" {
		msg += " field " + e.Field
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so callers can
// use errors.Is(err, errs.New(errs.NotNITF)) as a sentinel check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds a bare Error of the given kind, suitable as an errors.Is sentinel.
func New(kind Kind) *Error {
	return &Error{Kind: kind, Offset: -1}
}

// Wrap builds an Error with context, wrapping cause.
func Wrap(kind Kind, offset int64, segment, field string, cause error) *Error {
	return &Error{Kind: kind, Offset: offset, Segment: segment, Field: field, Cause: cause}
}
