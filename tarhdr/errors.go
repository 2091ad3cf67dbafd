package tarhdr

import "github.com/pkg/errors"

// Kind is the Tar codec error taxonomy from the design's error handling
// section: kinds, not ad-hoc string messages.
type Kind int

const (
	_ Kind = iota
	KindChecksumMismatch
	KindPathTooLong
	KindReservedType
	KindShortRead
)

func (k Kind) String() string {
	switch k {
	case KindChecksumMismatch:
		return "ChecksumMismatch"
	case KindPathTooLong:
		return "PathTooLong"
	case KindReservedType:
		return "ReservedType"
	case KindShortRead:
		return "ShortRead"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with contextual detail, using github.com/pkg/errors
// for causal chains rather than bare sentinel errors.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func wrapErr(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Msg: msg, Err: errors.WithStack(cause)}
}

// KindOf extracts the Kind from err, if err (or something it wraps) is a
// *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
