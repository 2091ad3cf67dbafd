package ziphdr

import "github.com/pkg/errors"

// Kind is the ZIP EOCD codec error taxonomy (§7).
type Kind int

const (
	_ Kind = iota
	KindBadSignature
	KindShortRead
	KindPropertyReadOnly
)

func (k Kind) String() string {
	switch k {
	case KindBadSignature:
		return "BadSignature"
	case KindShortRead:
		return "ShortRead"
	case KindPropertyReadOnly:
		return "PropertyReadOnly"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with contextual detail, mirroring tarhdr.Error's use
// of github.com/pkg/errors for causal chains.
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
