package shared

import "fmt"

// ErrorKind classifies engine errors.
type ErrorKind string

const (
	KindInvalidBid            ErrorKind = "INVALID_BID"
	KindOutOfTurn             ErrorKind = "OUT_OF_TURN"
	KindInvalidKittySelection ErrorKind = "INVALID_KITTY_SELECTION"
	KindIllegalPlay           ErrorKind = "ILLEGAL_PLAY"
	KindInvariantViolation    ErrorKind = "INVARIANT_VIOLATION"
)

// Error is returned by every engine transition that rejects its input.
// The input state is never modified when an Error is returned.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Msg
}

// Is matches on Kind so callers can use errors.Is(err, shared.ErrIllegalPlay).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidBid            = &Error{Kind: KindInvalidBid}
	ErrOutOfTurn             = &Error{Kind: KindOutOfTurn}
	ErrInvalidKittySelection = &Error{Kind: KindInvalidKittySelection}
	ErrIllegalPlay           = &Error{Kind: KindIllegalPlay}
	ErrInvariantViolation    = &Error{Kind: KindInvariantViolation}
)

// Errorf builds an Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
