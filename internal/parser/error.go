package parser

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"ranoc/internal/diag"
	"ranoc/internal/source"
)

type ErrorKind uint8

const (
	// ErrMismatch means the rule did not match; alternatives may still.
	ErrMismatch ErrorKind = iota
	// ErrUnimplemented is a cut: the input uses syntax the grammar does
	// not support yet. No alternative is tried after it.
	ErrUnimplemented
	// ErrTrailing means the top-level rule stopped before the end of input.
	ErrTrailing
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMismatch:
		return "mismatch"
	case ErrUnimplemented:
		return "unimplemented"
	case ErrTrailing:
		return "trailing input"
	default:
		return "ErrorKind(?)"
	}
}

// Sentinels for errors.Is.
var (
	ErrNoMatch        = errors.New("no match")
	ErrNotImplemented = errors.New("syntax not implemented")
)

// Error is the structured parse fault.
type Error struct {
	Kind ErrorKind
	Code diag.Code
	// Pos is the token index where the rule failed.
	Pos  int
	Span source.Span
	// Expected lists what would have matched at Pos.
	Expected []string
	// Found describes the token at Pos, or "end of input".
	Found string
	// Feature names the unsupported construct for ErrUnimplemented.
	Feature string
	// Cause explains an ErrTrailing: why the next node did not parse.
	Cause *Error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message())
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Message())
	}
	return sb.String()
}

// Message renders the fault without its cause.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrUnimplemented:
		return fmt.Sprintf("%s is not implemented now", e.Feature)
	case ErrTrailing:
		return fmt.Sprintf("unexpected %s, expected end of input", e.Found)
	default:
		if len(e.Expected) == 0 {
			return fmt.Sprintf("unexpected %s", e.Found)
		}
		return fmt.Sprintf("expected %s, found %s", joinExpected(e.Expected), e.Found)
	}
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNoMatch:
		return e.Kind == ErrMismatch
	case ErrNotImplemented:
		return e.Kind == ErrUnimplemented
	}
	return false
}

func (e *Error) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Fatal reports whether combinators must stop backtracking on e.
func (e *Error) Fatal() bool {
	return e.Kind == ErrUnimplemented
}

// Diagnostic converts the fault for a diag.Bag.
func (e *Error) Diagnostic(file source.FileID) diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span, e.Message())
	d.File = file
	if e.Cause != nil {
		d = d.WithNote(e.Cause.Span, e.Cause.Message())
	}
	return d
}

func joinExpected(exp []string) string {
	exp = slices.Clone(exp)
	slices.Sort(exp)
	exp = slices.Compact(exp)
	switch len(exp) {
	case 1:
		return exp[0]
	case 2:
		return exp[0] + " or " + exp[1]
	default:
		return strings.Join(exp[:len(exp)-1], ", ") + " or " + exp[len(exp)-1]
	}
}

func describeAt(in Input) string {
	tok, ok := in.Peek()
	if !ok {
		return "end of input"
	}
	return tok.Kind.Describe()
}

func mismatch(in Input, code diag.Code, expected ...string) *Error {
	return &Error{
		Kind:     ErrMismatch,
		Code:     code,
		Pos:      in.Pos(),
		Span:     in.Span(),
		Expected: expected,
		Found:    describeAt(in),
	}
}

// asError extracts *Error; any foreign error is treated as fatal.
func asError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// recoverable reports whether err is a plain mismatch that lets the
// caller try something else.
func recoverable(err error) bool {
	pe, ok := asError(err)
	return ok && !pe.Fatal() && pe.Kind == ErrMismatch
}

// furthest keeps the error that got further into the input; errors at the
// same position merge their expectations.
func furthest(a, b *Error) *Error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Pos > a.Pos:
		return b
	case b.Pos < a.Pos:
		return a
	}
	merged := *a
	merged.Expected = append(slices.Clip(a.Expected), b.Expected...)
	return &merged
}
