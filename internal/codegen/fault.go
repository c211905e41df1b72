package codegen

import (
	"errors"
	"fmt"

	"ranoc/internal/diag"
	"ranoc/internal/source"
)

type FaultKind uint8

const (
	// FaultUser is a problem in the compiled program.
	FaultUser FaultKind = iota
	// FaultUnimplemented marks syntax the walker cannot lower yet.
	FaultUnimplemented
	// FaultInternal is a malformed AST, i.e. a compiler bug.
	FaultInternal
)

func (k FaultKind) String() string {
	switch k {
	case FaultUser:
		return "error"
	case FaultUnimplemented:
		return "unimplemented"
	case FaultInternal:
		return "internal error"
	default:
		return "FaultKind(?)"
	}
}

var (
	ErrUnimplemented = errors.New("not implemented")
	ErrInternal      = errors.New("internal compiler error")
)

// Fault is the single failure type of every walk function. How it is
// handled depends only on where it is caught.
type Fault struct {
	Kind    FaultKind
	Code    diag.Code
	Span    source.Span
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Code.ID(), f.Message)
}

func (f *Fault) Is(target error) bool {
	switch target {
	case ErrUnimplemented:
		return f.Kind == FaultUnimplemented
	case ErrInternal:
		return f.Kind == FaultInternal
	}
	return false
}

// Diagnostic converts f into an error diagnostic.
func (f *Fault) Diagnostic() diag.Diagnostic {
	return diag.NewError(f.Code, f.Span, f.Message)
}

func userFault(code diag.Code, sp source.Span, format string, args ...any) *Fault {
	return &Fault{Kind: FaultUser, Code: code, Span: sp, Message: fmt.Sprintf(format, args...)}
}

func unimplemented(sp source.Span, feature string) *Fault {
	return &Fault{
		Kind:    FaultUnimplemented,
		Code:    diag.GenUnimplemented,
		Span:    sp,
		Message: feature + " is not implemented now",
	}
}

func internalFault(sp source.Span, format string, args ...any) *Fault {
	return &Fault{Kind: FaultInternal, Code: diag.GenInternal, Span: sp, Message: fmt.Sprintf(format, args...)}
}

// asFault wraps foreign errors as internal faults.
func asFault(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return internalFault(source.EmptySpan, "%v", err)
}
