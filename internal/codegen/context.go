// Package codegen walks a parsed module and lowers it to IR while
// collecting diagnostics in a Context.
//
// Every statement is walked on its own: a failure becomes a diagnostic and
// the walk moves on to the next statement. Inside an expression the first
// failing child stops the walk of its parent. Language features that have
// syntax but no lowering yet fail with a Fault matching ErrUnimplemented.
package codegen

import (
	"golang.org/x/text/unicode/norm"

	"ranoc/internal/ast"
	"ranoc/internal/diag"
	"ranoc/internal/ir"
	"ranoc/internal/source"
	"ranoc/internal/trace"
)

type Options struct {
	// Strict aborts the module walk on the first unimplemented feature
	// instead of recording it and going on.
	Strict bool
	// MaxDiagnostics caps stored diagnostics; 0 means no limit.
	MaxDiagnostics int
	File           source.FileID
	Tracer         trace.Tracer
	// TraceParent is the span the statement events hang under.
	TraceParent uint64
}

// Context is the state of one codegen pass over one module. It is owned by
// a single goroutine; diagnostics are only ever appended.
type Context struct {
	Builder *ast.Builder
	Program *ir.Program

	opts  Options
	diags *diag.Bag
	// scope maps NFC-normalized names bound by let.
	scope map[string]struct{}
}

func NewContext(b *ast.Builder, opts Options) *Context {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Context{
		Builder: b,
		Program: ir.NewProgram(""),
		opts:    opts,
		diags:   diag.NewBag(opts.MaxDiagnostics),
		scope:   make(map[string]struct{}),
	}
}

// AddDiagnostic appends d; this is the only way diagnostics enter a Context.
func (c *Context) AddDiagnostic(d diag.Diagnostic) {
	if d.File == 0 {
		d.File = c.opts.File
	}
	c.diags.Add(d)
}

// Diagnostics returns a copy of the diagnostics in detection order.
func (c *Context) Diagnostics() []diag.Diagnostic {
	items := c.diags.Items()
	out := make([]diag.Diagnostic, len(items))
	copy(out, items)
	return out
}

// Bag exposes the diagnostics for merging into a driver-level bag.
// Callers must not add to it.
func (c *Context) Bag() *diag.Bag { return c.diags }

func (c *Context) HasErrors() bool { return c.diags.HasErrors() }

// Options returns the options the context was created with.
func (c *Context) Options() Options { return c.opts }

func scopeKey(name string) string {
	return norm.NFC.String(name)
}

func (c *Context) bind(name string) {
	c.scope[scopeKey(name)] = struct{}{}
}

func (c *Context) bound(name string) bool {
	_, ok := c.scope[scopeKey(name)]
	return ok
}

func (c *Context) emit(in ir.Instr, at source.Span) {
	in.Line = at.Line
	c.Program.Emit(in)
}
