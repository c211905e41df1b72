// Package driver runs the compiler phases over files on disk: loading,
// lexing, parsing and codegen, with optional caching and parallel
// compilation of a directory. The phases themselves never do I/O.
package driver

import (
	"ranoc/internal/observ"
)

// SourceExt is the extension of ranoc source files.
const SourceExt = ".rano"

// Options configures Compile and CompileDir.
type Options struct {
	// MaxDiagnostics caps the diagnostics kept per file; 0 means no limit.
	MaxDiagnostics int
	// Strict stops codegen at the first unimplemented feature.
	Strict bool
	// Timer receives one phase per pass and file; may be nil.
	Timer *observ.Timer
	// Observer is called from worker goroutines in CompileDir and must be
	// safe for concurrent use.
	Observer PhaseObserver
	// Cache stores results keyed by content; nil disables caching.
	Cache *DiskCache
}
