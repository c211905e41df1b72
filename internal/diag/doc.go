// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings of the
//     scanner, the parser and the codegen walker.
//   - Offer light-weight utilities (Reporter, Bag) so producers emit
//     diagnostics without coupling to storage or rendering.
//
// # Data model
//
// Diagnostic carries a Severity, a Code with a stable string ID (LEX1001,
// SYN2001, GEN3001, ...), a short Message, the File it belongs to, the
// Primary span and optional Notes.
//
// # Ordering
//
// A Bag is append-only: insertion order is detection order, and nothing is
// ever removed or rewritten. Renderers that want a positional order use
// Sorted, which returns a copy.
//
// Package diag does no formatting or IO; see internal/diagfmt.
package diag
