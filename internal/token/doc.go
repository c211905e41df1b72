// Package token defines lexical token kinds for the rano compiler.
// Invariants:
//   - Token.Text is exactly the source slice covered by Token.Span.
//   - Whitespace and line breaks are never tokens; they only move the
//     scanner's line counters.
//   - Invalid is the sentinel for unrecognized input; it never aborts scanning.
//   - There is no EOF kind: a token stream is a finite sequence.
package token
