// Package trace records what the compiler is doing: driver steps, passes
// (lex, parse, codegen), files and individual statements.
//
// Enable it from the command line:
//
//	ranoc build --trace=- --trace-level=detail main.rano
//
// Tracers travel through the pipeline in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// Implementations: Nop (disabled), StreamTracer (writes as it goes) and
// RingTracer (keeps the last N events in memory).
package trace
