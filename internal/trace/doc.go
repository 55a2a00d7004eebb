// Package trace records what a fold pass does: driver runs, per-file work,
// extraction and reconciliation passes, and fail-soft events inside them.
//
// # Usage
//
//	jfold fold --trace=- --trace-level=detail Foo.java
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events; ring mode writes them at exit,
//     both mode dumps them to stderr when the command fails
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only fail-soft error points
//   - LevelPhase: driver and per-file boundaries
//   - LevelDetail: fold passes (extract, reconcile) with their counts
//   - LevelDebug: everything, including single candidate regions
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//
//	span, ctx := trace.Start(ctx, trace.ScopeFile, "driver.fold", file.Path)
//	defer span.End("")
package trace
