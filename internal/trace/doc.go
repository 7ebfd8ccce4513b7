// Package trace records what the ircmsg pipeline is doing.
//
// It helps find slow files and hangs when checking large log trees.
//
// # Usage
//
//	ircmsg check --trace=- --trace-level=detail logs/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a post-mortem dump
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Events carry a Scope: ScopeDriver for whole-run phases, ScopeFile for
// per-file work, ScopeLine for individual lines. LevelPhase emits driver
// events, LevelDetail adds files, LevelDebug adds lines.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "check", parentID)
//	defer span.End("")
package trace
