// Package trace records what the analyzer is doing: driver phases, per-file
// work and, at debug level, rule callbacks. It exists to find slow rules and
// hangs, not to replace diagnostics.
//
// Enable it from the command line:
//
//	lintel diag --trace=- --trace-level=phase src/
//
// Tracers:
//
//   - Nop: disabled, zero overhead
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a fault
//   - MultiTracer: fan-out
//
// Levels select scopes: phase emits driver and pass events, detail adds
// per-file events, debug adds per-rule events.
//
// Tracers travel in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "bind", parentID)
//	defer span.End("")
package trace
