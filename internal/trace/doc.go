// Package trace records emission decisions of the warning subsystem.
//
// Every call into the emitter ends in exactly one decision: the warning was
// shown, suppressed by a rule, dropped as a duplicate, or shown but the
// diagnostic channel failed. When a Tracer is attached, each decision is
// recorded as an Event so filter configurations can be debugged after the
// fact without changing what reaches the diagnostic channel.
//
// # Usage
//
//	pcapwarn emit --trace=- --trace-level=all ProtocolWarning "bad field"
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (file/stderr)
//   - RingTracer: keeps the last N events in memory for dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing is recorded
//   - LevelSuppressed: only decisions that hid a warning
//   - LevelAll: every decision
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
package trace
