// Package emit is the single producer-facing entry point for warnings.
//
// An Emitter decides, per call, whether a warning is shown:
//
//  1. the message is interpolated with the producer's arguments
//     (warnfmt.Message); arity mismatches append a sentinel instead of
//     failing;
//  2. the warning is attributed to the producer's call site, either from
//     the call stack (Warn, WarnDepth) or from an explicit Location (WarnAt);
//  3. the newest matching Rule, or the default action, is consulted;
//     ActionIgnore drops the warning;
//  4. ActionOncePerLocation and ActionOnce consult a bounded LRU registry of
//     warnings already shown;
//  5. the line "{Category}: {message}" is rendered and written to the Sink.
//
// Nothing in this package returns an error or panics to the producer.
// Failures of the sink are swallowed and only visible through Metrics and
// the optional decision Tracer. A warning the sink rejected is not recorded
// as shown, so the same call site may try again.
//
// # Defaults
//
// A new Emitter uses ActionOncePerLocation for unmatched categories and, unless
// Options.DevMode is set, ignores DevModeWarning and its descendants. The
// registry holds DefaultDedupCapacity keys; when it is full the least
// recently seen key is evicted and may show again.
//
// Filter state is owned by the Emitter value. Default returns a process-wide
// instance for producers that have no emitter injected.
package emit
