package trace

import (
	"sync/atomic"
	"time"
)

// Kind is the outcome of one emission.
type Kind uint8

const (
	// KindShown means the warning reached the diagnostic channel.
	KindShown Kind = iota + 1
	// KindSuppressed means a rule with the ignore action matched.
	KindSuppressed
	// KindDuplicate means the once/once-per-location registry already had the key.
	KindDuplicate
	KindRouteFailed // rendered, but the sink failed
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindShown:
		return "shown"
	case KindSuppressed:
		return "suppressed"
	case KindDuplicate:
		return "duplicate"
	case KindRouteFailed:
		return "route-failed"
	default:
		return "unknown"
	}
}

// Event represents a single emission decision.
type Event struct {
	Time     time.Time // wall-clock timestamp
	Seq      uint64    // global sequence number (monotonic)
	Kind     Kind      // decision
	Category string    // e.g. "VendorRequestWarning"
	Action   string    // action that decided, e.g. "once-per-location"
	Rule     string    // matching rule, empty for the default action
	Location string    // resolved call site, "file:line"
	Message  string    // interpolated message
	Detail   string    // optional extra (formatting or routing error)
}

var globalSeq uint64

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return atomic.AddUint64(&globalSeq, 1)
}
