package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff        Level = iota // no tracing
	LevelSuppressed              // only decisions that hid a warning
	LevelAll                     // every decision
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelSuppressed:
		return "suppressed"
	case LevelAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "suppressed":
		return LevelSuppressed, nil
	case "all":
		return LevelAll, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|suppressed|all)", s)
	}
}

// ShouldEmit returns true if events of the given kind are recorded at this level.
func (l Level) ShouldEmit(kind Kind) bool {
	switch l {
	case LevelOff:
		return false
	case LevelSuppressed:
		return kind != KindShown
	case LevelAll:
		return true
	}
	return false
}
