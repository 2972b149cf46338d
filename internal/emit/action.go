package emit

import (
	"fmt"
	"strings"
)

// Action is what happens to a warning once a rule (or the default) applies.
type Action uint8

const (
	// ActionOncePerLocation shows the first warning per category and call site.
	ActionOncePerLocation Action = iota
	// ActionAlways shows every warning.
	ActionAlways
	// ActionOnce shows the first warning per category for the whole process.
	ActionOnce
	// ActionIgnore suppresses the warning.
	ActionIgnore
)

func (a Action) String() string {
	switch a {
	case ActionOncePerLocation:
		return "once-per-location"
	case ActionAlways:
		return "always"
	case ActionOnce:
		return "once"
	case ActionIgnore:
		return "never-again"
	}
	return "unknown"
}

// ParseAction accepts the configuration vocabulary. "never-again" and
// "ignore" are synonyms, as are "once-per-location" and "default".
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "once-per-location", "default", "":
		return ActionOncePerLocation, nil
	case "always":
		return ActionAlways, nil
	case "once":
		return ActionOnce, nil
	case "never-again", "ignore", "never":
		return ActionIgnore, nil
	}
	return ActionOncePerLocation, fmt.Errorf("invalid action %q (expected: always|once-per-location|once|never-again)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(b []byte) error {
	v, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
