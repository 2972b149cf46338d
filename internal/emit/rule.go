package emit

import (
	"fmt"
	"strings"

	"pcapkit/internal/warning"
)

// Rule is a standing instruction for one category.
type Rule struct {
	Category  warning.Category
	Action    Action
	Propagate bool // also match every descendant of Category
}

// Matches reports whether the rule applies to cat.
func (r Rule) Matches(cat warning.Category) bool {
	if cat == r.Category {
		return true
	}
	return r.Propagate && cat.Is(r.Category)
}

// String renders the rule in the form accepted by ParseRule.
func (r Rule) String() string {
	s := r.Action.String() + ":" + r.Category.Name()
	if !r.Propagate {
		s += ":nopropagate"
	}
	return s
}

// ParseRule parses "action:Category[:nopropagate]". Rules propagate to
// descendants unless the suffix is given.
func ParseRule(s string) (Rule, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Rule{}, fmt.Errorf("invalid rule %q (expected action:Category[:nopropagate])", s)
	}
	act, err := ParseAction(parts[0])
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", s, err)
	}
	cat, ok := warning.Lookup(parts[1])
	if !ok {
		return Rule{}, fmt.Errorf("rule %q: unknown category %q", s, parts[1])
	}
	r := Rule{Category: cat, Action: act, Propagate: true}
	if len(parts) == 3 {
		switch strings.ToLower(parts[2]) {
		case "nopropagate", "exact":
			r.Propagate = false
		case "propagate", "":
		default:
			return Rule{}, fmt.Errorf("rule %q: unknown modifier %q", s, parts[2])
		}
	}
	return r, nil
}

// defaultRules is the rule set an emitter starts from and returns to on
// Reset. Outside dev mode, development-only warnings are hidden.
func defaultRules(devMode bool) []Rule {
	if devMode {
		return nil
	}
	return []Rule{{Category: warning.DevMode, Action: ActionIgnore, Propagate: true}}
}
