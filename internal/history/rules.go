package history

import "strings"

// Rule is one immutable contradiction rule: a verb pair that, matched within
// the window, signals a logically conflicting sequence. SameTarget requires
// equal targets; MaxDistance bounds how far apart (in window positions) the
// pair may sit, with 0 meaning unbounded.
type Rule struct {
	Action1     string `yaml:"action1"`
	Action2     string `yaml:"action2"`
	SameTarget  bool   `yaml:"same_target"`
	MaxDistance int    `yaml:"max_distance"`
}

// DefaultRules is the built-in rule table. Matching is a pure ordered scan;
// the table is data, not behavior.
func DefaultRules() []Rule {
	return []Rule{
		{Action1: "take", Action2: "drop", SameTarget: true},
		{Action1: "open", Action2: "close", SameTarget: true},
		{Action1: "attack", Action2: "talk", SameTarget: true},
		{Action1: "go north", Action2: "go south", MaxDistance: 2},
		{Action1: "go east", Action2: "go west", MaxDistance: 2},
	}
}

// matchesPair reports whether the two entries match the rule in either order.
func (r Rule) matchesPair(earlier, later Entry) bool {
	a := entryAction(earlier)
	b := entryAction(later)

	forward := matchesAction(a, r.Action1) && matchesAction(b, r.Action2)
	reverse := matchesAction(a, r.Action2) && matchesAction(b, r.Action1)
	if !forward && !reverse {
		return false
	}
	if r.SameTarget {
		if earlier.Target == "" || later.Target == "" {
			return false
		}
		if !strings.EqualFold(earlier.Target, later.Target) {
			return false
		}
	}
	return true
}

// entryAction renders an entry as "verb target" for rule matching, so rules
// may target bare verbs ("take") or verb phrases ("go north").
func entryAction(e Entry) string {
	if e.Target == "" {
		return strings.ToLower(e.Verb)
	}
	return strings.ToLower(e.Verb + " " + e.Target)
}

func matchesAction(action, ruleAction string) bool {
	return action == ruleAction || strings.HasPrefix(action, ruleAction+" ")
}
