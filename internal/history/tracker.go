// Package history records every turn of a session and answers the loop and
// contradiction queries paradox detection is built on.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

const (
	// DefaultWindowSize bounds the suffix of the log used for detection.
	DefaultWindowSize = 20
	// DefaultRepeatThreshold is the state-hash repeat count that signals a loop.
	DefaultRepeatThreshold = 3
	// DefaultPatternRepeats is how often a node-id pattern must repeat.
	DefaultPatternRepeats = 2

	minPatternLen = 2
	maxPatternLen = 5
)

// Entry is one recorded turn.
type Entry struct {
	Turn       int    `yaml:"turn"`
	Verb       string `yaml:"verb"`
	Target     string `yaml:"target,omitempty"`
	NodeBefore string `yaml:"node_before"`
	NodeAfter  string `yaml:"node_after"`
	Location   string `yaml:"location"`
	StateHash  string `yaml:"state_hash"`
}

// StateHash digests the canonical state tuple: current node id, sorted
// inventory, and location. It is deliberately order-independent over the
// inventory so equivalent states collapse regardless of the verbs that
// produced them.
func StateHash(nodeID string, inventory []string, location string) string {
	items := make([]string, len(inventory))
	for i, it := range inventory {
		items[i] = strings.ToLower(it)
	}
	sort.Strings(items)
	sum := sha256.Sum256([]byte(nodeID + "|" + location + "|" + strings.Join(items, ",")))
	return hex.EncodeToString(sum[:])
}

// Tracker keeps the full append-only log plus detection configuration. The
// full log is never truncated; detection only ever reads the bounded window.
type Tracker struct {
	WindowSize      int
	RepeatThreshold int
	PatternRepeats  int
	Rules           []Rule

	entries []Entry
}

// NewTracker returns a tracker with default bounds and the default rule table.
func NewTracker() *Tracker {
	return &Tracker{
		WindowSize:      DefaultWindowSize,
		RepeatThreshold: DefaultRepeatThreshold,
		PatternRepeats:  DefaultPatternRepeats,
		Rules:           DefaultRules(),
	}
}

// FromEntries rebuilds a tracker from a restored log.
func FromEntries(entries []Entry) *Tracker {
	t := NewTracker()
	t.entries = append(t.entries, entries...)
	return t
}

// Record appends an entry to the log.
func (t *Tracker) Record(e Entry) {
	t.entries = append(t.entries, e)
}

// Len returns the total number of recorded entries.
func (t *Tracker) Len() int { return len(t.entries) }

// Entries returns a copy of the full log.
func (t *Tracker) Entries() []Entry {
	return append([]Entry{}, t.entries...)
}

// Window returns the bounded detection view: the last WindowSize entries.
func (t *Tracker) Window() []Entry {
	start := len(t.entries) - t.WindowSize
	if start < 0 {
		start = 0
	}
	return append([]Entry{}, t.entries[start:]...)
}

// WindowWith returns the detection window as if the provisional entry had
// already been committed. Used to evaluate a pending action without mutating
// the log.
func (t *Tracker) WindowWith(provisional Entry) []Entry {
	win := append(t.Window(), provisional)
	if len(win) > t.WindowSize {
		win = win[len(win)-t.WindowSize:]
	}
	return win
}

// LoopEvidence describes a detected loop.
type LoopEvidence struct {
	NodeIDs []string // pattern of node ids, in order
	Indices []int    // window positions involved
	Entries []Entry  // the matching entries
	Repeats int
}

// DetectStateLoop reports a loop when the same state hash occurs at least
// RepeatThreshold times within the window.
func (t *Tracker) DetectStateLoop(win []Entry) *LoopEvidence {
	counts := make(map[string][]int)
	for i, e := range win {
		counts[e.StateHash] = append(counts[e.StateHash], i)
	}

	best := ""
	for hash, idx := range counts {
		if len(idx) >= t.RepeatThreshold && (best == "" || len(idx) > len(counts[best])) {
			best = hash
		}
	}
	if best == "" {
		return nil
	}

	ev := &LoopEvidence{Indices: counts[best], Repeats: len(counts[best])}
	for _, i := range ev.Indices {
		ev.Entries = append(ev.Entries, win[i])
		ev.NodeIDs = append(ev.NodeIDs, win[i].NodeAfter)
	}
	return ev
}

// DetectNodeVisitLoop looks for a contiguous node-id pattern of length 2-5
// repeating at least PatternRepeats times at the tail of the window. The
// sequence is of NodeBefore ids: the narrative positions actions were taken
// at, which is also what a provisional entry contributes. A node revisited
// with a different inventory still counts here; this rule is about position,
// not full state.
func (t *Tracker) DetectNodeVisitLoop(win []Entry) *LoopEvidence {
	ids := make([]string, len(win))
	for i, e := range win {
		ids[i] = e.NodeBefore
	}

	for patLen := minPatternLen; patLen <= maxPatternLen; patLen++ {
		need := patLen * t.PatternRepeats
		if len(ids) < need {
			break
		}
		pattern := ids[len(ids)-patLen:]
		repeats := 1
		for r := 2; ; r++ {
			start := len(ids) - r*patLen
			if start < 0 {
				break
			}
			if !equalIDs(ids[start:start+patLen], pattern) {
				break
			}
			repeats = r
		}
		if repeats >= t.PatternRepeats {
			ev := &LoopEvidence{Repeats: repeats}
			ev.NodeIDs = append(ev.NodeIDs, pattern...)
			for i := len(win) - repeats*patLen; i < len(win); i++ {
				ev.Indices = append(ev.Indices, i)
				ev.Entries = append(ev.Entries, win[i])
			}
			return ev
		}
	}
	return nil
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ContradictionEvidence is the matching entry pair plus the rule that fired.
type ContradictionEvidence struct {
	Earlier Entry
	Later   Entry
	Rule    Rule
}

// DetectContradiction scans the window for the most recent pair of entries
// whose verbs match a configured rule, honoring the rule's same-target and
// max-distance constraints. Distance is measured in window positions.
func (t *Tracker) DetectContradiction(win []Entry) *ContradictionEvidence {
	for later := len(win) - 1; later > 0; later-- {
		for earlier := later - 1; earlier >= 0; earlier-- {
			for _, rule := range t.Rules {
				if !rule.matchesPair(win[earlier], win[later]) {
					continue
				}
				if rule.MaxDistance > 0 && later-earlier > rule.MaxDistance {
					continue
				}
				return &ContradictionEvidence{
					Earlier: win[earlier],
					Later:   win[later],
					Rule:    rule,
				}
			}
		}
	}
	return nil
}

// Stats is a pure read over the full log.
type Stats struct {
	TotalEntries     int
	DistinctLocations int
	NodeVisits       map[string]int
}

// Statistics summarizes the full log, not just the window.
func (t *Tracker) Statistics() Stats {
	s := Stats{
		TotalEntries: len(t.entries),
		NodeVisits:   make(map[string]int),
	}
	locations := make(map[string]bool)
	for _, e := range t.entries {
		locations[e.Location] = true
		s.NodeVisits[e.NodeAfter]++
	}
	s.DistinctLocations = len(locations)
	return s
}
