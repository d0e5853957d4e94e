// Package paradox classifies inconsistencies between the player's action
// history and the narrative state, and decides which one (if any) a pending
// action would create.
package paradox

import "github.com/inkvein/storyloop/internal/history"

// Type is the closed set of paradox categories.
type Type string

const (
	TemporalLoop    Type = "temporal_loop"
	Contradiction   Type = "contradiction"
	ImpossibleState Type = "impossible_state"
	NarrativeBreak  Type = "narrative_break"
	CausalParadox   Type = "causal_paradox"
)

// Evidence carries what triggered detection: the matching history entries,
// node ids, and window positions. It exists so resolution is explainable and
// testable, not guessed.
type Evidence struct {
	Entries []history.Entry
	NodeIDs []string
	Indices []int
}

// Paradox is a transient verdict for a single turn; it is never persisted.
// Severity is for display only and never drives branching.
type Paradox struct {
	Type        Type
	Severity    int
	Description string
	Evidence    Evidence
}

// clampSeverity bounds severity to the 0-10 display scale.
func clampSeverity(s int) int {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}
