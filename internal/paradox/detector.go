package paradox

import (
	"fmt"
	"strings"

	"github.com/inkvein/storyloop/internal/history"
	"github.com/inkvein/storyloop/internal/player"
	"github.com/inkvein/storyloop/internal/story"
)

// DetectionInputError indicates malformed input to detection: an empty verb
// or missing player/node state. Callers recover by treating the turn as a
// normal advance; the game never stalls on bad detection input.
type DetectionInputError struct {
	Reason string
}

func (e *DetectionInputError) Error() string {
	return fmt.Sprintf("paradox: invalid detection input: %s", e.Reason)
}

// possessionVerbs are actions that presuppose the target is at hand.
var possessionVerbs = map[string]bool{
	"use":  true,
	"drop": true,
}

// Detector runs the detection rules in a fixed order against the window view
// of the tracker. The ordering is a design decision: the cheapest and most
// certain check runs first, and the first match wins.
type Detector struct {
	Tracker *history.Tracker
}

// NewDetector wires a detector to a tracker.
func NewDetector(t *history.Tracker) *Detector {
	return &Detector{Tracker: t}
}

// Evaluate checks the pending command against the window (which the engine
// builds with the provisional entry folded in). Order:
//
//  1. impossible state
//  2. node-visit loop
//  3. full-state loop
//  4. contradiction rules
//
// Returns nil when the action is consistent.
func (d *Detector) Evaluate(win []history.Entry, p *player.Player, node *story.Node, cmd player.Command) (*Paradox, error) {
	if cmd.Verb == "" {
		return nil, &DetectionInputError{Reason: "empty verb"}
	}
	if p == nil {
		return nil, &DetectionInputError{Reason: "missing player state"}
	}
	if node == nil {
		return nil, &DetectionInputError{Reason: "missing current node"}
	}

	if px := d.checkImpossibleState(p, node, cmd); px != nil {
		return px, nil
	}
	if ev := d.Tracker.DetectNodeVisitLoop(win); ev != nil {
		return &Paradox{
			Type:        TemporalLoop,
			Severity:    clampSeverity(4 + 2*ev.Repeats),
			Description: "The story is repeating itself. You have walked this exact path before.",
			Evidence:    Evidence{Entries: ev.Entries, NodeIDs: ev.NodeIDs, Indices: ev.Indices},
		}, nil
	}
	if ev := d.Tracker.DetectStateLoop(win); ev != nil {
		return &Paradox{
			Type:        TemporalLoop,
			Severity:    clampSeverity(3 + 2*ev.Repeats),
			Description: "You arrive somewhere you have already been, carrying exactly what you carried then.",
			Evidence:    Evidence{Entries: ev.Entries, NodeIDs: ev.NodeIDs, Indices: ev.Indices},
		}, nil
	}
	if ev := d.Tracker.DetectContradiction(win); ev != nil {
		severity := 6
		if ev.Rule.SameTarget {
			severity = 8
		}
		return &Paradox{
			Type:     Contradiction,
			Severity: clampSeverity(severity),
			Description: fmt.Sprintf(
				"Your action contradicts an earlier choice: %q against %q.",
				actionString(ev.Later), actionString(ev.Earlier)),
			Evidence: Evidence{Entries: []history.Entry{ev.Earlier, ev.Later}},
		}, nil
	}
	return nil, nil
}

// checkImpossibleState flags possession verbs whose target is neither held
// nor declared present at the current node.
func (d *Detector) checkImpossibleState(p *player.Player, node *story.Node, cmd player.Command) *Paradox {
	if !possessionVerbs[cmd.Verb] || cmd.Target == "" {
		return nil
	}
	if p.HasItem(cmd.Target) || node.HasObject(cmd.Target) {
		return nil
	}
	return &Paradox{
		Type:     ImpossibleState,
		Severity: clampSeverity(5),
		Description: fmt.Sprintf(
			"You try to %s %s, but it does not exist here... or does it?",
			cmd.Verb, cmd.Target),
		Evidence: Evidence{NodeIDs: []string{node.ID}},
	}
}

func actionString(e history.Entry) string {
	if e.Target == "" {
		return e.Verb
	}
	return strings.TrimSpace(e.Verb + " " + e.Target)
}
