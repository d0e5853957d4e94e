// Package game aggregates one play session and handles whole-state
// persistence. A session owns its graph, player, tracker, and counters
// exclusively; nothing is shared across sessions.
package game

import (
	"github.com/inkvein/storyloop/internal/history"
	"github.com/inkvein/storyloop/internal/player"
	"github.com/inkvein/storyloop/internal/story"
)

// Session is the complete state of one playthrough. ParadoxCount and
// RewriteCount are the engine's two monotonic counters, scoped here rather
// than process-wide so independent sessions never interfere.
type Session struct {
	Graph        *story.Graph
	Player       *player.Player
	Tracker      *history.Tracker
	CurrentID    string
	ParadoxCount int
	RewriteCount int
}

// CurrentNode resolves the active node.
func (s *Session) CurrentNode() (*story.Node, error) {
	return s.Graph.Node(s.CurrentID)
}

// Turn is the index the next history entry will get.
func (s *Session) Turn() int {
	return s.Tracker.Len()
}
