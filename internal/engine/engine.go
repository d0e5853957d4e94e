// Package engine orchestrates a turn: detect paradoxes against the pending
// action, then either advance the story graph or rewrite the affected region.
package engine

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/inkvein/storyloop/internal/game"
	"github.com/inkvein/storyloop/internal/history"
	"github.com/inkvein/storyloop/internal/paradox"
	"github.com/inkvein/storyloop/internal/player"
	"github.com/inkvein/storyloop/internal/story"
)

// ErrSystemCommand is returned when a system command reaches the engine;
// those belong to the interface layer.
var ErrSystemCommand = errors.New("engine: system commands are not story turns")

// Generator supplies all narrative content. Implementations must return
// non-empty text from every text method.
type Generator interface {
	Intro(location string) string
	SceneText(verb, target, location string) string
	Choices(node *story.Node, p *player.Player) []story.NodeChoice
	ParadoxText(t paradox.Type, severity int) string
	LoopBreakText(evidence []string) string
	ParadoxChoices(t paradox.Type) []story.NodeChoice
	NextLocation(verb, target, current string) string
	Objects(location string) []string
}

// Engine processes turns. It is stateless between turns; all session state,
// including the paradox and rewrite counters, lives on the Session.
type Engine struct {
	gen Generator
	log *zap.Logger
}

// New creates an engine. A nil logger disables logging.
func New(gen Generator, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{gen: gen, log: log}
}

const startLocation = "the beginning"

// NewSession creates a fresh session with the opening node.
func (e *Engine) NewSession() (*game.Session, error) {
	root := story.NewNode(e.gen.Intro(startLocation), story.Narrative, startLocation)
	root.Choices = []story.NodeChoice{
		{Label: "Walk towards the light", Action: "go north"},
		{Label: "Follow the shadows", Action: "go south"},
		{Label: "Listen to the whispers", Action: "listen"},
		{Label: "Question your existence", Action: "think"},
	}
	root.Objects = e.gen.Objects(startLocation)

	graph := story.NewGraph()
	if err := graph.AddNode(root); err != nil {
		return nil, err
	}

	e.log.Info("story initialized", zap.String("location", startLocation))
	return &game.Session{
		Graph:     graph,
		Player:    player.New("Traveler", startLocation),
		Tracker:   history.NewTracker(),
		CurrentID: root.ID,
	}, nil
}

// TurnResult is what a turn hands back for rendering: the node to display
// and, when one fired, the paradox that shaped it.
type TurnResult struct {
	Node    *story.Node
	Paradox *paradox.Paradox
}

// ProcessTurn runs one full turn. The pending action is evaluated as if it
// had already happened (the provisional entry is folded into the detection
// window without being committed); the turn then takes exactly one of the
// advance or rewrite paths, commits the real history entry, and returns a
// node. Detection-internal errors degrade to a normal advance.
func (e *Engine) ProcessTurn(s *game.Session, cmd player.Command) (*TurnResult, error) {
	if cmd.IsSystem {
		return nil, ErrSystemCommand
	}
	cur, err := s.CurrentNode()
	if err != nil {
		return nil, err
	}

	provisional := history.Entry{
		Turn:       s.Turn(),
		Verb:       cmd.Verb,
		Target:     cmd.Target,
		NodeBefore: cur.ID,
		NodeAfter:  cur.ID,
		Location:   s.Player.CurrentLocation,
		StateHash:  history.StateHash(cur.ID, s.Player.Inventory, s.Player.CurrentLocation),
	}

	det := paradox.NewDetector(s.Tracker)
	pdx, derr := det.Evaluate(s.Tracker.WindowWith(provisional), s.Player, cur, cmd)
	if derr != nil {
		var inputErr *paradox.DetectionInputError
		if errors.As(derr, &inputErr) {
			e.log.Warn("detection input rejected, advancing normally", zap.String("reason", inputErr.Reason))
		} else {
			e.log.Warn("detection failed, advancing normally", zap.Error(derr))
		}
		pdx = nil
	}

	if pdx == nil {
		return e.advance(s, cur, cmd, provisional)
	}
	return e.resolve(s, cur, cmd, pdx, provisional)
}

// advance moves the story forward: it follows an already-bound choice back
// to its node, or creates and links a new one. Either way it updates player
// state and commits the history entry.
func (e *Engine) advance(s *game.Session, cur *story.Node, cmd player.Command, provisional history.Entry) (*TurnResult, error) {
	action := strings.TrimSpace(cmd.Verb + " " + cmd.Target)
	if c := cur.ChoiceByAction(action); c != nil && c.TargetID != "" {
		if next, err := s.Graph.Node(c.TargetID); err == nil {
			return e.arrive(s, cur, next, cmd, provisional)
		}
	}

	location := e.gen.NextLocation(cmd.Verb, cmd.Target, s.Player.CurrentLocation)

	node := story.NewNode(e.gen.SceneText(cmd.Verb, cmd.Target, location), story.Narrative, location)
	node.Objects = e.gen.Objects(location)
	node.Choices = e.gen.Choices(node, s.Player)

	if err := s.Graph.AddNode(node); err != nil {
		return nil, err
	}
	if err := s.Graph.Link(cur.ID, node.ID); err != nil {
		return nil, err
	}

	// Bind the taken action to the new node so the same action from this
	// node leads back here, and path finding can follow the played route.
	if c := cur.ChoiceByAction(action); c != nil {
		c.TargetID = node.ID
	} else {
		cur.AddChoice(story.NodeChoice{Label: cmd.Original, Action: action, TargetID: node.ID})
	}

	switch cmd.Verb {
	case "take":
		if cmd.Target != "" && s.Player.AddItem(cmd.Target) {
			e.log.Info("item taken", zap.String("item", cmd.Target))
		}
	case "drop":
		if cmd.Target != "" {
			s.Player.RemoveItem(cmd.Target)
		}
	}

	s.Player.MoveTo(location)
	s.Player.RecordChoice(node.ID, cmd.Action(location, provisional.Turn))

	entry := provisional
	entry.NodeAfter = node.ID
	entry.Location = location
	entry.StateHash = history.StateHash(node.ID, s.Player.Inventory, location)
	s.Tracker.Record(entry)

	s.CurrentID = node.ID
	e.log.Info("advanced", zap.String("location", location), zap.String("node", node.ID))
	return &TurnResult{Node: node}, nil
}

// arrive replays a previously bound choice, returning the player to an
// existing node. Revisits are exactly what the loop detectors watch for.
func (e *Engine) arrive(s *game.Session, cur, next *story.Node, cmd player.Command, provisional history.Entry) (*TurnResult, error) {
	if err := s.Graph.Link(cur.ID, next.ID); err != nil {
		return nil, err
	}

	switch cmd.Verb {
	case "take":
		if cmd.Target != "" {
			s.Player.AddItem(cmd.Target)
		}
	case "drop":
		if cmd.Target != "" {
			s.Player.RemoveItem(cmd.Target)
		}
	}

	s.Player.MoveTo(next.Location)
	s.Player.RecordChoice(next.ID, cmd.Action(next.Location, provisional.Turn))

	entry := provisional
	entry.NodeAfter = next.ID
	entry.Location = next.Location
	entry.StateHash = history.StateHash(next.ID, s.Player.Inventory, next.Location)
	s.Tracker.Record(entry)

	s.CurrentID = next.ID
	e.log.Info("revisited", zap.String("location", next.Location), zap.String("node", next.ID))
	return &TurnResult{Node: next}, nil
}

// resolve rewrites the paradox target node in place, creates a paradox
// continuation node, and commits an entry marking the paradox. The committed
// entry carries the continuation node's id and hash, which is what keeps the
// same loop from re-triggering on the very next turn.
func (e *Engine) resolve(s *game.Session, cur *story.Node, cmd player.Command, pdx *paradox.Paradox, provisional history.Entry) (*TurnResult, error) {
	s.ParadoxCount++
	e.log.Warn("paradox detected",
		zap.String("type", string(pdx.Type)),
		zap.Int("severity", pdx.Severity),
		zap.Int("count", s.ParadoxCount))

	// For loops, rewrite the earliest node in the evidence; anything that
	// fails to resolve falls back to the current node. The turn must always
	// produce a node.
	target := cur
	if pdx.Type == paradox.TemporalLoop && len(pdx.Evidence.NodeIDs) > 0 {
		if n, err := s.Graph.Node(pdx.Evidence.NodeIDs[0]); err == nil {
			target = n
		} else {
			e.log.Warn("rewrite target unresolved, rewriting current node", zap.Error(err))
		}
	}

	target.Rewrite(e.gen.ParadoxText(pdx.Type, pdx.Severity))
	target.AddTag("rewritten")
	s.RewriteCount++

	text := e.gen.ParadoxText(pdx.Type, pdx.Severity)
	if pdx.Type == paradox.TemporalLoop {
		text = e.gen.LoopBreakText(pdx.Evidence.NodeIDs)
	}
	res := story.NewNode(text, story.Paradox, s.Player.CurrentLocation)
	res.AddTag("paradox")
	res.AddTag(string(pdx.Type))
	res.Choices = e.gen.ParadoxChoices(pdx.Type)

	if err := s.Graph.AddNode(res); err != nil {
		return nil, err
	}
	if err := s.Graph.Link(cur.ID, res.ID); err != nil {
		return nil, err
	}

	s.Player.RecordChoice(res.ID, player.Action{
		Verb:     "paradox",
		Target:   string(pdx.Type),
		Location: s.Player.CurrentLocation,
		Turn:     provisional.Turn,
	})

	entry := history.Entry{
		Turn:       provisional.Turn,
		Verb:       "paradox",
		Target:     string(pdx.Type),
		NodeBefore: cur.ID,
		NodeAfter:  res.ID,
		Location:   s.Player.CurrentLocation,
		StateHash:  history.StateHash(res.ID, s.Player.Inventory, s.Player.CurrentLocation),
	}
	s.Tracker.Record(entry)

	s.CurrentID = res.ID
	return &TurnResult{Node: res, Paradox: pdx}, nil
}
