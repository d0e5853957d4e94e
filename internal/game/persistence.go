package game

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/inkvein/storyloop/internal/history"
	"github.com/inkvein/storyloop/internal/player"
	"github.com/inkvein/storyloop/internal/story"
)

// SaveDir is where sessions are stored, one directory per save.
var SaveDir = ".saves"

// RestoreError indicates an unreadable or corrupt save. A failed load never
// touches the in-memory session: callers only swap state in when Load
// returns a session.
type RestoreError struct {
	Name string
	Err  error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("game: restoring %q: %v", e.Name, e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }

// historyDoc carries the tracker log plus its detection configuration.
type historyDoc struct {
	WindowSize      int             `yaml:"window_size"`
	RepeatThreshold int             `yaml:"repeat_threshold"`
	PatternRepeats  int             `yaml:"pattern_repeats"`
	Rules           []history.Rule  `yaml:"rules"`
	Entries         []history.Entry `yaml:"entries"`
}

// metaDoc carries the session-level scalars.
type metaDoc struct {
	CurrentNodeID string `yaml:"current_node_id"`
	ParadoxCount  int    `yaml:"paradox_count"`
	RewriteCount  int    `yaml:"rewrite_count"`
}

// Save writes the whole session under SaveDir/name/ as one yaml file per
// concern.
func (s *Session) Save(name string) error {
	dir := filepath.Join(SaveDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	hist := historyDoc{
		WindowSize:      s.Tracker.WindowSize,
		RepeatThreshold: s.Tracker.RepeatThreshold,
		PatternRepeats:  s.Tracker.PatternRepeats,
		Rules:           s.Tracker.Rules,
		Entries:         s.Tracker.Entries(),
	}
	meta := metaDoc{
		CurrentNodeID: s.CurrentID,
		ParadoxCount:  s.ParadoxCount,
		RewriteCount:  s.RewriteCount,
	}

	files := []struct {
		name string
		data any
	}{
		{"graph.yaml", s.Graph},
		{"player.yaml", s.Player},
		{"history.yaml", hist},
		{"meta.yaml", meta},
	}
	for _, f := range files {
		out, err := yaml.Marshal(f.data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), out, 0644); err != nil {
			return err
		}
	}
	return nil
}

// Load restores a session from SaveDir/name/. The restore is all-or-nothing:
// every file is read and validated before the session is constructed, so a
// corrupt save can never partially overwrite a running session.
func Load(name string) (*Session, error) {
	dir := filepath.Join(SaveDir, name)

	graph := story.NewGraph()
	if err := readYAML(filepath.Join(dir, "graph.yaml"), graph); err != nil {
		return nil, &RestoreError{Name: name, Err: err}
	}
	var p player.Player
	if err := readYAML(filepath.Join(dir, "player.yaml"), &p); err != nil {
		return nil, &RestoreError{Name: name, Err: err}
	}
	var hist historyDoc
	if err := readYAML(filepath.Join(dir, "history.yaml"), &hist); err != nil {
		return nil, &RestoreError{Name: name, Err: err}
	}
	var meta metaDoc
	if err := readYAML(filepath.Join(dir, "meta.yaml"), &meta); err != nil {
		return nil, &RestoreError{Name: name, Err: err}
	}

	if err := graph.Validate(); err != nil {
		return nil, &RestoreError{Name: name, Err: err}
	}
	if !graph.Contains(meta.CurrentNodeID) {
		return nil, &RestoreError{Name: name, Err: &story.NodeNotFoundError{ID: meta.CurrentNodeID}}
	}

	tracker := history.FromEntries(hist.Entries)
	if hist.WindowSize > 0 {
		tracker.WindowSize = hist.WindowSize
	}
	if hist.RepeatThreshold > 0 {
		tracker.RepeatThreshold = hist.RepeatThreshold
	}
	if hist.PatternRepeats > 0 {
		tracker.PatternRepeats = hist.PatternRepeats
	}
	if len(hist.Rules) > 0 {
		tracker.Rules = hist.Rules
	}

	return &Session{
		Graph:        graph,
		Player:       &p,
		Tracker:      tracker,
		CurrentID:    meta.CurrentNodeID,
		ParadoxCount: meta.ParadoxCount,
		RewriteCount: meta.RewriteCount,
	}, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// ListSessions returns the names of saved sessions, using graph.yaml as the
// marker for a valid save directory.
func ListSessions() ([]string, error) {
	if _, err := os.Stat(SaveDir); os.IsNotExist(err) {
		return []string{}, nil
	}
	entries, err := os.ReadDir(SaveDir)
	if err != nil {
		return nil, err
	}

	var sessions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		marker := filepath.Join(SaveDir, entry.Name(), "graph.yaml")
		if _, err := os.Stat(marker); err == nil {
			sessions = append(sessions, entry.Name())
		}
	}
	return sessions, nil
}
