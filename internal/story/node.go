// Package story holds the narrative graph: nodes, choices, and the
// traversal queries the paradox detector relies on.
package story

import (
	"strings"

	"github.com/google/uuid"
)

// NodeType classifies a story node.
type NodeType string

const (
	Narrative NodeType = "narrative"
	Choice    NodeType = "choice"
	Paradox   NodeType = "paradox"
	Ending    NodeType = "ending"
)

// NodeChoice is a single option presented at a node. TargetID is empty until
// the player takes the choice and the engine materializes the next node.
type NodeChoice struct {
	Label    string `yaml:"label"`
	Action   string `yaml:"action"`
	TargetID string `yaml:"target_id,omitempty"`
}

// Node is a single scene in the story. Nodes are owned exclusively by a Graph;
// PreviousIDs is a relation of ids, never direct references, so cyclic stories
// carry no ownership cycles.
type Node struct {
	ID           string       `yaml:"id"`
	Text         string       `yaml:"text"`
	OriginalText string       `yaml:"original_text,omitempty"`
	Type         NodeType     `yaml:"type"`
	Choices      []NodeChoice `yaml:"choices,omitempty"`
	PreviousIDs  []string     `yaml:"previous_ids,omitempty"`
	Location     string       `yaml:"location"`
	IsRewritten  bool         `yaml:"is_rewritten,omitempty"`
	RewriteCount int          `yaml:"rewrite_count,omitempty"`
	Tags         []string     `yaml:"tags,omitempty"`
	Objects      []string     `yaml:"objects,omitempty"`
}

// NewNode creates a node with a fresh id.
func NewNode(text string, typ NodeType, location string) *Node {
	return &Node{
		ID:       uuid.NewString(),
		Text:     text,
		Type:     typ,
		Location: location,
	}
}

// AddChoice appends a choice; insertion order is meaningful (choices are
// numbered in the UI and walked in order by FindPath).
func (n *Node) AddChoice(c NodeChoice) {
	n.Choices = append(n.Choices, c)
}

// ChoiceByAction returns the choice whose action matches, or nil.
func (n *Node) ChoiceByAction(action string) *NodeChoice {
	for i := range n.Choices {
		if strings.EqualFold(n.Choices[i].Action, action) {
			return &n.Choices[i]
		}
	}
	return nil
}

// Rewrite replaces the node's text, preserving the very first text in
// OriginalText. Calling Rewrite again never overwrites OriginalText.
func (n *Node) Rewrite(newText string) {
	if !n.IsRewritten {
		n.OriginalText = n.Text
		n.IsRewritten = true
	}
	n.Text = newText
	n.RewriteCount++
}

// AddTag adds a lowercased tag if not already present.
func (n *Node) AddTag(tag string) {
	tag = strings.ToLower(tag)
	for _, t := range n.Tags {
		if t == tag {
			return
		}
	}
	n.Tags = append(n.Tags, tag)
}

// HasTag reports whether the node carries the tag.
func (n *Node) HasTag(tag string) bool {
	tag = strings.ToLower(tag)
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasObject reports whether the node declares the object as present.
func (n *Node) HasObject(name string) bool {
	for _, o := range n.Objects {
		if strings.EqualFold(o, name) {
			return true
		}
	}
	return false
}

// addPrevious records a back-reference, keeping the id set unique.
func (n *Node) addPrevious(id string) {
	for _, p := range n.PreviousIDs {
		if p == id {
			return
		}
	}
	n.PreviousIDs = append(n.PreviousIDs, id)
}
