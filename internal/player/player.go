// Package player tracks the traveler's state: inventory, locations,
// and the choice/action record the paradox detector inspects.
package player

import "strings"

// Action is one structured entry in the player's action record.
type Action struct {
	Verb     string `yaml:"verb"`
	Target   string `yaml:"target,omitempty"`
	Location string `yaml:"location"`
	Turn     int    `yaml:"turn"`
}

// Player is the full player snapshot. Inventory and VisitedLocations are
// semantically sets but keep insertion order for display.
type Player struct {
	Name             string         `yaml:"name"`
	Inventory        []string       `yaml:"inventory,omitempty"`
	CurrentLocation  string         `yaml:"current_location"`
	VisitedLocations []string       `yaml:"visited_locations,omitempty"`
	ChoiceHistory    []string       `yaml:"choice_history,omitempty"`
	ActionHistory    []Action       `yaml:"action_history,omitempty"`
	Flags            map[string]bool `yaml:"flags,omitempty"`
	Variables        map[string]any  `yaml:"variables,omitempty"`
}

// New creates a player at the given starting location.
func New(name, location string) *Player {
	p := &Player{
		Name:            name,
		CurrentLocation: location,
		Flags:           make(map[string]bool),
		Variables:       make(map[string]any),
	}
	p.VisitedLocations = append(p.VisitedLocations, location)
	return p
}

// AddItem adds an item unless an equivalent (case-insensitive) one is held.
// Returns true if the inventory changed.
func (p *Player) AddItem(item string) bool {
	if p.HasItem(item) {
		return false
	}
	p.Inventory = append(p.Inventory, item)
	return true
}

// RemoveItem drops the first matching item. Returns true if found.
func (p *Player) RemoveItem(item string) bool {
	for i, held := range p.Inventory {
		if strings.EqualFold(held, item) {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// HasItem reports whether the player holds the item.
func (p *Player) HasItem(item string) bool {
	for _, held := range p.Inventory {
		if strings.EqualFold(held, item) {
			return true
		}
	}
	return false
}

// MoveTo updates the current location and the visited set.
func (p *Player) MoveTo(location string) {
	p.CurrentLocation = location
	if !p.HasVisited(location) {
		p.VisitedLocations = append(p.VisitedLocations, location)
	}
}

// HasVisited reports whether the player has ever been at location.
func (p *Player) HasVisited(location string) bool {
	for _, loc := range p.VisitedLocations {
		if strings.EqualFold(loc, location) {
			return true
		}
	}
	return false
}

// RecordChoice appends the visited node id and the action behind it.
func (p *Player) RecordChoice(nodeID string, a Action) {
	p.ChoiceHistory = append(p.ChoiceHistory, nodeID)
	p.ActionHistory = append(p.ActionHistory, a)
}

// SetFlag sets a boolean flag.
func (p *Player) SetFlag(name string, value bool) {
	if p.Flags == nil {
		p.Flags = make(map[string]bool)
	}
	p.Flags[strings.ToLower(name)] = value
}

// Flag returns the flag value, false when unset.
func (p *Player) Flag(name string) bool {
	return p.Flags[strings.ToLower(name)]
}

// SetVariable stores an arbitrary scalar.
func (p *Player) SetVariable(name string, value any) {
	if p.Variables == nil {
		p.Variables = make(map[string]any)
	}
	p.Variables[strings.ToLower(name)] = value
}

// Variable returns a stored scalar, nil when unset.
func (p *Player) Variable(name string) any {
	return p.Variables[strings.ToLower(name)]
}
