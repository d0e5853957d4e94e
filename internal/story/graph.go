package story

import "fmt"

// NodeNotFoundError indicates a lookup for an id the graph does not own.
// Always a programming error or a corrupted save, never user input.
type NodeNotFoundError struct {
	ID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("story: node %q not found", e.ID)
}

// DuplicateIDError indicates an insert with an id the graph already owns.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("story: node %q already exists", e.ID)
}

// Graph owns every node of a play session. The first node added becomes the
// root. Cycles are expected topology, not an error. Nodes are never deleted so
// the story history stays inspectable.
type Graph struct {
	nodes  map[string]*Node
	order  []string
	rootID string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode inserts a node. The first insert becomes the root.
func (g *Graph) AddNode(n *Node) error {
	if _, ok := g.nodes[n.ID]; ok {
		return &DuplicateIDError{ID: n.ID}
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	if g.rootID == "" {
		g.rootID = n.ID
	}
	return nil
}

// Node returns the node for id.
func (g *Graph) Node(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, &NodeNotFoundError{ID: id}
	}
	return n, nil
}

// RootID returns the entry node id.
func (g *Graph) RootID() string { return g.rootID }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Contains reports whether the graph owns id.
func (g *Graph) Contains(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Link records that from can transition into to, as a back-reference on the
// target node.
func (g *Graph) Link(fromID, toID string) error {
	if _, ok := g.nodes[fromID]; !ok {
		return &NodeNotFoundError{ID: fromID}
	}
	to, ok := g.nodes[toID]
	if !ok {
		return &NodeNotFoundError{ID: toID}
	}
	to.addPrevious(fromID)
	return nil
}

// FindPath runs a breadth-first search over outgoing choice targets and
// returns the shortest id sequence from fromID to toID, or nil when
// unreachable within maxDepth hops. Choices are visited in stored order, so
// the selected path is deterministic among equal-length paths.
func (g *Graph) FindPath(fromID, toID string, maxDepth int) []string {
	if !g.Contains(fromID) || !g.Contains(toID) {
		return nil
	}
	if fromID == toID {
		return []string{fromID}
	}

	type item struct {
		id   string
		path []string
	}
	visited := map[string]bool{fromID: true}
	queue := []item{{id: fromID, path: []string{fromID}}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if len(cur.path) > maxDepth {
			continue
		}
		node := g.nodes[cur.id]
		for _, c := range node.Choices {
			next := c.TargetID
			if next == "" || visited[next] {
				continue
			}
			path := append(append([]string{}, cur.path...), next)
			if next == toID {
				return path
			}
			visited[next] = true
			queue = append(queue, item{id: next, path: path})
		}
	}
	return nil
}

// DetectCycle walks PreviousIDs backward from startID for up to maxDepth hops
// and returns the ordered id sequence of a cycle that returns to startID, or
// nil. A cycle here is information for the detector, not an error.
func (g *Graph) DetectCycle(startID string, maxDepth int) []string {
	if !g.Contains(startID) {
		return nil
	}

	var walk func(id string, path []string) []string
	walk = func(id string, path []string) []string {
		if len(path) > maxDepth {
			return nil
		}
		node := g.nodes[id]
		if node == nil {
			return nil
		}
		for _, prev := range node.PreviousIDs {
			if prev == startID {
				return append(append([]string{}, path...), prev)
			}
			seen := false
			for _, p := range path {
				if p == prev {
					seen = true
					break
				}
			}
			if seen {
				continue
			}
			if cycle := walk(prev, append(path, prev)); cycle != nil {
				return cycle
			}
		}
		return nil
	}
	return walk(startID, []string{startID})
}

// NodesByLocation returns ids of nodes at location, in insertion order.
func (g *Graph) NodesByLocation(location string) []string {
	var ids []string
	for _, id := range g.order {
		if g.nodes[id].Location == location {
			ids = append(ids, id)
		}
	}
	return ids
}

// NodesByTag returns ids of nodes carrying tag, in insertion order.
func (g *Graph) NodesByTag(tag string) []string {
	var ids []string
	for _, id := range g.order {
		if g.nodes[id].HasTag(tag) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Walk visits every node in insertion order.
func (g *Graph) Walk(fn func(*Node)) {
	for _, id := range g.order {
		fn(g.nodes[id])
	}
}

// Validate checks for dangling edges: every back-reference must resolve to an
// owned node, and the root must exist.
func (g *Graph) Validate() error {
	if g.rootID != "" && !g.Contains(g.rootID) {
		return &NodeNotFoundError{ID: g.rootID}
	}
	for _, id := range g.order {
		for _, prev := range g.nodes[id].PreviousIDs {
			if !g.Contains(prev) {
				return &NodeNotFoundError{ID: prev}
			}
		}
	}
	return nil
}

// graphDoc is the serialized form. Nodes are stored as an ordered list so
// insertion order survives a save/load cycle.
type graphDoc struct {
	RootID string  `yaml:"root_id"`
	Nodes  []*Node `yaml:"nodes"`
}

// MarshalYAML implements yaml.Marshaler.
func (g *Graph) MarshalYAML() (interface{}, error) {
	doc := graphDoc{RootID: g.rootID}
	for _, id := range g.order {
		doc.Nodes = append(doc.Nodes, g.nodes[id])
	}
	return doc, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *Graph) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var doc graphDoc
	if err := unmarshal(&doc); err != nil {
		return err
	}
	g.nodes = make(map[string]*Node, len(doc.Nodes))
	g.order = g.order[:0]
	g.rootID = ""
	for _, n := range doc.Nodes {
		if err := g.AddNode(n); err != nil {
			return err
		}
	}
	if doc.RootID != "" {
		g.rootID = doc.RootID
	}
	return nil
}
