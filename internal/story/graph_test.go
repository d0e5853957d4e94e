package story

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestGraph(t *testing.T, texts ...string) (*Graph, []*Node) {
	t.Helper()
	g := NewGraph()
	var nodes []*Node
	for _, text := range texts {
		n := NewNode(text, Narrative, "the crossroads")
		require.NoError(t, g.AddNode(n))
		nodes = append(nodes, n)
	}
	return g, nodes
}

func TestAddNodeFirstBecomesRoot(t *testing.T) {
	g, nodes := newTestGraph(t, "root", "second")

	assert.Equal(t, nodes[0].ID, g.RootID())
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Contains(nodes[1].ID))
}

func TestAddNodeRejectsDuplicateID(t *testing.T) {
	g, nodes := newTestGraph(t, "root")

	err := g.AddNode(nodes[0])
	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, nodes[0].ID, dup.ID)
}

func TestNodeNotFound(t *testing.T) {
	g, _ := newTestGraph(t, "root")

	_, err := g.Node("ghost")
	var nf *NodeNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ghost", nf.ID)
}

func TestLinkRecordsBackReference(t *testing.T) {
	g, nodes := newTestGraph(t, "a", "b")

	require.NoError(t, g.Link(nodes[0].ID, nodes[1].ID))
	require.NoError(t, g.Link(nodes[0].ID, nodes[1].ID)) // idempotent
	assert.Equal(t, []string{nodes[0].ID}, nodes[1].PreviousIDs)

	var nf *NodeNotFoundError
	assert.ErrorAs(t, g.Link("ghost", nodes[1].ID), &nf)
	assert.ErrorAs(t, g.Link(nodes[0].ID, "ghost"), &nf)
}

func TestFindPathShortestAndDeterministic(t *testing.T) {
	g, nodes := newTestGraph(t, "a", "b1", "b2", "c", "d")
	a, b1, b2, c, d := nodes[0], nodes[1], nodes[2], nodes[3], nodes[4]

	// Two equal-length routes a->b1->c and a->b2->c, plus a longer detour
	// a->d->b1->c. The first stored choice must win.
	a.AddChoice(NodeChoice{Action: "go north", TargetID: b1.ID})
	a.AddChoice(NodeChoice{Action: "go east", TargetID: b2.ID})
	a.AddChoice(NodeChoice{Action: "go west", TargetID: d.ID})
	b1.AddChoice(NodeChoice{Action: "go north", TargetID: c.ID})
	b2.AddChoice(NodeChoice{Action: "go north", TargetID: c.ID})
	d.AddChoice(NodeChoice{Action: "go east", TargetID: b1.ID})

	want := []string{a.ID, b1.ID, c.ID}
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, g.FindPath(a.ID, c.ID, 10))
	}

	assert.Equal(t, []string{a.ID}, g.FindPath(a.ID, a.ID, 10))
	assert.Nil(t, g.FindPath(a.ID, "ghost", 10))
	assert.Nil(t, g.FindPath(c.ID, a.ID, 10)) // edges are directed
}

func TestFindPathHonorsMaxDepth(t *testing.T) {
	g, nodes := newTestGraph(t, "a", "b", "c")
	a, b, c := nodes[0], nodes[1], nodes[2]
	a.AddChoice(NodeChoice{Action: "go north", TargetID: b.ID})
	b.AddChoice(NodeChoice{Action: "go north", TargetID: c.ID})

	assert.Nil(t, g.FindPath(a.ID, c.ID, 1))
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, g.FindPath(a.ID, c.ID, 2))
}

func TestDetectCycle(t *testing.T) {
	g, nodes := newTestGraph(t, "a", "b", "c")
	a, b, c := nodes[0], nodes[1], nodes[2]
	require.NoError(t, g.Link(a.ID, b.ID))
	require.NoError(t, g.Link(b.ID, c.ID))
	require.NoError(t, g.Link(c.ID, a.ID))

	cycle := g.DetectCycle(a.ID, 10)
	require.NotNil(t, cycle)
	assert.Equal(t, a.ID, cycle[0])
	assert.Equal(t, a.ID, cycle[len(cycle)-1])
	assert.Len(t, cycle, 4)

	// No cycle through b once the back edge is absent.
	g2, nodes2 := newTestGraph(t, "x", "y")
	require.NoError(t, g2.Link(nodes2[0].ID, nodes2[1].ID))
	assert.Nil(t, g2.DetectCycle(nodes2[1].ID, 10))
}

func TestQueriesKeepInsertionOrder(t *testing.T) {
	g := NewGraph()
	first := NewNode("one", Narrative, "the garden")
	second := NewNode("two", Narrative, "the void")
	third := NewNode("three", Narrative, "the garden")
	for _, n := range []*Node{first, second, third} {
		require.NoError(t, g.AddNode(n))
	}
	second.AddTag("rewritten")
	third.AddTag("rewritten")

	assert.Equal(t, []string{first.ID, third.ID}, g.NodesByLocation("the garden"))
	assert.Equal(t, []string{second.ID, third.ID}, g.NodesByTag("rewritten"))

	var walked []string
	g.Walk(func(n *Node) { walked = append(walked, n.ID) })
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, walked)
}

func TestValidateCatchesDanglingBackReference(t *testing.T) {
	g, nodes := newTestGraph(t, "a", "b")
	require.NoError(t, g.Validate())

	nodes[1].PreviousIDs = append(nodes[1].PreviousIDs, "ghost")
	var nf *NodeNotFoundError
	require.True(t, errors.As(g.Validate(), &nf))
	assert.Equal(t, "ghost", nf.ID)
}

func TestGraphYAMLRoundTripKeepsOrder(t *testing.T) {
	g, nodes := newTestGraph(t, "a", "b", "c")
	nodes[1].Rewrite("changed")
	require.NoError(t, g.Link(nodes[0].ID, nodes[1].ID))

	data, err := yaml.Marshal(g)
	require.NoError(t, err)

	restored := NewGraph()
	require.NoError(t, yaml.Unmarshal(data, restored))

	assert.Equal(t, g.RootID(), restored.RootID())
	assert.Equal(t, g.Len(), restored.Len())

	var order []string
	restored.Walk(func(n *Node) { order = append(order, n.ID) })
	assert.Equal(t, []string{nodes[0].ID, nodes[1].ID, nodes[2].ID}, order)

	mid, err := restored.Node(nodes[1].ID)
	require.NoError(t, err)
	assert.True(t, mid.IsRewritten)
	assert.Equal(t, "b", mid.OriginalText)
	assert.Equal(t, []string{nodes[0].ID}, mid.PreviousIDs)
}
