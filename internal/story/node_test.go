package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeAssignsUniqueIDs(t *testing.T) {
	a := NewNode("one", Narrative, "the library")
	b := NewNode("two", Narrative, "the library")

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, Narrative, a.Type)
	assert.Equal(t, "the library", a.Location)
}

func TestChoiceByAction(t *testing.T) {
	n := NewNode("text", Narrative, "the garden")
	n.AddChoice(NodeChoice{Label: "Go north", Action: "go north"})
	n.AddChoice(NodeChoice{Label: "Look", Action: "look"})

	require.NotNil(t, n.ChoiceByAction("go north"))
	assert.Equal(t, "Go north", n.ChoiceByAction("GO NORTH").Label)
	assert.Nil(t, n.ChoiceByAction("go south"))

	// Returned pointer aliases the stored choice.
	n.ChoiceByAction("look").TargetID = "abc"
	assert.Equal(t, "abc", n.Choices[1].TargetID)
}

func TestRewritePreservesFirstText(t *testing.T) {
	n := NewNode("the original scene", Narrative, "the void")

	n.Rewrite("first rewrite")
	require.True(t, n.IsRewritten)
	assert.Equal(t, "the original scene", n.OriginalText)
	assert.Equal(t, "first rewrite", n.Text)
	assert.Equal(t, 1, n.RewriteCount)

	n.Rewrite("second rewrite")
	assert.Equal(t, "the original scene", n.OriginalText)
	assert.Equal(t, "second rewrite", n.Text)
	assert.Equal(t, 2, n.RewriteCount)
}

func TestTags(t *testing.T) {
	n := NewNode("text", Paradox, "the void")
	n.AddTag("Rewritten")
	n.AddTag("rewritten")
	n.AddTag("paradox")

	assert.Equal(t, []string{"rewritten", "paradox"}, n.Tags)
	assert.True(t, n.HasTag("REWRITTEN"))
	assert.False(t, n.HasTag("ending"))
}

func TestHasObject(t *testing.T) {
	n := NewNode("text", Narrative, "the market")
	n.Objects = []string{"strange key"}

	assert.True(t, n.HasObject("Strange Key"))
	assert.False(t, n.HasObject("glowing orb"))
}
