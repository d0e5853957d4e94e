package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStartsAtLocation(t *testing.T) {
	p := New("Traveler", "the beginning")

	assert.Equal(t, "Traveler", p.Name)
	assert.Equal(t, "the beginning", p.CurrentLocation)
	assert.Equal(t, []string{"the beginning"}, p.VisitedLocations)
	assert.Empty(t, p.Inventory)
}

func TestInventoryIsCaseInsensitiveSet(t *testing.T) {
	p := New("Traveler", "the beginning")

	assert.True(t, p.AddItem("Strange Key"))
	assert.False(t, p.AddItem("strange key"))
	assert.Equal(t, []string{"Strange Key"}, p.Inventory)
	assert.True(t, p.HasItem("STRANGE KEY"))

	assert.True(t, p.RemoveItem("strange key"))
	assert.False(t, p.RemoveItem("strange key"))
	assert.False(t, p.HasItem("strange key"))
}

func TestMoveToTracksVisits(t *testing.T) {
	p := New("Traveler", "the beginning")

	p.MoveTo("the library")
	p.MoveTo("The Library")
	p.MoveTo("the void")

	assert.Equal(t, "the void", p.CurrentLocation)
	assert.Equal(t, []string{"the beginning", "the library", "the void"}, p.VisitedLocations)
	assert.True(t, p.HasVisited("THE LIBRARY"))
	assert.False(t, p.HasVisited("the market"))
}

func TestRecordChoice(t *testing.T) {
	p := New("Traveler", "the beginning")

	p.RecordChoice("node-1", Action{Verb: "go", Target: "north", Location: "the library", Turn: 0})
	p.RecordChoice("node-2", Action{Verb: "look", Location: "the library", Turn: 1})

	assert.Equal(t, []string{"node-1", "node-2"}, p.ChoiceHistory)
	assert.Len(t, p.ActionHistory, 2)
	assert.Equal(t, "go", p.ActionHistory[0].Verb)
	assert.Equal(t, 1, p.ActionHistory[1].Turn)
}

func TestFlagsAndVariables(t *testing.T) {
	p := New("Traveler", "the beginning")

	p.SetFlag("Met-Keeper", true)
	assert.True(t, p.Flag("met-keeper"))
	assert.False(t, p.Flag("unset"))

	p.SetVariable("Loops", 3)
	assert.Equal(t, 3, p.Variable("loops"))
	assert.Nil(t, p.Variable("unset"))
}
