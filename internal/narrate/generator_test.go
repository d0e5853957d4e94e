package narrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkvein/storyloop/internal/paradox"
	"github.com/inkvein/storyloop/internal/player"
	"github.com/inkvein/storyloop/internal/story"
)

func TestSameSeedReplaysSameNarration(t *testing.T) {
	a := NewTemplateGenerator(42)
	b := NewTemplateGenerator(42)

	assert.Equal(t, a.Intro("the library"), b.Intro("the library"))
	for i := 0; i < 10; i++ {
		assert.Equal(t,
			a.SceneText("go", "north", "the void"),
			b.SceneText("go", "north", "the void"))
		assert.Equal(t,
			a.NextLocation("go", "north", "the beginning"),
			b.NextLocation("go", "north", "the beginning"))
	}
}

func TestIntroCoversUnknownLocations(t *testing.T) {
	g := NewTemplateGenerator(1)
	text := g.Intro("an uncharted nowhere")
	assert.NotEmpty(t, text)
	assert.Contains(t, text, "an uncharted nowhere")
}

func TestSceneTextAlwaysNonEmpty(t *testing.T) {
	g := NewTemplateGenerator(1)
	for _, verb := range []string{"go", "look", "take", "drop", "use", "talk", "think", "listen", "freeform"} {
		assert.NotEmpty(t, g.SceneText(verb, "", "the garden"), "verb %q", verb)
	}
}

func TestSceneTextIntroducesKnownCharacters(t *testing.T) {
	g := NewTemplateGenerator(1)
	text := g.SceneText("talk", "the keeper", "the library")
	assert.Contains(t, text, characters["the keeper"])
}

func TestChoicesEndWithLookAround(t *testing.T) {
	g := NewTemplateGenerator(7)
	node := story.NewNode("shelves", story.Narrative, "the library")
	p := player.New("Traveler", "the library")

	for i := 0; i < 20; i++ {
		choices := g.Choices(node, p)
		require.GreaterOrEqual(t, len(choices), 3)
		for _, c := range choices {
			assert.NotEmpty(t, c.Label)
			assert.NotEmpty(t, c.Action)
			assert.Empty(t, c.TargetID, "fresh choices start unbound")
		}
		assert.Equal(t, "look", choices[len(choices)-1].Action)
	}
}

func TestChoicesIncludeLocationFlavor(t *testing.T) {
	g := NewTemplateGenerator(1)
	node := story.NewNode("shelves", story.Narrative, "the library")
	p := player.New("Traveler", "the library")

	choices := g.Choices(node, p)
	var actions []string
	for _, c := range choices {
		actions = append(actions, c.Action)
	}
	assert.Contains(t, actions, "read book")
}

func TestParadoxTextTaggedByType(t *testing.T) {
	g := NewTemplateGenerator(1)
	for _, typ := range []paradox.Type{
		paradox.TemporalLoop, paradox.Contradiction,
		paradox.ImpossibleState, paradox.NarrativeBreak,
	} {
		text := g.ParadoxText(typ, 5)
		assert.NotEmpty(t, text, "type %q", typ)
		assert.Contains(t, text, "[")
	}
}

func TestLoopBreakTextMentionsLongEchoes(t *testing.T) {
	g := NewTemplateGenerator(1)
	assert.NotEmpty(t, g.LoopBreakText([]string{"a", "b"}))

	long := g.LoopBreakText([]string{"a", "b", "c", "d"})
	assert.Contains(t, long, "echo")
}

func TestParadoxChoicesByType(t *testing.T) {
	g := NewTemplateGenerator(1)

	loop := g.ParadoxChoices(paradox.TemporalLoop)
	require.Len(t, loop, 4)
	assert.Equal(t, "break cycle", loop[2].Action)
	assert.Equal(t, "go forward", loop[3].Action)

	contra := g.ParadoxChoices(paradox.Contradiction)
	require.Len(t, contra, 4)
	assert.Equal(t, "embrace", contra[2].Action)

	other := g.ParadoxChoices(paradox.ImpossibleState)
	assert.Len(t, other, 3)
}

func TestNextLocation(t *testing.T) {
	g := NewTemplateGenerator(1)

	assert.Equal(t, "the garden", g.NextLocation("look", "", "the garden"))
	assert.Equal(t, "the garden", g.NextLocation("take", "orb", "the garden"))

	for i := 0; i < 20; i++ {
		loc := g.NextLocation("go", "n", "the beginning")
		assert.Contains(t, directionMap["north"], loc)
	}

	// Unmapped directions still land somewhere real.
	loc := g.NextLocation("go", "sideways", "the beginning")
	assert.Contains(t, locationNames, loc)
}

func TestObjectsComeFromTheCatalog(t *testing.T) {
	g := NewTemplateGenerator(3)
	found := false
	for i := 0; i < 50; i++ {
		objects := g.Objects("the market")
		if len(objects) == 0 {
			continue
		}
		found = true
		require.Len(t, objects, 1)
		assert.Contains(t, foundItems, objects[0])
	}
	assert.True(t, found, "one in five scenes should carry an item")
}
