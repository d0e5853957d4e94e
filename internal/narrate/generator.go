// Package narrate generates story content: scene text, choices, and paradox
// resolutions. The template generator is self-contained; an optional
// Gemini-backed generator layers AI narration on top of it.
package narrate

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/inkvein/storyloop/internal/paradox"
	"github.com/inkvein/storyloop/internal/player"
	"github.com/inkvein/storyloop/internal/story"
)

// TemplateGenerator picks from the built-in catalog. A fixed seed produces a
// fixed narration, which the tests rely on.
type TemplateGenerator struct {
	rng *rand.Rand
}

// NewTemplateGenerator seeds the generator. Seed 0 is a valid fixed seed.
func NewTemplateGenerator(seed int64) *TemplateGenerator {
	return &TemplateGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Intro produces the opening text for a location.
func (g *TemplateGenerator) Intro(location string) string {
	desc, ok := locationDescriptions[location]
	if !ok {
		desc = "a place called " + location
	}
	return fmt.Sprintf(pick(g.rng, introTemplates), desc)
}

// SceneText narrates an action outcome. Always non-empty.
func (g *TemplateGenerator) SceneText(verb, target, location string) string {
	templates, ok := sceneTemplates[verb]
	if !ok {
		templates = sceneTemplates["go"]
	}
	if target == "" {
		target = "the unknown"
	}
	text := fmt.Sprintf(pick(g.rng, templates), target, location)
	if verb == "talk" {
		if desc, ok := characters[strings.ToLower(target)]; ok {
			text += "\n\n" + desc
		}
	}
	if g.rng.Float64() < 0.15 {
		text += "\n\n" + pick(g.rng, surrealEvents)
	}
	return text
}

// Choices produces the ordered option list for a node.
func (g *TemplateGenerator) Choices(node *story.Node, p *player.Player) []story.NodeChoice {
	var choices []story.NodeChoice

	directions := []string{"north", "south", "east", "west"}
	count := 2 + g.rng.Intn(3)
	g.rng.Shuffle(len(directions), func(i, j int) {
		directions[i], directions[j] = directions[j], directions[i]
	})
	for _, dir := range directions[:count] {
		choices = append(choices, story.NodeChoice{
			Label:  "Go " + dir,
			Action: "go " + dir,
		})
	}

	switch {
	case strings.Contains(node.Location, "library"):
		choices = append(choices, story.NodeChoice{Label: "Read a book", Action: "read book"})
	case strings.Contains(node.Location, "market"):
		choices = append(choices, story.NodeChoice{Label: "Browse the wares", Action: "browse"})
	case strings.Contains(node.Location, "mirror"):
		choices = append(choices, story.NodeChoice{Label: "Touch the mirror", Action: "touch mirror"})
	}

	choices = append(choices, story.NodeChoice{Label: "Look around", Action: "look"})
	return choices
}

// ParadoxText narrates the resolution of a paradox, tagged by type.
func (g *TemplateGenerator) ParadoxText(t paradox.Type, severity int) string {
	text := pick(g.rng, paradoxTemplates)
	switch t {
	case paradox.TemporalLoop:
		text += "\n\n[The narrative shifts subtly. This moment is different now, though you can't quite say how.]"
	case paradox.Contradiction:
		text += "\n\n[Reality rewrites itself. The contradiction resolves into a strange new truth that somehow makes sense.]"
	case paradox.ImpossibleState:
		text += "\n\n[The story decides the impossible thing was possible all along.]"
	default:
		text += "\n\n[The story adjusts itself...]"
	}
	if g.rng.Float64() < 0.4 {
		text += "\n\n" + pick(g.rng, surrealEvents)
	}
	return text
}

// LoopBreakText narrates a broken loop; the evidence ids flavor the length of
// the echo, nothing more.
func (g *TemplateGenerator) LoopBreakText(evidence []string) string {
	text := pick(g.rng, loopBreakTemplates)
	if len(evidence) > 3 {
		text += "\n\nThe echo of your repeated steps fades behind you."
	}
	if g.rng.Float64() < 0.3 {
		text += "\n\n" + pick(g.rng, surrealEvents)
	}
	return text
}

// ParadoxChoices produces the option list shown after a resolution.
func (g *TemplateGenerator) ParadoxChoices(t paradox.Type) []story.NodeChoice {
	choices := []story.NodeChoice{
		{Label: "Accept the new reality", Action: "accept"},
		{Label: "Question what just happened", Action: "question"},
	}
	switch t {
	case paradox.TemporalLoop:
		choices = append(choices, story.NodeChoice{Label: "Try to break the cycle", Action: "break cycle"})
	case paradox.Contradiction:
		choices = append(choices, story.NodeChoice{Label: "Embrace the contradiction", Action: "embrace"})
	}
	choices = append(choices, story.NodeChoice{Label: "Move on", Action: "go forward"})
	return choices
}

// NextLocation picks a destination for a movement verb; other verbs stay put.
func (g *TemplateGenerator) NextLocation(verb, target, current string) string {
	if verb != "go" {
		return current
	}
	dir := player.Direction(target)
	if candidates, ok := directionMap[dir]; ok {
		return pick(g.rng, candidates)
	}
	return pick(g.rng, locationNames)
}

// Objects occasionally places an item in a fresh scene.
func (g *TemplateGenerator) Objects(location string) []string {
	if g.rng.Float64() < 0.2 {
		return []string{pick(g.rng, foundItems)}
	}
	return nil
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
