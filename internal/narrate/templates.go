package narrate

// Template catalog for the surreal story world. Selection is random but
// seeded, so a fixed seed replays the same narration.

var introTemplates = []string{
	"You find yourself in %s. The air feels thick with possibility, as if reality itself is waiting to see what you'll do next.",
	"The world around you shifts into focus. You are standing in %s, though how you got here remains a mystery wrapped in fog.",
	"%s materializes around you. Time seems uncertain here, as if past and future are merely suggestions.",
}

var paradoxTemplates = []string{
	"Reality shudders and rewrites itself. What once was one reality has always been another. You remember it both ways simultaneously.",
	"The universe course-corrects. It never happened, or rather, it happened differently. Your memories blur and reform.",
	"A ripple passes through existence. The paradox resolves itself by declaring that both states exist in superposition until observed.",
}

var loopBreakTemplates = []string{
	"You feel a strange sensation of déjà vu, but... different. The loop cracks, and new possibilities emerge.",
	"Time stutters. You've been here before, but now the path diverges. Something has changed in the fabric of this story.",
	"The narrative recognizes the pattern and rebels. A new thread weaves itself into existence, breaking the cycle.",
}

var surrealEvents = []string{
	"The walls begin to whisper your previous choices back to you.",
	"A clock runs backwards, erasing moments that never existed.",
	"Your shadow steps forward and takes your place momentarily.",
	"The ground becomes the ceiling, and you realize you've always been falling upward.",
	"A door appears where there was none, labeled 'This Way to Yesterday'.",
	"The colors in the room swap places, and suddenly blue tastes like Wednesday.",
	"A previous version of yourself walks past, ignoring your existence.",
	"The narrative hiccups, and for a moment, you exist in two places at once.",
	"Time folds like origami, and you catch a glimpse of all possible outcomes.",
	"The story pauses to catch its breath, and you hear the author's pen scratching.",
	"Reality buffering... please wait while the universe recalculates.",
	"A footnote appears in mid-air: *This event may or may not have happened.*",
	"The scenery flickers like a candle, revealing the stage behind the world.",
	"Your inventory temporarily includes 'one existential crisis' before vanishing.",
	"The ground remembers being sky and becomes confused about its purpose.",
}

// locationDescriptions keys are also the canonical location names.
var locationDescriptions = map[string]string{
	"the beginning":   "an endless white expanse where stories are born",
	"the crossroads":  "a place where infinite paths converge and diverge",
	"the library":     "towering shelves of unwritten books stretch into infinity",
	"the mirror hall": "reflections show versions of yourself that made different choices",
	"the garden":      "flowers bloom in colors that don't exist, narrating forgotten tales",
	"the void":        "pure nothingness that somehow contains everything",
	"the clock tower": "gears turn backwards and forwards, keeping time with no time",
	"the market":      "traders barter in memories and sell bottled possibilities",
}

// locationNames in a fixed order, for deterministic random picks.
var locationNames = []string{
	"the beginning",
	"the crossroads",
	"the library",
	"the mirror hall",
	"the garden",
	"the void",
	"the clock tower",
	"the market",
}

// directionMap routes compass directions to candidate destinations.
var directionMap = map[string][]string{
	"north": {"the library", "the clock tower", "the void"},
	"south": {"the garden", "the market", "the beginning"},
	"east":  {"the mirror hall", "the crossroads"},
	"west":  {"the crossroads", "the garden"},
}

// sceneTemplates by verb; %[1]s is the target, %[2]s the location.
var sceneTemplates = map[string][]string{
	"go": {
		"You move towards %[1]s. The scenery shifts around you as you enter %[2]s.",
		"Your footsteps echo as you travel %[1]s. You find yourself in %[2]s.",
		"The path leads you %[1]s. %[2]s materializes around you.",
	},
	"look": {
		"You examine your surroundings carefully. Everything in %[2]s seems both familiar and strange.",
		"You take in the details of %[2]s. The scene holds still, as if posing for you.",
	},
	"take": {
		"You reach for %[1]s. It feels significant in your hands.",
		"You pick up %[1]s. Reality seems to acknowledge your choice.",
	},
	"drop": {
		"You let go of %[1]s. It settles into %[2]s as if it had always belonged there.",
		"You set %[1]s down. The story makes a quiet note of it.",
	},
	"use": {
		"You use %[1]s. Something in %[2]s responds, subtly.",
		"%[1]s hums in your grip as you put it to work.",
	},
	"talk": {
		"You speak to %[1]s. Words echo in ways they shouldn't.",
		"You attempt conversation with %[1]s. Something listens.",
	},
	"think": {
		"You pause to consider your existence. The story waits patiently for your next move.",
		"Thoughts spiral through your mind. Are you the author or the authored?",
	},
	"listen": {
		"You strain to hear the whispers of the narrative. They speak of paths not yet taken.",
		"The silence hums with unwritten possibilities. You catch fragments of other stories.",
	},
}

var foundItems = []string{"strange key", "glowing orb", "ancient map", "cryptic note"}

var characters = map[string]string{
	"the narrator": "A voice without a body, speaking from everywhere and nowhere.",
	"the echo":     "A shadow that mirrors your past actions.",
	"the keeper":   "An ancient figure who maintains the story's continuity.",
	"the glitch":   "A character that shouldn't exist, born from paradoxes.",
}
