package player

import "strings"

// Command is a parsed player input. The engine only processes commands with
// IsSystem == false; system commands are handled by the interface layer.
type Command struct {
	Verb     string
	Target   string
	Original string
	IsSystem bool
}

// Action converts the command into a history-ready action record.
func (c Command) Action(location string, turn int) Action {
	return Action{Verb: c.Verb, Target: c.Target, Location: location, Turn: turn}
}

// verbAliases maps canonical verbs to their accepted spellings.
var verbAliases = map[string][]string{
	"go":     {"go", "walk", "move", "travel", "head"},
	"take":   {"take", "pick", "grab", "get", "collect"},
	"drop":   {"drop", "put", "leave", "discard"},
	"look":   {"look", "examine", "inspect", "observe", "see"},
	"talk":   {"talk", "speak", "ask", "tell", "say"},
	"use":    {"use", "activate", "operate", "interact"},
	"open":   {"open", "unlock"},
	"close":  {"close", "shut", "lock"},
	"attack": {"attack", "fight", "hit", "strike"},
	"help":   {"help", "?", "commands"},
	"status": {"status", "inventory", "inv", "i"},
	"quit":   {"quit", "exit", "q"},
	"save":   {"save"},
	"load":   {"load", "restore"},
	"map":    {"map", "history"},
}

var systemVerbs = map[string]bool{
	"help": true, "status": true, "quit": true,
	"save": true, "load": true, "map": true,
}

var prepositions = map[string]bool{
	"to": true, "at": true, "with": true, "on": true,
	"in": true, "from": true, "the": true, "a": true, "an": true,
}

// Parse turns raw input into a structured command. Unknown verbs fall back to
// a freeform command carrying the whole input as target.
func Parse(raw string) Command {
	original := strings.TrimSpace(raw)
	cleaned := strings.ToLower(original)
	if cleaned == "" {
		return Command{Original: original}
	}

	words := strings.Fields(cleaned)
	verb := ""
	verbIndex := 0
scan:
	for i, word := range words {
		for canonical, aliases := range verbAliases {
			for _, alias := range aliases {
				if word == alias {
					verb = canonical
					verbIndex = i
					break scan
				}
			}
		}
	}

	target := ""
	if verb != "" && verbIndex < len(words)-1 {
		rest := words[verbIndex+1:]
		for len(rest) > 0 && prepositions[rest[0]] {
			rest = rest[1:]
		}
		target = strings.Join(rest, " ")
	}

	if verb == "" {
		return Command{Verb: "freeform", Target: cleaned, Original: original}
	}

	return Command{
		Verb:     verb,
		Target:   target,
		Original: original,
		IsSystem: systemVerbs[verb],
	}
}

var directionAliases = map[string][]string{
	"north":     {"north", "n", "up"},
	"south":     {"south", "s", "down"},
	"east":      {"east", "e", "right"},
	"west":      {"west", "w", "left"},
	"northeast": {"northeast", "ne"},
	"northwest": {"northwest", "nw"},
	"southeast": {"southeast", "se"},
	"southwest": {"southwest", "sw"},
}

// Direction normalizes a movement target to a canonical compass direction.
// Unrecognized targets are returned lowercased as-is.
func Direction(target string) string {
	t := strings.ToLower(strings.TrimSpace(target))
	if t == "" {
		return ""
	}
	for canonical, aliases := range directionAliases {
		for _, alias := range aliases {
			if t == alias {
				return canonical
			}
		}
	}
	return t
}
