// Scripted headless run: drives a fixed command sequence through the engine
// and prints the transcript. Useful for eyeballing paradox behavior without
// the TUI.
package main

import (
	"fmt"
	"log"

	"github.com/inkvein/storyloop/internal/engine"
	"github.com/inkvein/storyloop/internal/narrate"
	"github.com/inkvein/storyloop/internal/player"
)

var script = []string{
	"go north",
	"take strange key",
	"look",
	"go south",
	"go north",
	"go south",
	"go north",
	"go south",
	"use crystal ball",
	"drop strange key",
	"take strange key",
	"go east",
}

func main() {
	eng := engine.New(narrate.NewTemplateGenerator(42), nil)
	session, err := eng.NewSession()
	if err != nil {
		log.Fatalf("creating session: %v", err)
	}

	node, _ := session.CurrentNode()
	fmt.Printf("== %s ==\n%s\n\n", node.Location, node.Text)

	for _, raw := range script {
		command := player.Parse(raw)
		result, err := eng.ProcessTurn(session, command)
		if err != nil {
			log.Fatalf("turn %q: %v", raw, err)
		}

		fmt.Printf("> %s\n", raw)
		if result.Paradox != nil {
			fmt.Printf("!! PARADOX: %s (severity %d/10)\n", result.Paradox.Type, result.Paradox.Severity)
		}
		fmt.Printf("%s\n\n", result.Node.Text)
	}

	stats := session.Tracker.Statistics()
	fmt.Printf("turns=%d locations=%d nodes=%d paradoxes=%d rewrites=%d\n",
		stats.TotalEntries, stats.DistinctLocations,
		session.Graph.Len(), session.ParadoxCount, session.RewriteCount)
}
