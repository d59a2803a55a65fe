//go:build ignore

// generate_content.go creates sample course content for local development.
// Usage: go run scripts/generate_content.go
//
// Creates:
//
//	content/course.json    (generated units/sections/demos with event links)
//	content/timeline.json  (display records for every linked event)
//	content/graphs.json    (a small scientist relation graph)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/polarcraft/pkg/model"
	"github.com/vanderheijden86/polarcraft/pkg/testutil"
)

func main() {
	outputDir := "content"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	gen := testutil.New(testutil.GeneratorConfig{
		Seed:     7,
		IDPrefix: "pc",
		BaseYear: 1669,
		Tracks:   []string{"polarization", "optics", "electromagnetism"},
	})
	fx := gen.Course(4, 3, 2)

	writeJSON(filepath.Join(outputDir, "course.json"), map[string]any{
		"units":    fx.Units,
		"sections": fx.Sections,
		"demos":    fx.Demos,
	})

	writeJSON(filepath.Join(outputDir, "timeline.json"), map[string]any{
		"events": timelineEvents(fx),
	})

	writeJSON(filepath.Join(outputDir, "graphs.json"), map[string]any{
		"scientists": scientistGraph(),
	})

	fmt.Println("Done! Sample content created in", outputDir)
}

func writeJSON(path string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal %s: %v\n", path, err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("  Written %s (%d bytes)\n", path, len(data))
}

// timelineEvents derives a display record for every distinct event key the
// generated course links, so the navigator has titles to show.
func timelineEvents(fx testutil.CourseFixture) []model.Event {
	seen := make(map[model.EventKey]bool)
	var events []model.Event
	add := func(links []model.EventLink) {
		for _, l := range links {
			key := l.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			events = append(events, model.Event{
				Year:  key.Year,
				Track: key.Track,
				Title: fmt.Sprintf("Milestone in %s (%d)", key.Track, key.Year),
			})
		}
	}
	for _, s := range fx.Sections {
		add(s.Events)
	}
	for _, d := range fx.Demos {
		add(d.Events)
	}
	return events
}

func scientistGraph() map[string]any {
	return map[string]any{
		"nodes": []model.NetNode{
			{ID: "bartholin", Label: "Rasmus Bartholin", X: 5, Y: 10},
			{ID: "huygens", Label: "Christiaan Huygens", X: 20, Y: 5},
			{ID: "newton", Label: "Isaac Newton", X: 20, Y: 20},
			{ID: "malus", Label: "Étienne-Louis Malus", X: 40, Y: 10},
			{ID: "fresnel", Label: "Augustin-Jean Fresnel", X: 55, Y: 5},
		},
		"edges": []model.NetEdge{
			{From: "bartholin", To: "huygens", Type: model.EdgeInfluenced},
			{From: "huygens", To: "fresnel", Type: model.EdgeExtended},
			{From: "newton", To: "malus", Type: model.EdgeInfluenced},
			{From: "fresnel", To: "newton", Type: model.EdgeDisputed},
		},
	}
}
