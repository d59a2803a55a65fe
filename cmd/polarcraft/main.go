// Command polarcraft is a terminal navigator for polarization-optics course
// content: a unit/section tree cross-filtering a historical timeline, plus
// scientist and concept relation graphs and SVG/PNG snapshot export.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vanderheijden86/polarcraft/internal/datasource"
	"github.com/vanderheijden86/polarcraft/pkg/config"
	"github.com/vanderheijden86/polarcraft/pkg/debug"
	"github.com/vanderheijden86/polarcraft/pkg/export"
	"github.com/vanderheijden86/polarcraft/pkg/loader"
	"github.com/vanderheijden86/polarcraft/pkg/metrics"
	"github.com/vanderheijden86/polarcraft/pkg/model"
	"github.com/vanderheijden86/polarcraft/pkg/netgraph"
	"github.com/vanderheijden86/polarcraft/pkg/relation"
	"github.com/vanderheijden86/polarcraft/pkg/ui"
	"github.com/vanderheijden86/polarcraft/pkg/version"
	"github.com/vanderheijden86/polarcraft/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	contentDir := flag.String("content", "", "Content directory (default: ./content, or PC_CONTENT_DIR)")
	exportKind := flag.String("export", "", "Export a snapshot instead of starting the TUI: 'timeline' or a graph name")
	exportOut := flag.String("export-out", "", "Snapshot output path (prompted interactively when omitted)")
	exportFormat := flag.String("export-format", "", "Snapshot format: svg or png (default from config, else svg)")
	view := flag.String("view", "", "Starting view: 'course' (default) or a graph name")
	noWatch := flag.Bool("no-watch", false, "Disable live reload of the content file")
	flag.Parse()

	if *help {
		fmt.Println("Usage: polarcraft [options]")
		fmt.Println("\nA TUI navigator for polarization-optics course content.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("polarcraft %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	dir := *contentDir
	if dir == "" {
		dir = cfg.ContentDir
	}
	resolved, err := loader.GetContentDir(dir)
	if err != nil {
		fatal(err)
	}
	if dir != "" {
		// An explicit flag or config value names the directory itself.
		resolved = dir
	}

	content, err := loadContent(resolved)
	if err != nil {
		fatal(err)
	}
	debug.Log("loaded %d units, %d events, %d graphs",
		len(content.doc.Units), len(content.events), len(content.graphs))
	if debug.Enabled() {
		debug.Dump("startup timing", metrics.AllTimingStats())
	}

	if *exportKind != "" {
		format := *exportFormat
		if format == "" {
			format = cfg.Export.Format
		}
		if err := runExport(content, *exportKind, *exportOut, format); err != nil {
			fatal(err)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fatal(fmt.Errorf("polarcraft requires a terminal; use --export for non-interactive snapshots"))
	}

	initialView := *view
	if initialView == "" {
		initialView = cfg.UI.DefaultView
	}
	opts := ui.ModelOptions{
		Store:       content.store,
		Catalog:     loader.NewEventCatalog(content.events),
		Graphs:      graphViews(content.graphs),
		ContentDir:  resolved,
		InitialView: initialView,
		Theme:       ui.DefaultTheme(lipgloss.DefaultRenderer()),
	}

	var w *watcher.Watcher
	if !*noWatch {
		if path, err := loader.FindCoursePath(resolved); err == nil {
			w, err = watcher.New(path)
			if err == nil && w.Start() == nil {
				opts.Changed = w.Changed()
				defer w.Stop()
			}
		}
	}

	p := tea.NewProgram(ui.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

// loadedContent bundles everything the views need, built once at startup.
type loadedContent struct {
	doc    loader.CourseDocument
	store  *relation.Store
	events []model.Event
	graphs map[string]*netgraph.Graph
}

// loadContent reads the course document, timeline, and graphs. The three
// files are independent, so they load concurrently.
func loadContent(contentDir string) (*loadedContent, error) {
	var (
		c loadedContent
		g errgroup.Group
	)

	g.Go(func() error {
		doc, err := datasource.LoadCourseFromDir(contentDir)
		if err != nil {
			return err
		}
		store, err := doc.BuildStore()
		if err != nil {
			return err
		}
		c.doc = doc
		c.store = store
		return nil
	})

	g.Go(func() error {
		events, err := loader.LoadEvents(contentDir)
		if err != nil {
			return err
		}
		c.events = events
		return nil
	})

	g.Go(func() error {
		docs, err := loader.LoadGraphs(contentDir)
		if err != nil {
			return err
		}
		c.graphs = make(map[string]*netgraph.Graph, len(docs))
		for name, gd := range docs {
			built, err := netgraph.New(gd.Nodes, gd.Edges)
			if err != nil {
				return fmt.Errorf("graph %s: %w", name, err)
			}
			c.graphs[name] = built
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}

func graphViews(graphs map[string]*netgraph.Graph) map[string]*ui.GraphView {
	theme := ui.DefaultTheme(lipgloss.DefaultRenderer())
	out := make(map[string]*ui.GraphView, len(graphs))
	for name, g := range graphs {
		out[name] = ui.NewGraphView(g, theme)
	}
	return out
}

// runExport writes a timeline or graph snapshot. A missing output path is
// prompted for interactively when a terminal is attached.
func runExport(content *loadedContent, kind, out, format string) error {
	if out == "" {
		var err error
		out, format, err = promptExport(kind, format)
		if err != nil {
			return err
		}
	}

	if kind == "timeline" {
		return export.SaveTimelineSnapshot(export.TimelineSnapshotOptions{
			Path:    out,
			Format:  format,
			Title:   "Polarization Timeline",
			Events:  content.events,
			Primary: primaryEvents(content.doc),
		})
	}

	g, ok := content.graphs[kind]
	if !ok {
		return fmt.Errorf("unknown export target %q (want 'timeline' or a graph name)", kind)
	}
	return export.SaveGraphSnapshot(export.GraphSnapshotOptions{
		Path:   out,
		Format: format,
		Title:  "Relation Graph: " + kind,
		Graph:  g,
	})
}

// primaryEvents marks every event key some course leaf links as primary.
func primaryEvents(doc loader.CourseDocument) map[model.EventKey]bool {
	primary := make(map[model.EventKey]bool)
	mark := func(links []model.EventLink) {
		for _, l := range links {
			if l.Relevance.IsPrimary() {
				primary[l.Key()] = true
			}
		}
	}
	for _, s := range doc.Sections {
		mark(s.Events)
	}
	for _, d := range doc.Demos {
		mark(d.Events)
	}
	for _, ol := range doc.Links {
		if ol.Link.Relevance.IsPrimary() {
			primary[ol.Link.Key()] = true
		}
	}
	return primary
}

func promptExport(kind, format string) (string, string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", "", fmt.Errorf("--export-out is required when not running interactively")
	}

	out := kind + ".svg"
	if format == "" {
		format = "svg"
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output path").
				Value(&out),
			huh.NewSelect[string]().
				Title("Format").
				Options(
					huh.NewOption("SVG", "svg"),
					huh.NewOption("PNG", "png"),
				).
				Value(&format),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return out, format, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
