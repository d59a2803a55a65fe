package ui

import (
	"fmt"
	"sort"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/polarcraft/pkg/loader"
	"github.com/vanderheijden86/polarcraft/pkg/relation"
)

// ViewMode identifies the active top-level view.
type ViewMode int

const (
	ViewCourse ViewMode = iota // navigator tree + projected timeline
	ViewGraph                  // relation graphs
)

// Messages exchanged with the bubbletea runtime.
type (
	// FileChangedMsg signals that the watched content file changed on disk.
	FileChangedMsg struct{}

	// ReloadedMsg carries the result of an asynchronous content reload.
	ReloadedMsg struct {
		Store   *relation.Store
		Catalog loader.EventCatalog
		Err     error
	}

	// YankedMsg reports the outcome of a clipboard write.
	YankedMsg struct {
		Ref string
		Err error
	}
)

// ModelOptions assembles the data a Model needs. The caller (cmd/polarcraft)
// loads content and constructs the relation machinery before the program
// starts; the model only re-runs that path on live reload.
type ModelOptions struct {
	Store   *relation.Store
	Catalog loader.EventCatalog
	Graphs  map[string]*GraphView // keyed by authored graph name

	// ContentDir is re-read on FileChangedMsg. Empty disables live reload.
	ContentDir string

	// Changed receives a value whenever the watcher fires. Nil disables the
	// watch command.
	Changed <-chan struct{}

	// InitialView is "course" (default) or a graph name.
	InitialView string

	Theme Theme
}

// Model is the root bubbletea model: it owns the panes, routes key events,
// and re-projects the timeline whenever the selection changes.
type Model struct {
	keys  KeyMap
	help  help.Model
	theme Theme

	mode     ViewMode
	tree     *CourseTree
	timeline *TimelinePane

	graphNames []string
	graphs     map[string]*GraphView
	graphIdx   int

	hierarchy *relation.Hierarchy
	projector *relation.Projector
	catalog   loader.EventCatalog

	contentDir string
	changed    <-chan struct{}

	detail      viewport.Model
	showDetail  bool
	detailCache map[string]string // section id -> rendered markdown

	width  int
	height int
	status string
	err    error
}

// NewModel builds the root model from pre-loaded content.
func NewModel(opts ModelOptions) *Model {
	theme := opts.Theme
	if theme.Renderer == nil {
		theme = TestTheme()
	}

	hierarchy := relation.NewHierarchy(opts.Store)
	projector := relation.NewProjector(opts.Store)

	m := &Model{
		keys:        DefaultKeyMap(),
		help:        help.New(),
		theme:       theme,
		tree:        NewCourseTree(opts.Store, hierarchy, theme),
		timeline:    NewTimelinePane(projector, opts.Catalog, theme),
		graphs:      opts.Graphs,
		hierarchy:   hierarchy,
		projector:   projector,
		catalog:     opts.Catalog,
		contentDir:  opts.ContentDir,
		changed:     opts.Changed,
		detailCache: make(map[string]string),
	}
	for name := range opts.Graphs {
		m.graphNames = append(m.graphNames, name)
	}
	sort.Strings(m.graphNames)

	for i, name := range m.graphNames {
		if name == opts.InitialView {
			m.mode = ViewGraph
			m.graphIdx = i
		}
	}

	m.detail = viewport.New(0, 0)
	m.timeline.Refresh(m.tree.Selection())
	return m
}

// Init starts the watch command when live reload is configured.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changed == nil {
		return nil
	}
	ch := m.changed
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return FileChangedMsg{}
	}
}

func (m *Model) reloadCmd() tea.Cmd {
	dir := m.contentDir
	return func() tea.Msg {
		path, err := loader.FindCoursePath(dir)
		if err != nil {
			return ReloadedMsg{Err: err}
		}
		doc, err := loader.LoadCourseFromFile(path)
		if err != nil {
			return ReloadedMsg{Err: err}
		}
		store, err := doc.BuildStore()
		if err != nil {
			return ReloadedMsg{Err: err}
		}
		events, err := loader.LoadEvents(dir)
		if err != nil {
			return ReloadedMsg{Err: err}
		}
		return ReloadedMsg{Store: store, Catalog: loader.NewEventCatalog(events)}
	}
}

func yankCmd(ref string) tea.Cmd {
	return func() tea.Msg {
		return YankedMsg{Ref: ref, Err: clipboard.WriteAll(ref)}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case FileChangedMsg:
		m.status = "content changed, reloading…"
		return m, tea.Batch(m.reloadCmd(), m.waitForChange())

	case ReloadedMsg:
		if msg.Err != nil {
			// Keep rendering the last good store; the author sees the
			// problem and fixes the file.
			m.status = fmt.Sprintf("reload failed: %v", msg.Err)
			return m, nil
		}
		m.applyReload(msg.Store, msg.Catalog)
		m.status = "content reloaded"
		return m, nil

	case YankedMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("copy failed: %v", msg.Err)
		} else {
			m.status = fmt.Sprintf("copied %s", msg.Ref)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) applyReload(store *relation.Store, catalog loader.EventCatalog) {
	m.hierarchy = relation.NewHierarchy(store)
	m.projector = relation.NewProjector(store)
	m.catalog = catalog
	m.detailCache = make(map[string]string)

	m.tree.SetStore(store, m.hierarchy)
	m.tree.ClearHighlight()
	m.timeline.SetProjector(m.projector, catalog)
	m.timeline.Refresh(m.tree.Selection())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The detail overlay captures navigation until dismissed.
	if m.showDetail {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.detail.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.detail.LineDown(1)
		default:
			m.showDetail = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NextView):
		m.switchView(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevView):
		m.switchView(-1)
		return m, nil
	}

	switch m.mode {
	case ViewCourse:
		return m.handleCourseKey(msg)
	case ViewGraph:
		return m.handleGraphKey(msg)
	}
	return m, nil
}

// switchView cycles course -> each graph -> course. Graphs count as
// separate stops so both named graphs are a single keypress apart.
func (m *Model) switchView(dir int) {
	stops := 1 + len(m.graphNames)
	current := 0
	if m.mode == ViewGraph {
		current = 1 + m.graphIdx
	}
	next := (current + dir + stops) % stops
	if next == 0 {
		m.mode = ViewCourse
		return
	}
	m.mode = ViewGraph
	m.graphIdx = next - 1
}

func (m *Model) handleCourseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.tree.CursorUp()

	case key.Matches(msg, m.keys.Down):
		m.tree.CursorDown()

	case key.Matches(msg, m.keys.Toggle):
		m.tree.Toggle()
		m.timeline.Refresh(m.tree.Selection())

	case key.Matches(msg, m.keys.Detail):
		if row, ok := m.tree.CursorRow(); ok {
			if content := m.DetailFor(row.ID); content != "" {
				m.detail.SetContent(content)
				m.detail.GotoTop()
				m.showDetail = true
			} else {
				m.status = "no description for " + row.ID
			}
		}

	case key.Matches(msg, m.keys.Collapse):
		m.tree.ToggleFold()

	case key.Matches(msg, m.keys.Clear):
		m.tree.ClearSelection()
		m.tree.ClearHighlight()
		m.timeline.Refresh(m.tree.Selection())

	case key.Matches(msg, m.keys.PrimaryOnly):
		m.timeline.TogglePrimaryOnly()
		m.timeline.Refresh(m.tree.Selection())

	case key.Matches(msg, m.keys.Yank):
		if keyRef, ok := m.timeline.Selected(); ok {
			return m, yankCmd(fmt.Sprintf("%s %s", keyRef, m.catalog.Title(keyRef)))
		}

	case key.Matches(msg, m.keys.EdgeFilter):
		// Reverse projection: light up the course rows linked to the
		// event under the timeline cursor.
		if keyRef, ok := m.timeline.Selected(); ok {
			m.tree.SetHighlight(m.projector.LeavesMatchingEvent(keyRef.Year, keyRef.Track))
		}
	}
	return m, nil
}

func (m *Model) handleGraphKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	gv := m.currentGraph()
	if gv == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		gv.CursorUp()
	case key.Matches(msg, m.keys.Down):
		gv.CursorDown()
	case key.Matches(msg, m.keys.Toggle):
		gv.Toggle()
	case key.Matches(msg, m.keys.EdgeFilter):
		gv.CycleEdgeFilter()
	}
	return m, nil
}

func (m *Model) currentGraph() *GraphView {
	if m.graphIdx < 0 || m.graphIdx >= len(m.graphNames) {
		return nil
	}
	return m.graphs[m.graphNames[m.graphIdx]]
}

// layout distributes the window between the panes. The course view splits
// horizontally: tree on the left, timeline on the right.
func (m *Model) layout() {
	body := m.height - 4 // header, status, help
	if body < 3 {
		body = 3
	}
	treeWidth := m.width / 2
	m.tree.SetSize(treeWidth, body)
	m.timeline.SetSize(m.width-treeWidth-1, body)
	m.detail.Width = m.width
	m.detail.Height = body
	for _, gv := range m.graphs {
		gv.SetSize(m.width, body)
	}
	m.help.Width = m.width
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch {
	case m.showDetail:
		body = m.detail.View()
	case m.mode == ViewCourse:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.tree.View(),
			" ",
			m.timeline.View(),
		)
	case m.mode == ViewGraph:
		if gv := m.currentGraph(); gv != nil {
			body = gv.View()
		} else {
			body = m.theme.MutedText.Render("no graphs loaded")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.statusView(),
		m.help.View(m.keys),
	)
}

func (m *Model) headerView() string {
	title := "Course"
	if m.mode == ViewGraph && m.graphIdx < len(m.graphNames) {
		title = "Graph: " + m.graphNames[m.graphIdx]
	}
	header := m.theme.Header.Render("polarcraft · " + title)

	badge := ""
	if m.mode == ViewCourse {
		sel := m.tree.Selection()
		badge = m.theme.SecondaryText.Render(
			fmt.Sprintf("  %d selected · %d events", sel.Len(), len(m.timeline.Keys())))
		if m.timeline.PrimaryOnly() {
			badge += m.theme.PrimaryMark.Render(" [primary]")
		}
	}
	return header + badge
}

func (m *Model) statusView() string {
	if m.status == "" {
		return ""
	}
	return m.theme.MutedText.Render(m.status)
}

// DetailFor renders a section or demo description as terminal markdown.
// Rendered output is cached per id; the cache drops on reload.
func (m *Model) DetailFor(id string) string {
	if out, ok := m.detailCache[id]; ok {
		return out
	}

	var raw string
	if sec, ok := m.tree.store.Section(id); ok {
		raw = sec.Description
	} else if d, ok := m.tree.store.Demo(id); ok {
		raw = d.Description
	}
	if raw == "" {
		return ""
	}

	out, err := glamour.Render(raw, "auto")
	if err != nil {
		out = raw
	}
	m.detailCache[id] = out
	return out
}
