package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/polarcraft/pkg/metrics"
	"github.com/vanderheijden86/polarcraft/pkg/model"
	"github.com/vanderheijden86/polarcraft/pkg/netgraph"
)

// GraphSnapshotOptions controls relation-graph snapshot export behaviour.
type GraphSnapshotOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title  string // Optional title rendered in the summary block
	Graph  *netgraph.Graph
}

// SaveGraphSnapshot renders a scientist or concept relation graph using its
// authored layout coordinates. The highlighted set (focus plus hover
// neighborhood through the active edge filter) renders emphasized.
func SaveGraphSnapshot(opts GraphSnapshotOptions) error {
	defer metrics.Timer(metrics.SnapshotRender)()

	if opts.Graph == nil || len(opts.Graph.Nodes()) == 0 {
		return fmt.Errorf("no graph to export")
	}

	format, path, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return err
	}
	opts.Path = path

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	layout := buildGraphLayout(opts)

	switch format {
	case "svg":
		file, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer file.Close()
		return renderGraphSVG(file, layout)
	case "png":
		return renderGraphPNG(opts.Path, layout)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

type graphNode struct {
	ID          string
	Label       string
	X, Y        float64
	Highlighted bool
}

type graphEdge struct {
	X1, Y1, X2, Y2 float64
	Type           model.EdgeType
}

type graphLayout struct {
	Nodes   []graphNode
	Edges   []graphEdge
	Width   int
	Height  int
	Header  float64
	Summary graphSummary
}

type graphSummary struct {
	Title     string
	NodeCount int
	EdgeCount int
	Filter    model.EdgeType
}

func buildGraphLayout(opts GraphSnapshotOptions) graphLayout {
	const (
		padding      = 48.0
		headerHeight = 96.0
		scale        = 8.0
		nodeR        = 16.0
	)

	g := opts.Graph
	nodes := g.Nodes()

	// Authored coordinates are abstract; scale them and shift past the
	// header.
	maxX, maxY := 0.0, 0.0
	for _, n := range nodes {
		if n.X > maxX {
			maxX = n.X
		}
		if n.Y > maxY {
			maxY = n.Y
		}
	}

	highlighted := make(map[string]bool)
	for _, id := range g.HighlightedSet() {
		highlighted[id] = true
	}

	place := func(n model.NetNode) (float64, float64) {
		return padding + n.X*scale, padding + headerHeight + n.Y*scale
	}

	out := graphLayout{
		Width:  int(padding*2 + maxX*scale + nodeR*2),
		Height: int(padding*2 + headerHeight + maxY*scale + nodeR*2),
		Header: headerHeight,
	}
	if out.Width < 640 {
		out.Width = 640
	}
	if out.Height < 420 {
		out.Height = 420
	}

	pos := make(map[string][2]float64, len(nodes))
	for _, n := range nodes {
		x, y := place(n)
		pos[n.ID] = [2]float64{x, y}
		out.Nodes = append(out.Nodes, graphNode{
			ID:          n.ID,
			Label:       n.Label,
			X:           x,
			Y:           y,
			Highlighted: highlighted[n.ID],
		})
	}

	for _, e := range g.EdgesMatchingType(g.EdgeFilter()) {
		from, to := pos[e.From], pos[e.To]
		out.Edges = append(out.Edges, graphEdge{
			X1: from[0], Y1: from[1],
			X2: to[0], Y2: to[1],
			Type: e.Type,
		})
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = "Relation Graph Snapshot"
	}
	out.Summary = graphSummary{
		Title:     title,
		NodeCount: len(out.Nodes),
		EdgeCount: len(out.Edges),
		Filter:    g.EdgeFilter(),
	}
	return out
}

var edgeColors = map[model.EdgeType]color.RGBA{
	model.EdgeInfluenced: {0x6b, 0x80, 0xbf, 0xff},
	model.EdgeExtended:   {0x4c, 0xaf, 0x50, 0xff},
	model.EdgeDisputed:   {0xe5, 0x73, 0x73, 0xff},
	model.EdgeUnified:    {0xff, 0xb7, 0x4d, 0xff},
}

var (
	colorNode      = color.RGBA{0xe8, 0xea, 0xf6, 0xff}
	colorNodeFocus = color.RGBA{0xc5, 0xcb, 0xe9, 0xff}
)

func edgeColor(t model.EdgeType) color.RGBA {
	if c, ok := edgeColors[t]; ok {
		return c
	}
	return colorLane
}

const nodeRadius = 16.0

func renderGraphPNG(path string, layout graphLayout) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(layout.Width)-32, layout.Header-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawStringAnchored(layout.Summary.Title, 32, 40, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(fmt.Sprintf("nodes: %d  edges: %d  filter: %s",
		layout.Summary.NodeCount, layout.Summary.EdgeCount, layout.Summary.Filter), 32, 60, 0, 0.5)

	dc.SetLineWidth(2)
	for _, e := range layout.Edges {
		dc.SetColor(edgeColor(e.Type))
		dc.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		dc.Stroke()
	}

	for _, n := range layout.Nodes {
		fill := colorNode
		if n.Highlighted {
			fill = colorNodeFocus
		}
		dc.SetColor(fill)
		dc.DrawCircle(n.X, n.Y, nodeRadius)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.2)
		dc.DrawCircle(n.X, n.Y, nodeRadius)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(truncate(n.Label, 24), n.X, n.Y+nodeRadius+12, 0.5, 0.5)
	}

	return dc.SavePNG(path)
}

func renderGraphSVG(w io.Writer, layout graphLayout) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, layout.Width-32, int(layout.Header-24), 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	canvas.Text(32, 44, layout.Summary.Title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 64, fmt.Sprintf("nodes: %d  edges: %d  filter: %s",
		layout.Summary.NodeCount, layout.Summary.EdgeCount, layout.Summary.Filter),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))

	for _, e := range layout.Edges {
		canvas.Line(int(e.X1), int(e.Y1), int(e.X2), int(e.Y2),
			fmt.Sprintf("stroke:%s;stroke-width:2", css(edgeColor(e.Type))))
	}

	for _, n := range layout.Nodes {
		fill := colorNode
		stroke := "1.2"
		if n.Highlighted {
			fill = colorNodeFocus
			stroke = "2.4"
		}
		canvas.Circle(int(n.X), int(n.Y), int(nodeRadius),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%s", css(fill), css(colorStroke), stroke))
		canvas.Text(int(n.X), int(n.Y+nodeRadius+14), truncate(n.Label, 24),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:middle", css(colorText)))
	}

	canvas.End()
	return nil
}
