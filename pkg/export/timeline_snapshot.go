// Package export renders static snapshots of the filtered timeline and the
// relation graphs to SVG or PNG for embedding in course notes.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/polarcraft/pkg/metrics"
	"github.com/vanderheijden86/polarcraft/pkg/model"
)

// TimelineSnapshotOptions controls timeline snapshot export behaviour.
type TimelineSnapshotOptions struct {
	Path    string                  // Output path; format inferred from extension when Format empty
	Format  string                  // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title   string                  // Optional title rendered in the summary block
	Events  []model.Event           // Events to render (already filtered by the selection)
	Primary map[model.EventKey]bool // Events linked with primary relevance get the emphasized style
}

// SaveTimelineSnapshot renders the filtered timeline as lanes per track with
// years on the horizontal axis. Primary-linked events render filled, the
// rest outlined.
func SaveTimelineSnapshot(opts TimelineSnapshotOptions) error {
	defer metrics.Timer(metrics.SnapshotRender)()

	if len(opts.Events) == 0 {
		return fmt.Errorf("no events to export")
	}

	format, path, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return err
	}
	opts.Path = path

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	layout := buildTimelineLayout(opts)

	switch format {
	case "svg":
		file, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer file.Close()
		return renderTimelineSVG(file, layout)
	case "png":
		return renderTimelinePNG(opts.Path, layout)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// resolveFormat normalizes the requested format, inferring it from the path
// extension when empty and appending a default extension when the path has
// none.
func resolveFormat(format, path string) (string, string, error) {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	if f == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".svg":
			f = "svg"
		case ".png":
			f = "png"
		default:
			f = "svg"
			if path != "" && filepath.Ext(path) == "" {
				path += ".svg"
			}
		}
	}
	if f != "svg" && f != "png" {
		return "", "", fmt.Errorf("unsupported format %q (want svg or png)", f)
	}
	if path == "" {
		return "", "", fmt.Errorf("output path is required")
	}
	return f, path, nil
}

// --- layout computation ------------------------------------------------------

type timelineMark struct {
	Event   model.Event
	Primary bool
	X, Y    float64
}

type timelineLane struct {
	Track string
	Y     float64
}

type timelineLayout struct {
	Marks   []timelineMark
	Lanes   []timelineLane
	Ticks   []timelineTick
	Width   int
	Height  int
	Header  float64
	Summary timelineSummary
}

type timelineTick struct {
	Year int
	X    float64
}

type timelineSummary struct {
	Title      string
	EventCount int
	TrackCount int
	FirstYear  int
	LastYear   int
}

func buildTimelineLayout(opts TimelineSnapshotOptions) timelineLayout {
	const (
		padding      = 36.0
		headerHeight = 96.0
		laneHeight   = 56.0
		laneLabelW   = 170.0
		yearSpan     = 720.0
	)

	events := make([]model.Event, len(opts.Events))
	copy(events, opts.Events)
	sort.Slice(events, func(i, j int) bool { return events[i].Key().Less(events[j].Key()) })

	minYear, maxYear := events[0].Year, events[0].Year
	trackSet := make(map[string]bool)
	for _, e := range events {
		if e.Year < minYear {
			minYear = e.Year
		}
		if e.Year > maxYear {
			maxYear = e.Year
		}
		trackSet[e.Track] = true
	}

	tracks := make([]string, 0, len(trackSet))
	for tr := range trackSet {
		tracks = append(tracks, tr)
	}
	sort.Strings(tracks)

	span := maxYear - minYear
	if span == 0 {
		span = 1
	}
	xOf := func(year int) float64 {
		return padding + laneLabelW + yearSpan*float64(year-minYear)/float64(span)
	}

	laneY := make(map[string]float64, len(tracks))
	lanes := make([]timelineLane, 0, len(tracks))
	for i, tr := range tracks {
		y := padding + headerHeight + laneHeight*float64(i) + laneHeight/2
		laneY[tr] = y
		lanes = append(lanes, timelineLane{Track: tr, Y: y})
	}

	marks := make([]timelineMark, 0, len(events))
	for _, e := range events {
		marks = append(marks, timelineMark{
			Event:   e,
			Primary: opts.Primary[e.Key()],
			X:       xOf(e.Year),
			Y:       laneY[e.Track],
		})
	}

	// Axis ticks at the span endpoints plus up to three interior marks.
	tickYears := []int{minYear, maxYear}
	if span > 2 {
		for _, frac := range []float64{0.25, 0.5, 0.75} {
			tickYears = append(tickYears, minYear+int(frac*float64(span)))
		}
	}
	sort.Ints(tickYears)
	ticks := make([]timelineTick, 0, len(tickYears))
	var lastTick int
	for i, y := range tickYears {
		if i > 0 && y == lastTick {
			continue
		}
		lastTick = y
		ticks = append(ticks, timelineTick{Year: y, X: xOf(y)})
	}

	width := int(padding*2 + laneLabelW + yearSpan)
	height := int(padding*2 + headerHeight + laneHeight*float64(len(tracks)) + 40)
	if height < 320 {
		height = 320
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = "Timeline Snapshot"
	}

	return timelineLayout{
		Marks:  marks,
		Lanes:  lanes,
		Ticks:  ticks,
		Width:  width,
		Height: height,
		Header: headerHeight,
		Summary: timelineSummary{
			Title:      title,
			EventCount: len(events),
			TrackCount: len(tracks),
			FirstYear:  minYear,
			LastYear:   maxYear,
		},
	}
}

// --- rendering ----------------------------------------------------------------

var (
	colorPrimary   = color.RGBA{0x3f, 0x51, 0xb5, 0xff}
	colorSecondary = color.RGBA{0x90, 0x9c, 0xc8, 0xff}
	colorLane      = color.RGBA{0xd4, 0xd8, 0xe2, 0xff}
	colorStroke    = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorText      = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorBackdrop  = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG  = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
)

const markR = 9.0

func renderTimelinePNG(path string, layout timelineLayout) error {
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
	dc.DrawStringAnchored(fmt.Sprintf("events: %d  tracks: %d  span: %d-%d",
		layout.Summary.EventCount, layout.Summary.TrackCount,
		layout.Summary.FirstYear, layout.Summary.LastYear), 32, 60, 0, 0.5)

	// lanes
	for _, lane := range layout.Lanes {
		dc.SetColor(colorLane)
		dc.SetLineWidth(2)
		dc.DrawLine(200, lane.Y, float64(layout.Width)-36, lane.Y)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(lane.Track, 36, lane.Y, 0, 0.5)
	}

	// axis ticks below the last lane
	axisY := float64(layout.Height) - 28
	dc.SetColor(colorSubtle)
	for _, tick := range layout.Ticks {
		dc.DrawStringAnchored(fmt.Sprintf("%d", tick.Year), tick.X, axisY, 0.5, 0.5)
	}

	// marks
	for _, m := range layout.Marks {
		if m.Primary {
			dc.SetColor(colorPrimary)
			dc.DrawCircle(m.X, m.Y, markR)
			dc.Fill()
		} else {
			dc.SetColor(colorSecondary)
			dc.DrawCircle(m.X, m.Y, markR)
			dc.Fill()
			dc.SetColor(colorBackdrop)
			dc.DrawCircle(m.X, m.Y, markR-3)
			dc.Fill()
		}
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1)
		dc.DrawCircle(m.X, m.Y, markR)
		dc.Stroke()
	}

	return dc.SavePNG(path)
}

func renderTimelineSVG(w io.Writer, layout timelineLayout) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, layout.Width-32, int(layout.Header-24), 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	canvas.Text(32, 44, layout.Summary.Title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 64, fmt.Sprintf("events: %d  tracks: %d  span: %d-%d",
		layout.Summary.EventCount, layout.Summary.TrackCount,
		layout.Summary.FirstYear, layout.Summary.LastYear),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))

	for _, lane := range layout.Lanes {
		canvas.Line(200, int(lane.Y), layout.Width-36, int(lane.Y),
			fmt.Sprintf("stroke:%s;stroke-width:2", css(colorLane)))
		canvas.Text(36, int(lane.Y)+4, lane.Track,
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorText)))
	}

	axisY := layout.Height - 28
	for _, tick := range layout.Ticks {
		canvas.Text(int(tick.X), axisY, fmt.Sprintf("%d", tick.Year),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:middle", css(colorSubtle)))
	}

	for _, m := range layout.Marks {
		if m.Primary {
			canvas.Circle(int(m.X), int(m.Y), int(markR),
				fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorPrimary), css(colorStroke)))
		} else {
			canvas.Circle(int(m.X), int(m.Y), int(markR),
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", css(colorSecondary)))
		}
		canvas.Text(int(m.X), int(m.Y)-14, truncate(m.Event.Title, 28),
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace;text-anchor:middle", css(colorSubtle)))
	}

	canvas.End()
	return nil
}

// --- helpers -------------------------------------------------------------------

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
