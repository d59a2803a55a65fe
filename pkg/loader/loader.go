// Package loader reads the authored course content files: the course
// document (units, sections, demos, event links), the timeline events, and
// the relation graphs. The loader only decodes; relational integrity is
// validated by relation.BuildStore.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/polarcraft/pkg/metrics"
	"github.com/vanderheijden86/polarcraft/pkg/model"
	"github.com/vanderheijden86/polarcraft/pkg/relation"
)

// ContentDirEnvVar is the name of the environment variable for a custom
// content directory.
const ContentDirEnvVar = "PC_CONTENT_DIR"

// PreferredCourseNames defines the priority order for course content files.
var PreferredCourseNames = []string{"course.json", "content.json"}

// Well-known sibling files inside the content directory.
const (
	TimelineFileName = "timeline.json"
	GraphsFileName   = "graphs.json"
)

// CourseDocument is the decoded form of a course content file.
type CourseDocument struct {
	Units    []model.Unit         `json:"units"`
	Sections []model.Section      `json:"sections"`
	Demos    []model.Demo         `json:"demos"`
	Links    []relation.OwnedLink `json:"links,omitempty"`
}

// GraphDocument is one named relation graph (scientists, concepts).
type GraphDocument struct {
	Nodes []model.NetNode `json:"nodes"`
	Edges []model.NetEdge `json:"edges"`
}

// GetContentDir returns the content directory path, respecting the
// PC_CONTENT_DIR env var. Otherwise falls back to "content" in the given
// repo path (or cwd if empty).
func GetContentDir(repoPath string) (string, error) {
	if envDir := os.Getenv(ContentDirEnvVar); envDir != "" {
		return envDir, nil
	}

	if repoPath == "" {
		var err error
		repoPath, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
	}

	return filepath.Join(repoPath, "content"), nil
}

// FindCoursePath locates the course content file in the given directory,
// preferring course.json over content.json and skipping empty files.
func FindCoursePath(contentDir string) (string, error) {
	entries, err := os.ReadDir(contentDir)
	if err != nil {
		return "", fmt.Errorf("failed to read content directory: %w", err)
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			present[e.Name()] = true
		}
	}

	for _, name := range PreferredCourseNames {
		if !present[name] {
			continue
		}
		path := filepath.Join(contentDir, name)
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return path, nil
		}
	}

	return "", fmt.Errorf("no course content file found in %s", contentDir)
}

// ParseOptions configures the behavior of ParseCourse.
type ParseOptions struct {
	// WarningHandler is called with warning messages (e.g., an entry that
	// fails its own Validate). If nil, warnings are printed to os.Stderr.
	WarningHandler func(string)
}

func (o ParseOptions) warn(msg string) {
	if o.WarningHandler != nil {
		o.WarningHandler(msg)
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
}

// LoadCourse reads the course document from the content directory.
// Respects PC_CONTENT_DIR, otherwise uses content/ in repoPath.
func LoadCourse(repoPath string) (CourseDocument, error) {
	contentDir, err := GetContentDir(repoPath)
	if err != nil {
		return CourseDocument{}, err
	}

	path, err := FindCoursePath(contentDir)
	if err != nil {
		return CourseDocument{}, err
	}

	return LoadCourseFromFile(path)
}

// LoadCourseFromFile reads a course document from a specific path.
func LoadCourseFromFile(path string) (CourseDocument, error) {
	return LoadCourseFromFileWithOptions(path, ParseOptions{})
}

// LoadCourseFromFileWithOptions reads a course document with custom options.
func LoadCourseFromFileWithOptions(path string, opts ParseOptions) (CourseDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return CourseDocument{}, fmt.Errorf("failed to open course file: %w", err)
	}
	defer file.Close()

	return ParseCourse(file, opts)
}

// ParseCourse decodes a course document from a reader. Entries that fail
// their own field validation are reported through the warning handler and
// kept; BuildStore decides what is fatal.
func ParseCourse(r io.Reader, opts ParseOptions) (CourseDocument, error) {
	defer metrics.Timer(metrics.ContentParse)()

	var doc CourseDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return CourseDocument{}, fmt.Errorf("failed to parse course content: %w", err)
	}

	for i := range doc.Units {
		if err := doc.Units[i].Validate(); err != nil {
			opts.warn(err.Error())
		}
	}
	for i := range doc.Sections {
		if err := doc.Sections[i].Validate(); err != nil {
			opts.warn(err.Error())
		}
	}
	for i := range doc.Demos {
		if err := doc.Demos[i].Validate(); err != nil {
			opts.warn(err.Error())
		}
	}

	return doc, nil
}

// BuildStore validates the document and builds the relation store from it.
func (doc CourseDocument) BuildStore() (*relation.Store, error) {
	return relation.BuildStore(doc.Units, doc.Sections, doc.Demos, doc.Links)
}

// LoadEvents reads the timeline events from the content directory. A
// missing timeline file is not an error: the navigator works without event
// titles, it just renders bare keys.
func LoadEvents(contentDir string) ([]model.Event, error) {
	path := filepath.Join(contentDir, TimelineFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read timeline file: %w", err)
	}

	var doc struct {
		Events []model.Event `json:"events"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse timeline file: %w", err)
	}
	return doc.Events, nil
}

// LoadGraphs reads the named relation graphs from the content directory.
// A missing graphs file yields an empty map.
func LoadGraphs(contentDir string) (map[string]GraphDocument, error) {
	path := filepath.Join(contentDir, GraphsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]GraphDocument{}, nil
		}
		return nil, fmt.Errorf("failed to read graphs file: %w", err)
	}

	graphs := make(map[string]GraphDocument)
	if err := json.Unmarshal(data, &graphs); err != nil {
		return nil, fmt.Errorf("failed to parse graphs file: %w", err)
	}
	return graphs, nil
}

// EventCatalog indexes timeline events by key for display lookups.
type EventCatalog map[model.EventKey]model.Event

// NewEventCatalog builds a catalog from loaded events. Later duplicates of
// the same (year, track) win, matching authoring expectations.
func NewEventCatalog(events []model.Event) EventCatalog {
	catalog := make(EventCatalog, len(events))
	for _, e := range events {
		catalog[e.Key()] = e
	}
	return catalog
}

// Title returns the display title for an event key, falling back to the
// bare "year/track" form when the timeline doesn't know the key.
func (c EventCatalog) Title(key model.EventKey) string {
	if e, ok := c[key]; ok {
		return e.Title
	}
	return key.String()
}
