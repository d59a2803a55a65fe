package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/polarcraft/pkg/model"
)

// AssertAllValid verifies every record in the fixture passes validation.
func AssertAllValid(t *testing.T, fx CourseFixture) {
	t.Helper()
	for _, u := range fx.Units {
		if err := u.Validate(); err != nil {
			t.Errorf("unit %s invalid: %v", u.ID, err)
		}
	}
	for _, s := range fx.Sections {
		if err := s.Validate(); err != nil {
			t.Errorf("section %s invalid: %v", s.ID, err)
		}
	}
	for _, d := range fx.Demos {
		if err := d.Validate(); err != nil {
			t.Errorf("demo %s invalid: %v", d.ID, err)
		}
	}
}

// AssertNoDuplicateIDs verifies every record id in the fixture is unique
// across all three kinds.
func AssertNoDuplicateIDs(t *testing.T, fx CourseFixture) {
	t.Helper()
	seen := make(map[string]bool)
	check := func(id string) {
		if seen[id] {
			t.Errorf("duplicate id: %s", id)
		}
		seen[id] = true
	}
	for _, u := range fx.Units {
		check(u.ID)
	}
	for _, s := range fx.Sections {
		check(s.ID)
	}
	for _, d := range fx.Demos {
		check(d.ID)
	}
}

// AssertKeysEqual compares two event key slices element by element.
func AssertKeysEqual(t *testing.T, got, want []model.EventKey) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d event keys, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

// AssertStringsEqual compares two string slices element by element.
func AssertStringsEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// AssertJSONEqual compares two values after JSON round-tripping. Useful for
// comparing structs with equivalent JSON forms.
func AssertJSONEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}
	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}
	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}

// TempContentDir creates a temp directory with a content subdirectory and
// returns the repo root. Cleaned up with the test.
func TempContentDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "content"), 0755); err != nil {
		t.Fatalf("failed to create content dir: %v", err)
	}
	return dir
}

// WriteCourseFile marshals the fixture as a course document into
// content/course.json under the repo root and returns the file path.
func WriteCourseFile(t *testing.T, repoRoot string, fx CourseFixture) string {
	t.Helper()

	doc := map[string]interface{}{
		"units":    fx.Units,
		"sections": fx.Sections,
		"demos":    fx.Demos,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal course document: %v", err)
	}

	path := filepath.Join(repoRoot, "content", "course.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write course file: %v", err)
	}
	return path
}

// Golden file helpers

// GoldenFile handles golden file comparisons. If GENERATE_GOLDEN is set in
// the environment, Assert writes the file instead of comparing.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual content against the golden file.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()

	path := g.Path()

	if g.update {
		if err := os.MkdirAll(g.dir, 0755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) != actual {
		expectedLines := strings.Split(string(expected), "\n")
		actualLines := strings.Split(actual, "\n")
		for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
			var expLine, actLine string
			if i < len(expectedLines) {
				expLine = expectedLines[i]
			}
			if i < len(actualLines) {
				actLine = actualLines[i]
			}
			if expLine != actLine {
				g.t.Errorf("golden file mismatch at line %d:\nexpected: %s\nactual:   %s", i+1, expLine, actLine)
				return
			}
		}
		g.t.Errorf("golden file mismatch (length differs)")
	}
}
