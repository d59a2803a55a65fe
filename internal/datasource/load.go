package datasource

import (
	"fmt"

	"github.com/vanderheijden86/polarcraft/pkg/loader"
)

// LoadCourse performs smart multi-source detection and loading. It discovers
// the available sources (SQLite, JSON), validates them, selects the freshest
// valid source, and loads the course document from it. SQLite is preferred
// over JSON at comparable freshness since the database reflects the editor's
// most recent state.
//
// Falls back to plain JSON loading via loader.LoadCourse if smart detection
// finds no valid sources.
func LoadCourse(repoPath string) (loader.CourseDocument, error) {
	contentDir, err := loader.GetContentDir(repoPath)
	if err != nil {
		return loader.CourseDocument{}, err
	}

	doc, smartErr := loadSmart(contentDir, repoPath)
	if smartErr == nil {
		return doc, nil
	}

	return loader.LoadCourse(repoPath)
}

// LoadCourseFromDir performs smart source detection within a known content
// directory. Useful when the caller already resolved the path.
func LoadCourseFromDir(contentDir string) (loader.CourseDocument, error) {
	doc, smartErr := loadSmart(contentDir, "")
	if smartErr == nil {
		return doc, nil
	}

	path, err := loader.FindCoursePath(contentDir)
	if err != nil {
		return loader.CourseDocument{}, err
	}
	return loader.LoadCourseFromFile(path)
}

// loadSmart discovers sources, validates, selects the best, and loads from it.
func loadSmart(contentDir, repoPath string) (loader.CourseDocument, error) {
	sources, err := DiscoverSources(DiscoveryOptions{
		ContentDir:             contentDir,
		RepoPath:               repoPath,
		ValidateAfterDiscovery: true,
		IncludeInvalid:         false,
	})
	if err != nil {
		return loader.CourseDocument{}, err
	}
	if len(sources) == 0 {
		return loader.CourseDocument{}, fmt.Errorf("no valid sources discovered")
	}

	best, err := SelectBestSource(sources)
	if err != nil {
		return loader.CourseDocument{}, err
	}

	return LoadFromSource(best)
}

// LoadFromSource loads the course document from a specific DataSource,
// dispatching to the appropriate reader based on source type.
func LoadFromSource(source DataSource) (loader.CourseDocument, error) {
	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return loader.CourseDocument{}, fmt.Errorf("failed to open SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()
		return reader.LoadCourse()

	case SourceTypeJSON:
		return loader.LoadCourseFromFile(source.Path)

	default:
		return loader.CourseDocument{}, fmt.Errorf("unsupported source type: %s", source.Type)
	}
}
