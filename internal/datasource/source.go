// Package datasource provides multi-source data detection and selection for
// polarcraft. It discovers and validates course content in SQLite databases
// and JSON documents, then selects the freshest valid source.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/polarcraft/pkg/loader"
)

// SourceType identifies the type of data source
type SourceType string

const (
	// SourceTypeSQLite is a SQLite database (course.db)
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeJSON is a JSON course document
	SourceTypeJSON SourceType = "json"
)

// Priority values for source types (higher = more authoritative)
const (
	PrioritySQLite = 100
	PriorityJSON   = 50
)

// DataSource represents a potential source of course content
type DataSource struct {
	// Type identifies the source type
	Type SourceType `json:"type"`
	// Path is the absolute path to the source file
	Path string `json:"path"`
	// Priority determines preference when timestamps are equal (higher = preferred)
	Priority int `json:"priority"`
	// ModTime is the last modification time of the source
	ModTime time.Time `json:"mod_time"`
	// Valid indicates whether the source passed validation
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// UnitCount is the number of units in the source (set during validation)
	UnitCount int `json:"unit_count"`
	// Size is the file size in bytes
	Size int64 `json:"size"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, units=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.UnitCount, status)
}

// DiscoveryOptions configures source discovery behavior
type DiscoveryOptions struct {
	// ContentDir is the content directory path (optional, auto-detected if empty)
	ContentDir string
	// RepoPath is the repository root path (optional, uses cwd if empty)
	RepoPath string
	// ValidateAfterDiscovery runs validation on each discovered source
	ValidateAfterDiscovery bool
	// IncludeInvalid includes sources that failed validation in results
	IncludeInvalid bool
	// Logger receives discovery log messages when set
	Logger func(msg string)
}

// DiscoverSources finds all potential data sources in the content directory
func DiscoverSources(opts DiscoveryOptions) ([]DataSource, error) {
	logf := opts.Logger
	if logf == nil {
		logf = func(string) {}
	}

	contentDir := opts.ContentDir
	if contentDir == "" {
		var err error
		contentDir, err = loader.GetContentDir(opts.RepoPath)
		if err != nil {
			return nil, err
		}
	}
	logf(fmt.Sprintf("Discovering sources in: %s", contentDir))

	var sources []DataSource

	// SQLite database
	dbPath := filepath.Join(contentDir, "course.db")
	if info, err := os.Stat(dbPath); err == nil {
		sources = append(sources, DataSource{
			Type:     SourceTypeSQLite,
			Path:     dbPath,
			Priority: PrioritySQLite,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
		logf(fmt.Sprintf("Found SQLite: %s (mod=%s)", dbPath, info.ModTime().Format(time.RFC3339)))
	}

	// JSON course documents
	for _, name := range loader.PreferredCourseNames {
		path := filepath.Join(contentDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		sources = append(sources, DataSource{
			Type:     SourceTypeJSON,
			Path:     path,
			Priority: PriorityJSON,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
		logf(fmt.Sprintf("Found JSON: %s (mod=%s)", path, info.ModTime().Format(time.RFC3339)))
	}

	// Validate sources if requested. Sources are independent files, so they
	// validate concurrently.
	if opts.ValidateAfterDiscovery {
		var g errgroup.Group
		for i := range sources {
			g.Go(func() error {
				if err := ValidateSource(&sources[i]); err != nil {
					logf(fmt.Sprintf("Validation failed for %s: %v", sources[i].Path, err))
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	if opts.ValidateAfterDiscovery && !opts.IncludeInvalid {
		var valid []DataSource
		for _, s := range sources {
			if s.Valid {
				valid = append(valid, s)
			}
		}
		sources = valid
	}

	sort.Slice(sources, func(i, j int) bool {
		if sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})

	logf(fmt.Sprintf("Discovered %d sources", len(sources)))
	return sources, nil
}

// ValidateSource checks that a source is readable and structurally sane,
// filling in Valid, ValidationError, and UnitCount.
func ValidateSource(source *DataSource) error {
	fail := func(err error) error {
		source.Valid = false
		source.ValidationError = err.Error()
		return err
	}

	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(*source)
		if err != nil {
			return fail(err)
		}
		defer reader.Close()
		count, err := reader.CountUnits()
		if err != nil {
			return fail(err)
		}
		source.UnitCount = count

	case SourceTypeJSON:
		doc, err := loader.LoadCourseFromFile(source.Path)
		if err != nil {
			return fail(err)
		}
		source.UnitCount = len(doc.Units)

	default:
		return fail(fmt.Errorf("unknown source type: %s", source.Type))
	}

	source.Valid = true
	source.ValidationError = ""
	return nil
}

// SelectBestSource returns the preferred source: the freshest valid one,
// breaking mtime ties by priority. The input must already be sorted by
// DiscoverSources.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	for _, s := range sources {
		if s.Valid {
			return s, nil
		}
	}
	return DataSource{}, fmt.Errorf("no valid source among %d candidates", len(sources))
}
