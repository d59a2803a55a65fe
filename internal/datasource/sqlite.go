package datasource

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/polarcraft/pkg/loader"
	"github.com/vanderheijden86/polarcraft/pkg/metrics"
	"github.com/vanderheijden86/polarcraft/pkg/model"
	"github.com/vanderheijden86/polarcraft/pkg/relation"
)

// SQLiteReader provides read access to a course content SQLite database.
//
// Expected schema: units(id, ordinal, title), sections(id, unit_id, title,
// description, position), section_demos(section_id, demo_id, position),
// demos(id, unit_id, title, description, engine), and
// event_links(owner_id, year, track, relevance, position).
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CountUnits returns the number of units in the database. Used by source
// validation as a cheap structural sanity check.
func (r *SQLiteReader) CountUnits() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM units`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting units: %w", err)
	}
	return count, nil
}

// LoadCourse reads the full course document from the database.
func (r *SQLiteReader) LoadCourse() (loader.CourseDocument, error) {
	defer metrics.Timer(metrics.SQLiteLoad)()

	var doc loader.CourseDocument

	units, err := r.loadUnits()
	if err != nil {
		return doc, err
	}
	sections, err := r.loadSections()
	if err != nil {
		return doc, err
	}
	demos, err := r.loadDemos()
	if err != nil {
		return doc, err
	}
	links, err := r.loadLinks()
	if err != nil {
		return doc, err
	}

	doc.Units = units
	doc.Sections = sections
	doc.Demos = demos
	doc.Links = links
	return doc, nil
}

func (r *SQLiteReader) loadUnits() ([]model.Unit, error) {
	rows, err := r.db.Query(`SELECT id, ordinal, title FROM units ORDER BY ordinal, id`)
	if err != nil {
		return nil, fmt.Errorf("querying units: %w", err)
	}
	defer rows.Close()

	var units []model.Unit
	for rows.Next() {
		var u model.Unit
		var title sql.NullString
		if err := rows.Scan(&u.ID, &u.Ordinal, &title); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		u.Title = title.String
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *SQLiteReader) loadSections() ([]model.Section, error) {
	rows, err := r.db.Query(`SELECT id, unit_id, title, description FROM sections ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var sections []model.Section
	index := make(map[string]int)
	for rows.Next() {
		var s model.Section
		var title, description sql.NullString
		if err := rows.Scan(&s.ID, &s.UnitID, &title, &description); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		s.Title = title.String
		s.Description = description.String
		index[s.ID] = len(sections)
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	demoRows, err := r.db.Query(`SELECT section_id, demo_id FROM section_demos ORDER BY position, demo_id`)
	if err != nil {
		return nil, fmt.Errorf("querying section demos: %w", err)
	}
	defer demoRows.Close()

	for demoRows.Next() {
		var sectionID, demoID string
		if err := demoRows.Scan(&sectionID, &demoID); err != nil {
			return nil, fmt.Errorf("scanning section demo: %w", err)
		}
		if i, ok := index[sectionID]; ok {
			sections[i].Demos = append(sections[i].Demos, demoID)
		}
	}
	return sections, demoRows.Err()
}

func (r *SQLiteReader) loadDemos() ([]model.Demo, error) {
	rows, err := r.db.Query(`SELECT id, unit_id, title, description, engine FROM demos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying demos: %w", err)
	}
	defer rows.Close()

	var demos []model.Demo
	for rows.Next() {
		var d model.Demo
		var title, description, engine sql.NullString
		if err := rows.Scan(&d.ID, &d.UnitID, &title, &description, &engine); err != nil {
			return nil, fmt.Errorf("scanning demo: %w", err)
		}
		d.Title = title.String
		d.Description = description.String
		d.Engine = engine.String
		demos = append(demos, d)
	}
	return demos, rows.Err()
}

func (r *SQLiteReader) loadLinks() ([]relation.OwnedLink, error) {
	rows, err := r.db.Query(`SELECT owner_id, year, track, relevance FROM event_links ORDER BY position, year`)
	if err != nil {
		return nil, fmt.Errorf("querying event links: %w", err)
	}
	defer rows.Close()

	var links []relation.OwnedLink
	for rows.Next() {
		var ol relation.OwnedLink
		var relevance sql.NullString
		if err := rows.Scan(&ol.OwnerID, &ol.Link.Year, &ol.Link.Track, &relevance); err != nil {
			return nil, fmt.Errorf("scanning event link: %w", err)
		}
		ol.Link.Relevance = model.Relevance(relevance.String)
		links = append(links, ol)
	}
	return links, rows.Err()
}
