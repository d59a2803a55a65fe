// Package testutil provides deterministic course fixture generators and
// assertion helpers shared by the package tests.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/vanderheijden86/polarcraft/pkg/model"
)

// CourseFixture holds a generated course: the three record kinds plus any
// flat links, ready to feed relation.BuildStore.
type CourseFixture struct {
	Description string
	Units       []model.Unit
	Sections    []model.Section
	Demos       []model.Demo
}

// GeneratorConfig controls fixture generation.
type GeneratorConfig struct {
	Seed        int64  // random seed (0 = 42, generation stays deterministic)
	IDPrefix    string // prefix for generated ids (default "t")
	BaseYear    int    // first event year (default 1669)
	Tracks      []string
	Relevances  []model.Relevance
	LinksPerMax int // max event links per section/demo (default 3)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:        42,
		IDPrefix:    "t",
		BaseYear:    1669,
		Tracks:      []string{"polarization", "optics", "electromagnetism"},
		Relevances:  []model.Relevance{model.RelevancePrimary, model.RelevanceSecondary},
		LinksPerMax: 3,
	}
}

// Generator creates deterministic course fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "t"
	}
	if cfg.BaseYear == 0 {
		cfg.BaseYear = 1669
	}
	if len(cfg.Tracks) == 0 {
		cfg.Tracks = []string{"polarization"}
	}
	if len(cfg.Relevances) == 0 {
		cfg.Relevances = []model.Relevance{model.RelevancePrimary}
	}
	if cfg.LinksPerMax <= 0 {
		cfg.LinksPerMax = 3
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Course generates a course with the given shape: units, each holding
// sectionsPer sections and demosPer demos. Every section and demo carries
// between one and LinksPerMax event links drawn from a shared pool, so
// events overlap across leaves the way real curriculum data does.
func (g *Generator) Course(units, sectionsPer, demosPer int) CourseFixture {
	fx := CourseFixture{
		Description: fmt.Sprintf("%d units x %d sections x %d demos", units, sectionsPer, demosPer),
	}

	for u := 0; u < units; u++ {
		unitID := fmt.Sprintf("%s-u%d", g.cfg.IDPrefix, u)
		unit := model.Unit{
			ID:      unitID,
			Ordinal: u + 1,
			Title:   fmt.Sprintf("Unit %d", u+1),
		}

		for s := 0; s < sectionsPer; s++ {
			sectionID := fmt.Sprintf("%s-u%d-s%d", g.cfg.IDPrefix, u, s)
			section := model.Section{
				ID:     sectionID,
				UnitID: unitID,
				Title:  fmt.Sprintf("Section %d.%d", u+1, s+1),
				Events: g.links(),
			}
			unit.Sections = append(unit.Sections, sectionID)
			fx.Sections = append(fx.Sections, section)
		}

		for d := 0; d < demosPer; d++ {
			demoID := fmt.Sprintf("%s-u%d-d%d", g.cfg.IDPrefix, u, d)
			fx.Demos = append(fx.Demos, model.Demo{
				ID:     demoID,
				UnitID: unitID,
				Title:  fmt.Sprintf("Demo %d.%d", u+1, d+1),
				Engine: "malus",
				Events: g.links(),
			})
		}

		fx.Units = append(fx.Units, unit)
	}

	// Attach each demo to one section of its unit so demo lookups through
	// sections have something to find.
	if sectionsPer > 0 {
		for i := range fx.Demos {
			d := &fx.Demos[i]
			for j := range fx.Sections {
				s := &fx.Sections[j]
				if s.UnitID == d.UnitID {
					s.Demos = append(s.Demos, d.ID)
					break
				}
			}
		}
	}

	return fx
}

func (g *Generator) links() []model.EventLink {
	n := g.rng.Intn(g.cfg.LinksPerMax) + 1
	out := make([]model.EventLink, 0, n)
	seen := make(map[model.EventKey]bool, n)
	for len(out) < n {
		link := model.EventLink{
			Year:      g.cfg.BaseYear + g.rng.Intn(12)*15,
			Track:     g.cfg.Tracks[g.rng.Intn(len(g.cfg.Tracks))],
			Relevance: g.cfg.Relevances[g.rng.Intn(len(g.cfg.Relevances))],
		}
		if seen[link.Key()] {
			continue
		}
		seen[link.Key()] = true
		out = append(out, link)
	}
	return out
}

// TinyCourse returns the hand-built fixture most store tests use: one unit
// with one section and one demo, the demo linked to a primary 1808 event and
// the section itself to a secondary 1669 event.
func TinyCourse() CourseFixture {
	return CourseFixture{
		Description: "single unit, one section, one demo",
		Units: []model.Unit{
			{ID: "u1", Ordinal: 1, Title: "Polarization Basics", Sections: []string{"s1"}},
		},
		Sections: []model.Section{
			{
				ID: "s1", UnitID: "u1", Title: "Malus and His Law",
				Demos: []string{"d1"},
				Events: []model.EventLink{
					{Year: 1669, Track: "polarization", Relevance: model.RelevanceSecondary},
				},
			},
		},
		Demos: []model.Demo{
			{
				ID: "d1", UnitID: "u1", Title: "Crossed Polarizers", Engine: "malus",
				Events: []model.EventLink{
					{Year: 1808, Track: "polarization", Relevance: model.RelevancePrimary},
				},
			},
		},
	}
}

// TwoSectionCourse returns one unit with two sections sharing no demos, for
// partial/full selection transitions.
func TwoSectionCourse() CourseFixture {
	return CourseFixture{
		Description: "single unit, two sections",
		Units: []model.Unit{
			{ID: "u1", Ordinal: 1, Title: "Waves", Sections: []string{"s1", "s2"}},
		},
		Sections: []model.Section{
			{
				ID: "s1", UnitID: "u1", Title: "Transverse Waves",
				Events: []model.EventLink{
					{Year: 1816, Track: "optics", Relevance: model.RelevancePrimary},
				},
			},
			{
				ID: "s2", UnitID: "u1", Title: "Double Refraction",
				Events: []model.EventLink{
					{Year: 1669, Track: "polarization", Relevance: model.RelevancePrimary},
					{Year: 1816, Track: "optics", Relevance: model.RelevanceSecondary},
				},
			},
		},
	}
}
