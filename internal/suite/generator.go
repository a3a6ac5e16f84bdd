// Package suite orchestrates environment synthesis across every configured
// grid size and iteration, persisting each document at its deterministic
// path inside the shared experiment tree.
package suite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kearns/gridbench/internal/config"
	"github.com/kearns/gridbench/internal/logbook"
	"github.com/kearns/gridbench/internal/playground"
	"github.com/kearns/gridbench/internal/store"
)

// ManifestName is the suite metadata document at the tree root.
const ManifestName = "manifest.json"

// Manifest records what a generation pass produced.
type Manifest struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	GridSizes []string  `json:"grid_sizes"`
	Repeat    int       `json:"repeat"`
	Skipped   int       `json:"skipped_placements"`
}

// Generator writes benchmark suites into a store.
type Generator struct {
	cfg   config.Config
	store store.Store
	synth *playground.Synthesizer
	book  *logbook.Logbook
	now   func() time.Time
	newID func() string
}

// Option customizes a Generator during construction.
type Option func(*Generator)

// WithLogbook attaches a progress log.
func WithLogbook(book *logbook.Logbook) Option {
	return func(g *Generator) { g.book = book }
}

// WithSynthesizer overrides the environment synthesizer, mainly so tests can
// seed its randomness.
func WithSynthesizer(s *playground.Synthesizer) Option {
	return func(g *Generator) {
		if s != nil {
			g.synth = s
		}
	}
}

// WithClock overrides the manifest timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		if clock != nil {
			g.now = clock
		}
	}
}

// New builds a generator over the given store.
func New(cfg config.Config, st store.Store, opts ...Option) *Generator {
	g := &Generator{
		cfg:   cfg,
		store: st,
		synth: playground.NewSynthesizer(cfg.Colors),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds one environment per grid size and iteration.
//
// Precondition, by contract: the store is fully reset first. Whatever lived
// under the root before — earlier suites, simulator results — is gone once
// this returns. No validation runs automatically; callers that want the
// artifact/target balance guaranteed call playground.Validate themselves.
func (g *Generator) Generate() (Manifest, error) {
	if err := g.store.Reset(); err != nil {
		return Manifest{}, fmt.Errorf("suite: reset tree: %w", err)
	}

	manifest := Manifest{
		RunID:     g.newID(),
		CreatedAt: g.now().UTC(),
		Repeat:    g.cfg.Repeat,
	}
	for _, grid := range g.cfg.GridSizes {
		manifest.GridSizes = append(manifest.GridSizes, grid.Key())
		for iteration := 0; iteration < g.cfg.Repeat; iteration++ {
			env, placements := g.synth.Synthesize(
				grid.Rows, grid.Cols,
				g.cfg.ArtifactRange.Low, g.cfg.ArtifactRange.High,
			)
			for _, p := range placements {
				if p.Outcome == playground.Skipped {
					manifest.Skipped++
					g.book.Warn("skipped %s placement in %s iteration %d: corners exhausted",
						p.Color, grid.Key(), iteration)
				}
			}
			doc, err := json.MarshalIndent(env, "", "  ")
			if err != nil {
				return Manifest{}, fmt.Errorf("suite: encode environment %s/%d: %w", grid.Key(), iteration, err)
			}
			path := config.EnvDocPath(grid, iteration)
			if err := g.store.Put(path, doc); err != nil {
				return Manifest{}, fmt.Errorf("suite: persist environment %s/%d: %w", grid.Key(), iteration, err)
			}
			g.book.Info("created environment %s iteration %d", grid.Key(), iteration)
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("suite: encode manifest: %w", err)
	}
	if err := g.store.Put(ManifestName, data); err != nil {
		return Manifest{}, fmt.Errorf("suite: persist manifest: %w", err)
	}
	return manifest, nil
}
