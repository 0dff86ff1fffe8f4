// Package generator drives rendering, saving and rasterizing a deck.
package generator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/arcanaland/cardgen/internal/canvas"
	"github.com/arcanaland/cardgen/internal/deck"
	"github.com/arcanaland/cardgen/internal/render"
)

// Rasterizer converts the SVG file src into the PNG file dst.
type Rasterizer interface {
	Rasterize(src, dst string) error
}

// Stage names the step of card generation that failed.
type Stage string

const (
	StageRender    Stage = "render"
	StageSave      Stage = "save"
	StageRasterize Stage = "rasterize"
)

// CardError reports a failure to generate one entry.
type CardError struct {
	Card  string
	Stage Stage
	File  string
	Err   error
}

func (e *CardError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s: %v", e.Card, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Card, e.Stage, e.File, e.Err)
}

func (e *CardError) Unwrap() error { return e.Err }

// Result lists the files written for one entry.
type Result struct {
	Entry deck.Entry
	SVG   string
	PNG   string
}

// Report summarizes a run.
type Report struct {
	Results  []Result
	Manifest string
}

// Generator writes deck images into an output directory.
type Generator struct {
	renderer   *render.Renderer
	rasterizer Rasterizer
	outDir     string
	workers    int
	logger     *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers sets the number of cards generated concurrently.
// Values below one are treated as one.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n < 1 {
			n = 1
		}
		g.workers = n
	}
}

// WithLogger sets the logger for progress output.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New returns a generator writing into outDir.
func New(r *render.Renderer, rz Rasterizer, outDir string, opts ...Option) *Generator {
	g := &Generator{
		renderer:   r,
		rasterizer: rz,
		outDir:     outDir,
		workers:    1,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate renders e, saves its SVG and rasterizes it to PNG.
func (g *Generator) Generate(e deck.Entry) (Result, error) {
	var doc *canvas.Document
	if e.Back {
		doc = g.renderer.Back()
	} else {
		var err error
		doc, err = g.renderer.Face(e.Identity)
		if err != nil {
			return Result{}, &CardError{Card: e.ID, Stage: StageRender, Err: err}
		}
	}

	res := Result{
		Entry: e,
		SVG:   filepath.Join(g.outDir, e.ID+".svg"),
		PNG:   filepath.Join(g.outDir, e.ID+".png"),
	}
	if err := doc.Save(res.SVG); err != nil {
		return Result{}, &CardError{Card: e.ID, Stage: StageSave, File: res.SVG, Err: err}
	}
	if err := g.rasterizer.Rasterize(res.SVG, res.PNG); err != nil {
		return Result{}, &CardError{Card: e.ID, Stage: StageRasterize, File: res.PNG, Err: err}
	}
	g.logger.Debug("generated card", "card", e.ID, "svg", res.SVG, "png", res.PNG)
	return res, nil
}

// Run generates every entry and writes the deck manifest. With one worker
// it stops at the first failure; otherwise every entry is attempted and the
// failures are joined. The manifest is only written when all entries
// succeed.
func (g *Generator) Run(entries []deck.Entry) (Report, error) {
	if err := os.MkdirAll(g.outDir, 0755); err != nil {
		return Report{}, fmt.Errorf("error creating output directory: %w", err)
	}

	var (
		results []Result
		err     error
	)
	if g.workers == 1 {
		results, err = g.runSequential(entries)
	} else {
		results, err = g.runPool(entries)
	}
	if err != nil {
		return Report{Results: results}, err
	}

	spec := g.renderer.Spec()
	w, h := spec.Width, spec.Height
	if s, ok := g.rasterizer.(interface{ Scale() float64 }); ok {
		w, h = scaled(w, s.Scale()), scaled(h, s.Scale())
	}
	if err := deck.WriteManifest(g.outDir, deck.NewManifest(entries, w, h)); err != nil {
		return Report{Results: results}, err
	}
	report := Report{Results: results, Manifest: filepath.Join(g.outDir, deck.ManifestFile)}
	g.logger.Info("generated deck", "cards", len(results), "dir", g.outDir)
	return report, nil
}

func (g *Generator) runSequential(entries []deck.Entry) ([]Result, error) {
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		res, err := g.Generate(e)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (g *Generator) runPool(entries []deck.Entry) ([]Result, error) {
	type job struct {
		i int
		e deck.Entry
	}
	jobs := make(chan job)

	var (
		mu      sync.Mutex
		results = make([]Result, len(entries))
		errs    = make([]error, len(entries))
		ok      = make([]bool, len(entries))
		wg      sync.WaitGroup
	)
	for range g.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := g.Generate(j.e)
				mu.Lock()
				if err != nil {
					errs[j.i] = err
				} else {
					results[j.i], ok[j.i] = res, true
				}
				mu.Unlock()
			}
		}()
	}
	for i, e := range entries {
		jobs <- job{i, e}
	}
	close(jobs)
	wg.Wait()

	// results and errors keep deck order regardless of completion order
	done := results[:0]
	for i, res := range results {
		if ok[i] {
			done = append(done, res)
		}
	}
	return done, errors.Join(errs...)
}

func scaled(v int, s float64) int {
	return int(float64(v)*s + 0.5)
}
