package generator

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/arcanaland/cardgen/internal/canvas"
	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/deck"
	"github.com/arcanaland/cardgen/internal/raster"
	"github.com/arcanaland/cardgen/internal/render"
)

// fakeRasterizer records conversions and writes a placeholder PNG.
type fakeRasterizer struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeRasterizer) Rasterize(src, dst string) error {
	f.mu.Lock()
	f.calls = append(f.calls, src)
	f.mu.Unlock()

	if _, err := os.Stat(src); err != nil {
		return err
	}
	base := filepath.Base(dst)
	if f.fail[base] {
		return &raster.ConversionError{Src: src, Dst: dst, Err: fmt.Errorf("injected failure")}
	}
	return os.WriteFile(dst, []byte("png"), 0644)
}

func newRenderer() *render.Renderer {
	return render.New(render.DefaultSpec(), render.DefaultPalette())
}

func TestRunSequential(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeRasterizer{}
	report, err := New(newRenderer(), fake, dir).Run(deck.Standard())
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Results) != 54 {
		t.Fatalf("got %d results, want 54", len(report.Results))
	}
	if len(fake.calls) != 54 {
		t.Errorf("rasterizer called %d times, want 54", len(fake.calls))
	}
	for _, res := range report.Results {
		for _, p := range []string{res.SVG, res.PNG} {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("%s: %v", res.Entry.ID, err)
			}
		}
	}
	if report.Manifest != filepath.Join(dir, deck.ManifestFile) {
		t.Errorf("manifest = %q", report.Manifest)
	}
	d, err := deck.LoadDeck(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(d.Entries()); n != 54 {
		t.Errorf("manifest lists %d entries, want 54", n)
	}
}

func TestRunSequentialStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeRasterizer{fail: map[string]bool{"7_hearts.png": true, "K_spades.png": true}}
	report, err := New(newRenderer(), fake, dir).Run(deck.Standard())

	var ce *CardError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CardError", err)
	}
	if ce.Card != "7_hearts" || ce.Stage != StageRasterize || ce.File != filepath.Join(dir, "7_hearts.png") {
		t.Errorf("CardError = %+v", ce)
	}
	var conv *raster.ConversionError
	if !errors.As(err, &conv) {
		t.Errorf("error does not unwrap to *raster.ConversionError: %v", err)
	}
	if len(report.Results) != 6 {
		t.Errorf("got %d results before the failure, want 6", len(report.Results))
	}
	if len(fake.calls) != 7 {
		t.Errorf("rasterizer called %d times, want 7", len(fake.calls))
	}
	if _, err := os.Stat(filepath.Join(dir, deck.ManifestFile)); !os.IsNotExist(err) {
		t.Error("manifest written after a failure")
	}
}

func TestRunPoolJoinsFailures(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeRasterizer{fail: map[string]bool{"7_hearts.png": true, "K_spades.png": true}}
	report, err := New(newRenderer(), fake, dir, WithWorkers(4)).Run(deck.Standard())
	if err == nil {
		t.Fatal("Run succeeded")
	}

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("error %T is not a joined error", err)
	}
	failed := make(map[string]bool)
	for _, e := range joined.Unwrap() {
		var ce *CardError
		if !errors.As(e, &ce) {
			t.Errorf("error %v is not a *CardError", e)
			continue
		}
		failed[ce.Card] = true
	}
	if len(failed) != 2 || !failed["7_hearts"] || !failed["K_spades"] {
		t.Errorf("failed cards = %v", failed)
	}
	if errs := joined.Unwrap(); len(errs) == 2 && !strings.HasPrefix(errs[0].Error(), "7_hearts") {
		t.Errorf("failures not in deck order: %v", err)
	}

	if len(fake.calls) != 54 {
		t.Errorf("rasterizer called %d times, want 54", len(fake.calls))
	}
	if len(report.Results) != 52 {
		t.Errorf("got %d results, want 52", len(report.Results))
	}
	for i := 1; i < len(report.Results); i++ {
		if report.Results[i].Entry.ID == report.Results[i-1].Entry.ID {
			t.Errorf("duplicate result %s", report.Results[i].Entry.ID)
		}
	}
	if report.Results[0].Entry.ID != "A_hearts" || report.Results[51].Entry.ID != "back" {
		t.Errorf("results out of deck order")
	}
}

func TestRunPoolErrorStable(t *testing.T) {
	fail := map[string]bool{"2_hearts.png": true, "Q_diamonds.png": true, "joker.png": true, "back.png": true}
	dir := t.TempDir()
	var first string
	for i := range 5 {
		_, err := New(newRenderer(), &fakeRasterizer{fail: fail}, dir, WithWorkers(8)).Run(deck.Standard())
		if err == nil {
			t.Fatal("Run succeeded")
		}
		if i == 0 {
			first = err.Error()
		} else if err.Error() != first {
			t.Fatalf("run %d error differs:\n%s\nwant:\n%s", i, err, first)
		}
	}
	for _, card := range []string{"2_hearts", "Q_diamonds", "joker", "back"} {
		if !strings.Contains(first, card) {
			t.Errorf("error lacks %s: %s", card, first)
		}
	}
	if strings.Index(first, "2_hearts") > strings.Index(first, "back") {
		t.Errorf("failures not in deck order: %s", first)
	}
}

func TestGenerateRenderFailure(t *testing.T) {
	g := New(newRenderer(), &fakeRasterizer{}, t.TempDir())
	_, err := g.Generate(deck.Entry{ID: "bad", Identity: card.Identity{Rank: card.Joker, Suit: card.Clubs}})

	var ce *CardError
	if !errors.As(err, &ce) || ce.Stage != StageRender {
		t.Fatalf("error = %v, want render CardError", err)
	}
	if !errors.Is(err, card.ErrUnknownIdentity) {
		t.Errorf("error does not unwrap to ErrUnknownIdentity: %v", err)
	}
}

func TestGenerateSaveFailure(t *testing.T) {
	fake := &fakeRasterizer{}
	g := New(newRenderer(), fake, filepath.Join(t.TempDir(), "missing"))
	_, err := g.Generate(deck.Standard()[0])

	var ce *CardError
	if !errors.As(err, &ce) || ce.Stage != StageSave {
		t.Fatalf("error = %v, want save CardError", err)
	}
	var we *canvas.WriteError
	if !errors.As(err, &we) {
		t.Errorf("error does not unwrap to *canvas.WriteError: %v", err)
	}
	if len(fake.calls) != 0 {
		t.Error("rasterizer called after a failed save")
	}
}

func TestRunDeterministic(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	for _, dir := range []string{a, b} {
		if _, err := New(newRenderer(), &fakeRasterizer{}, dir, WithWorkers(3)).Run(deck.Standard()); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range deck.Standard() {
		x, err := os.ReadFile(filepath.Join(a, e.ID+".svg"))
		if err != nil {
			t.Fatal(err)
		}
		y, err := os.ReadFile(filepath.Join(b, e.ID+".svg"))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(x, y) {
			t.Errorf("%s differs between runs", e.ID)
		}
	}
}

func TestGenerateWithRasterizer(t *testing.T) {
	if testing.Short() {
		t.Skip("rasterizes with gg")
	}
	dir := t.TempDir()
	rz, err := raster.New(raster.WithScale(0.5))
	if err != nil {
		t.Fatal(err)
	}
	entries := []deck.Entry{deck.Standard()[0], deck.Standard()[52], deck.Standard()[53]}
	report, err := New(newRenderer(), rz, dir, WithWorkers(2)).Run(entries)
	if err != nil {
		t.Fatal(err)
	}
	for _, res := range report.Results {
		if fi, err := os.Stat(res.PNG); err != nil || fi.Size() == 0 {
			t.Errorf("%s: missing PNG (%v)", res.Entry.ID, err)
		}
	}
	m, err := deck.ReadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Deck.Width != 150 || m.Deck.Height != 200 {
		t.Errorf("manifest size = %dx%d, want 150x200", m.Deck.Width, m.Deck.Height)
	}
}
