package playground

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/surface"
	"github.com/example/vibes/internal/theme"
)

type announcements struct {
	saved  []string
	copied []string
}

func (a *announcements) Save(path string)   { a.saved = append(a.saved, path) }
func (a *announcements) Copy(detail string) { a.copied = append(a.copied, detail) }

func testConfig() engine.Config {
	return engine.Config{
		Name:              "test",
		Width:             200,
		Height:            100,
		Background:        color.RGBA{255, 255, 255, 255},
		Palette:           []color.RGBA{{0, 0, 0, 255}, {255, 0, 0, 255}},
		ActivityThreshold: engine.Threshold(3),
		SegmentUnits:      1,
		StampUnits:        1,
		StampMinSpacing:   10,
		StrokeWidths:      map[engine.Tool]engine.WidthRule{engine.ToolPen: {Fixed: 4}, engine.ToolEraser: {Fixed: 8}},
		Glyphs:            []engine.Glyph{{Name: "a", Text: "A"}, {Name: "b", Text: "B"}},
		MarkerSize:        32,
		GalleryEnabled:    true,
	}
}

func newSession(t *testing.T, cfg engine.Config) (*Session, *announcements) {
	t.Helper()
	r, err := surface.NewRaster(cfg.Width, cfg.Height, cfg.Background)
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(&bytes.Buffer{})
	e, err := engine.New(cfg, r, engine.WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	a := &announcements{}
	s := New(e, r, Options{SaveDir: t.TempDir(), Announcer: a, Logger: logger, RetroTheme: &theme.Theme{Name: "retro"}})
	s.Resize(image.Pt(400, 200+statusHeight))
	return s, a
}

func press(r rune) key.Event { return key.Event{Rune: r, Direction: key.DirPress} }

func code(c key.Code) key.Event { return key.Event{Rune: -1, Code: c, Direction: key.DirPress} }

func mouseAt(x, y float32, dir mouse.Direction) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: dir}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name   string
		win    image.Point
		native image.Point
		want   engine.Box
	}{
		{"exact", image.Pt(200, 100+statusHeight), image.Pt(200, 100), engine.Box{X: 0, Y: statusHeight, Width: 200, Height: 100}},
		{"pillarbox", image.Pt(400, 100+statusHeight), image.Pt(200, 100), engine.Box{X: 100, Y: statusHeight, Width: 200, Height: 100}},
		{"shrunk", image.Pt(100, 100+statusHeight), image.Pt(200, 100), engine.Box{X: 0, Y: statusHeight + 25, Width: 100, Height: 50}},
		{"no room", image.Pt(100, statusHeight), image.Pt(200, 100), engine.Box{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Layout(tt.win, tt.native); got != tt.want {
				t.Fatalf("Layout = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInitialSizeFitsDesktop(t *testing.T) {
	got := InitialSize(image.Pt(1600, 1200))
	if got.X > maxWinWidth || got.Y > maxWinHeight {
		t.Fatalf("InitialSize = %v", got)
	}
	if got := InitialSize(image.Pt(200, 100)); got != image.Pt(200, 100+statusHeight) {
		t.Fatalf("small surface resized to %v", got)
	}
}

func TestKeysChangeSettings(t *testing.T) {
	s, _ := newSession(t, testConfig())
	e := s.Engine()
	s.Key(press('E'))
	if e.Tool() != engine.ToolEraser {
		t.Fatalf("tool = %v", e.Tool())
	}
	s.Key(press('2'))
	if e.Color() != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("color = %v", e.Color())
	}
	if s.Key(press('3')) {
		t.Fatal("key beyond palette handled")
	}
	s.Key(press(']'))
	if e.MarkerSize() != 36 {
		t.Fatalf("size = %v", e.MarkerSize())
	}
	for i := 0; i < 20; i++ {
		s.Key(press('['))
	}
	if e.MarkerSize() <= 0 {
		t.Fatalf("size shrank to %v", e.MarkerSize())
	}
	s.Key(press(' '))
	if e.Pattern() != "b" {
		t.Fatalf("pattern = %q", e.Pattern())
	}
	if s.Key(key.Event{Rune: 'p', Direction: key.DirRelease}) {
		t.Fatal("release handled")
	}
}

func TestMouseDrawsThroughLayout(t *testing.T) {
	s, _ := newSession(t, testConfig())
	s.Resize(image.Pt(400, 200+statusHeight))
	// The 200x100 surface is shown at 2x starting at (0, statusHeight).
	s.Mouse(mouseAt(20, statusHeight+100, mouse.DirPress))
	s.Mouse(mouseAt(180, statusHeight+100, mouse.DirNone))
	s.Mouse(mouseAt(180, statusHeight+100, mouse.DirRelease))
	if got := s.raster.Image().RGBAAt(50, 50); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("pixel = %v, want ink", got)
	}
	if s.Engine().Drawing() {
		t.Fatal("mark still open after release")
	}
}

func TestDraggingOffSurfaceEndsMark(t *testing.T) {
	s, _ := newSession(t, testConfig())
	s.Mouse(mouseAt(20, statusHeight+20, mouse.DirPress))
	if !s.Engine().Drawing() {
		t.Fatal("press did not start a mark")
	}
	s.Mouse(mouseAt(20, 5, mouse.DirNone))
	if s.Engine().Drawing() {
		t.Fatal("mark survived leaving the surface")
	}
	if s.Mouse(mouseAt(20, 5, mouse.DirPress)) {
		t.Fatal("press on the status bar handled")
	}
}

func TestThresholdShowsSpillAndClearRecovers(t *testing.T) {
	s, _ := newSession(t, testConfig())
	s.Mouse(mouseAt(10, statusHeight+10, mouse.DirPress))
	for x := float32(20); x < 100; x += 10 {
		s.Mouse(mouseAt(x, statusHeight+10, mouse.DirNone))
	}
	if s.Engine().State() != engine.Terminal {
		t.Fatalf("state = %v", s.Engine().State())
	}
	if !strings.Contains(s.Message(), "disabled") {
		t.Fatalf("message = %q", s.Message())
	}
	surfaceBefore := s.raster.Snapshot()

	frame := image.NewRGBA(image.Rect(0, 0, 400, 200+statusHeight))
	s.Frame(frame)
	if s.spill == nil {
		t.Fatal("no spill overlay while disabled")
	}
	if !bytes.Equal(surfaceBefore.Pix, s.raster.Image().Pix) {
		t.Fatal("overlay modified the surface")
	}

	s.Key(press('c'))
	if s.Engine().State() != engine.Idle || s.spill != nil {
		t.Fatal("clear did not recover")
	}
	if s.Engine().Gallery().Len() != 1 {
		t.Fatalf("gallery len = %d", s.Engine().Gallery().Len())
	}
}

func TestGalleryNavigation(t *testing.T) {
	s, _ := newSession(t, testConfig())
	s.Key(code(key.CodeRightArrow))
	if s.viewing || s.Message() != "gallery is empty" {
		t.Fatalf("viewing=%v message=%q", s.viewing, s.Message())
	}
	s.Key(press('c'))
	s.Key(press('c'))
	s.Key(code(key.CodeLeftArrow))
	if !s.viewing || s.galleryImg == nil {
		t.Fatal("not viewing the gallery")
	}
	s.Key(code(key.CodeLeftArrow))
	if s.Engine().Gallery().Index() != 1 {
		t.Fatalf("index = %d", s.Engine().Gallery().Index())
	}
	if !strings.Contains(s.status(), "gallery 2/2") {
		t.Fatalf("status = %q", s.status())
	}
	s.Mouse(mouseAt(20, statusHeight+20, mouse.DirPress))
	if s.viewing {
		t.Fatal("press did not return to the surface")
	}
	if s.Engine().Drawing() {
		t.Fatal("press that left the gallery started a mark")
	}
}

func TestSaveWritesPNG(t *testing.T) {
	s, a := newSession(t, testConfig())
	s.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	s.Key(key.Event{Rune: 's', Modifiers: key.ModControl, Direction: key.DirPress})
	if len(a.saved) != 1 {
		t.Fatalf("saved %v", a.saved)
	}
	data, err := os.ReadFile(a.saved[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatal("saved file is not a PNG")
	}
	if filepath.Base(a.saved[0]) != "test-20240501-100000.000.png" {
		t.Fatalf("name = %s", filepath.Base(a.saved[0]))
	}
	if !strings.Contains(s.Title(), "last saved") {
		t.Fatalf("title = %q", s.Title())
	}
}

func TestCopyUsesClipboard(t *testing.T) {
	var got []byte
	orig := writePNG
	writePNG = func(data []byte) error { got = data; return nil }
	t.Cleanup(func() { writePNG = orig })

	s, a := newSession(t, testConfig())
	s.Key(key.Event{Rune: 'c', Modifiers: key.ModControl, Direction: key.DirPress})
	if !bytes.HasPrefix(got, []byte("\x89PNG")) {
		t.Fatal("clipboard did not receive a PNG")
	}
	if len(a.copied) != 1 || a.copied[0] != "drawing" {
		t.Fatalf("copied %v", a.copied)
	}
	if s.Engine().Gallery().Len() != 0 {
		t.Fatal("ctrl+c cleared the surface")
	}
}

func TestKonamiTogglesRetroTheme(t *testing.T) {
	s, _ := newSession(t, testConfig())
	seq := []key.Event{
		code(key.CodeUpArrow), code(key.CodeUpArrow),
		code(key.CodeDownArrow), code(key.CodeDownArrow),
		code(key.CodeLeftArrow), code(key.CodeRightArrow),
		code(key.CodeLeftArrow), code(key.CodeRightArrow),
		press('b'), press('a'),
	}
	for _, e := range seq {
		s.Key(e)
	}
	if s.Theme().Name != "retro" {
		t.Fatalf("theme = %q", s.Theme().Name)
	}
	for _, e := range seq {
		s.Key(e)
	}
	if s.Theme().Name == "retro" {
		t.Fatal("second code did not toggle back")
	}
}

func TestQuit(t *testing.T) {
	s, _ := newSession(t, testConfig())
	s.Key(press('q'))
	if !s.Done() {
		t.Fatal("q did not quit")
	}
}

func TestWindowTitle(t *testing.T) {
	got := WindowTitle(TitleOptions{Mode: "wiggly", State: " idle ", Version: "v1.2.0", Extras: []string{"x"}})
	if got != "Vibes - wiggly - idle - v1.2.0 - x" {
		t.Fatalf("title = %q", got)
	}
}

func TestMessageTimerOutlivingWindowIsHarmless(t *testing.T) {
	var fire func()
	old := afterFunc
	afterFunc = func(_ time.Duration, f func()) *time.Timer {
		fire = f
		return nil
	}
	t.Cleanup(func() { afterFunc = old })

	s, _ := newSession(t, testConfig())
	paints := 0
	s.setInvalidate(func() { paints++ })
	s.setMessage("hello")
	fire()
	if paints != 1 {
		t.Fatalf("paints = %d, want 1 while the window is open", paints)
	}

	s.setMessage("bye")
	s.setInvalidate(nil)
	fire()
	if paints != 1 {
		t.Fatalf("timer repainted a closed window")
	}
}
