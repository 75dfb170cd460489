// Package playground hosts a drawing engine in a desktop window. A Session
// owns the engine, its raster and the window chrome state; the shiny event
// loop in Main feeds it pointer and key events and paints its frames.
package playground

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/example/vibes/internal/clipboard"
	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/modes"
	"github.com/example/vibes/internal/surface"
	"github.com/example/vibes/internal/theme"
)

const messageTTL = 2 * time.Second

var afterFunc = time.AfterFunc

// Announcer is told about completed saves and copies.
type Announcer interface {
	Save(path string)
	Copy(detail string)
}

type nopAnnouncer struct{}

func (nopAnnouncer) Save(string) {}
func (nopAnnouncer) Copy(string) {}

var writePNG = clipboard.WritePNG

// Options configures a Session.
type Options struct {
	Theme      *theme.Theme
	RetroTheme *theme.Theme
	SaveDir    string
	Announcer  Announcer
	Logger     *log.Logger
	Version    string
}

// Session is the state behind one playground window.
type Session struct {
	eng    *engine.Engine
	raster *surface.Raster
	theme  *theme.Theme
	retro  *theme.Theme

	saveDir   string
	announcer Announcer
	logger    *log.Logger
	version   string

	view    engine.Box
	winSize image.Point

	konami      modes.Konami
	retroOn     bool
	viewing     bool
	galleryImg  image.Image
	spill       *image.RGBA
	lastSaved   string
	done        bool
	message     string
	messageTill time.Time
	now         func() time.Time

	repaintMu  sync.Mutex
	invalidate func()

	actions  map[string]func()
	shortcut map[KeyShortcut]string
}

// New builds a session around eng, which must draw onto raster.
func New(eng *engine.Engine, raster *surface.Raster, opts Options) *Session {
	s := &Session{
		eng:       eng,
		raster:    raster,
		theme:     opts.Theme,
		retro:     opts.RetroTheme,
		saveDir:   opts.SaveDir,
		announcer: opts.Announcer,
		logger:    opts.Logger,
		version:   opts.Version,
		now:       time.Now,
	}
	if s.theme == nil {
		s.theme = theme.Default()
	}
	if s.announcer == nil {
		s.announcer = nopAnnouncer{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.saveDir == "" {
		s.saveDir = "."
	}
	if !eng.Mounted() {
		eng.Mount(raster)
	}
	s.configure()
	s.Resize(InitialSize(eng.NativeSize()))
	return s
}

// Engine returns the hosted engine.
func (s *Session) Engine() *engine.Engine { return s.eng }

// View returns the window rectangle the surface is displayed in.
func (s *Session) View() engine.Box { return s.view }

// Done reports whether the user asked to quit.
func (s *Session) Done() bool { return s.done }

// Message returns the banner text, or "" when none is showing.
func (s *Session) Message() string {
	if s.message == "" || !s.now().Before(s.messageTill) {
		return ""
	}
	return s.message
}

// Theme returns the active chrome theme.
func (s *Session) Theme() *theme.Theme {
	if s.retroOn && s.retro != nil {
		return s.retro
	}
	return s.theme
}

// Resize lays the surface out for a window of the given size.
func (s *Session) Resize(win image.Point) {
	s.winSize = win
	s.view = Layout(win, s.eng.NativeSize())
}

// setInvalidate installs the function that asks the window for a new frame.
// nil detaches the session from its window.
func (s *Session) setInvalidate(f func()) {
	s.repaintMu.Lock()
	defer s.repaintMu.Unlock()
	s.invalidate = f
}

// repaint may run on a timer goroutine after the window is gone.
func (s *Session) repaint() {
	s.repaintMu.Lock()
	defer s.repaintMu.Unlock()
	if s.invalidate != nil {
		s.invalidate()
	}
}

func (s *Session) setMessage(format string, args ...any) {
	s.message = fmt.Sprintf(format, args...)
	s.messageTill = s.now().Add(messageTTL)
	s.logger.Info(s.message)
	afterFunc(messageTTL, s.repaint)
}

func (s *Session) showGallery(dir engine.Direction) {
	g := s.eng.Gallery()
	if g.Len() == 0 {
		s.setMessage("gallery is empty")
		return
	}
	if s.viewing {
		g.Navigate(dir)
	}
	entry, _ := g.Current()
	img, err := png.Decode(bytes.NewReader(entry.Data))
	if err != nil {
		s.logger.Error("gallery decode", "id", entry.ID, "err", err)
		return
	}
	s.viewing = true
	s.galleryImg = img
}

func (s *Session) leaveGallery() {
	s.viewing = false
	s.galleryImg = nil
}

// shown returns the PNG bytes of what is on screen: the gallery entry being
// viewed or the live surface.
func (s *Session) shown() ([]byte, string, error) {
	if s.viewing {
		if entry, ok := s.eng.Gallery().Current(); ok {
			return entry.Data, "gallery entry " + entry.ID.String(), nil
		}
	}
	data, err := s.raster.ExportSnapshot()
	return data, "drawing", err
}

func (s *Session) copyShown() {
	data, detail, err := s.shown()
	if err == nil {
		err = writePNG(data)
	}
	if err != nil {
		s.logger.Error("copy", "err", err)
		s.setMessage("copy failed: %v", err)
		return
	}
	s.announcer.Copy(detail)
	s.setMessage("%s copied to clipboard", detail)
}

func (s *Session) saveShown() {
	data, _, err := s.shown()
	if err != nil {
		s.logger.Error("save", "err", err)
		return
	}
	if err := os.MkdirAll(s.saveDir, 0o755); err != nil {
		s.logger.Error("save", "dir", s.saveDir, "err", err)
		s.setMessage("save failed: %v", err)
		return
	}
	name := fmt.Sprintf("%s-%s.png", s.eng.Config().Name, s.now().Format("20060102-150405.000"))
	path := filepath.Join(s.saveDir, strings.ReplaceAll(name, string(filepath.Separator), "_"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("save", "path", path, "err", err)
		s.setMessage("save failed: %v", err)
		return
	}
	s.lastSaved = path
	s.announcer.Save(path)
	s.setMessage("saved %s", path)
}

func (s *Session) clear() {
	s.leaveGallery()
	if err := s.eng.Clear(); err != nil {
		s.setMessage("clear failed: %v", err)
		return
	}
	s.spill = nil
}

func (s *Session) toggleRetro() {
	s.retroOn = !s.retroOn
	if s.retroOn {
		s.setMessage("KONAMI! retro colours on")
		return
	}
	s.setMessage("retro colours off")
}

// Title returns the window title for the current state.
func (s *Session) Title() string {
	cfg := s.eng.Config()
	opts := TitleOptions{Mode: cfg.Name, State: s.eng.State().String(), LastSaved: s.lastSaved, Version: s.version}
	if cfg.GalleryEnabled {
		opts.Detail = fmt.Sprintf("gallery %d", s.eng.Gallery().Len())
	}
	return WindowTitle(opts)
}
