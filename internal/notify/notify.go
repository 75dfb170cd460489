// Package notify delivers engine cues and file events to the desktop: a
// notification through the platform service and, optionally, a synthesised
// sound.
package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kelseyhightower/envconfig"

	"github.com/example/vibes/internal/audio"
	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSpill fires when the coffee canvas spills.
	EventSpill Event = Event(engine.CueSpill)
	// EventExplosion fires when a canvas is obliterated.
	EventExplosion Event = Event(engine.CueExplosion)
	// EventSuccess fires when a canvas is wiped clean.
	EventSuccess Event = Event(engine.CueSuccess)
	// EventChaos fires when chaos mode is requested.
	EventChaos Event = Event(engine.CueChaos)
	// EventSave emits a notification when an image is persisted to disk.
	EventSave Event = "save"
	// EventCopy emits a notification when data is copied to the clipboard.
	EventCopy Event = "copy"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Vibes",
		Events: map[Event]EventPreference{
			EventSpill:     {Template: "Coffee everywhere! %s"},
			EventExplosion: {Template: "Obliterated %s"},
			EventSuccess:   {Template: "Fresh canvas %s"},
			EventChaos:     {Template: "Chaos unleashed %s"},
			EventSave:      {Template: "Saved %s"},
			EventCopy:      {Template: "Copied %s to clipboard"},
		},
	}
}

type envPreferences struct {
	Title     string `envconfig:"VIBES_NOTIFY_TITLE"`
	Spill     string `envconfig:"VIBES_NOTIFY_SPILL_TEXT"`
	Explosion string `envconfig:"VIBES_NOTIFY_EXPLOSION_TEXT"`
	Success   string `envconfig:"VIBES_NOTIFY_SUCCESS_TEXT"`
	Save      string `envconfig:"VIBES_NOTIFY_SAVE_TEXT"`
	Copy      string `envconfig:"VIBES_NOTIFY_COPY_TEXT"`
}

// LoadPreferences reads configuration from environment variables.
func LoadPreferences() (Preferences, error) {
	prefs := DefaultPreferences()
	var env envPreferences
	if err := envconfig.Process("", &env); err != nil {
		return prefs, fmt.Errorf("notification preferences: %w", err)
	}
	if v := strings.TrimSpace(env.Title); v != "" {
		prefs.Title = v
	}
	apply := func(v string, event Event) {
		if v = strings.TrimSpace(v); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply(env.Spill, EventSpill)
	apply(env.Explosion, EventExplosion)
	apply(env.Success, EventSuccess)
	apply(env.Save, EventSave)
	apply(env.Copy, EventCopy)
	return prefs, nil
}

var (
	notifyFunc    = platform.Notify
	playSoundFunc = platform.PlaySound
)

// Notifier sends OS-level notifications and cue sounds. Cue dispatch runs in
// the background so the drawing loop never waits on the desktop.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	synth   *audio.Synth
	logger  *log.Logger

	wg       sync.WaitGroup
	mu       sync.Mutex
	soundDir string
	sounds   map[engine.Cue]string
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{
		prefs:   cloned,
		enabled: make(map[Event]bool),
		logger:  log.Default(),
		sounds:  make(map[engine.Cue]string),
	}
}

// SetLogger replaces the logger used for delivery failures.
func (n *Notifier) SetLogger(l *log.Logger) {
	if n != nil && l != nil {
		n.logger = l
	}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// EnableSound plays cue sounds through s. A nil synth disables sound.
func (n *Notifier) EnableSound(s *audio.Synth) {
	if n != nil {
		n.synth = s
	}
}

// Cue implements engine.CueSink.
func (n *Notifier) Cue(c engine.Cue) {
	if n == nil || c == engine.CueNone {
		return
	}
	event := Event(c)
	popup := n.enabledFor(event)
	if !popup && n.synth == nil {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		opts := platform.Options{}
		if n.synth != nil {
			path, err := n.soundFile(c)
			if err != nil {
				n.logger.Warn("cue sound", "cue", c, "err", err)
			} else {
				opts.SoundPath = path
			}
		}
		if popup {
			n.dispatch(event, time.Now().Format("15:04:05"), opts)
			return
		}
		if opts.SoundPath != "" {
			if err := playSoundFunc(opts.SoundPath); err != nil {
				n.logger.Warn("play sound", "cue", c, "err", err)
			}
		}
	}()
}

// Wait blocks until every dispatched cue has been delivered.
func (n *Notifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}

// Close waits for pending cues and removes rendered sound files.
func (n *Notifier) Close() error {
	if n == nil {
		return nil
	}
	n.wg.Wait()
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.soundDir == "" {
		return nil
	}
	err := os.RemoveAll(n.soundDir)
	n.soundDir = ""
	n.sounds = make(map[engine.Cue]string)
	return err
}

// Save sends a save notification including the written filename when available.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil {
		return false
	}
	if n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := notifyFunc(n.prefs.Title, body, opts); err != nil {
		n.logger.Warn("notification", "event", event, "err", err)
	}
}

func (n *Notifier) template(event Event) string {
	if n == nil {
		return ""
	}
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}

// soundFile renders c once per notifier and returns the cached WAV path.
func (n *Notifier) soundFile(c engine.Cue) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if path, ok := n.sounds[c]; ok {
		return path, nil
	}
	if n.soundDir == "" {
		dir, err := os.MkdirTemp("", "vibes-sounds-*")
		if err != nil {
			return "", err
		}
		n.soundDir = dir
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	samples, err := n.synth.Render(ctx, c)
	if err != nil {
		return "", err
	}
	path := filepath.Join(n.soundDir, string(c)+".wav")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := audio.WriteWAV(f, n.synth.SampleRate(), samples); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	n.sounds[c] = path
	return path, nil
}
