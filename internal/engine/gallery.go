package engine

import (
	"time"

	"github.com/google/uuid"
)

// Direction selects gallery navigation.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Entry is one captured snapshot. Entries are never mutated after capture.
type Entry struct {
	ID         uuid.UUID
	Data       []byte
	CapturedAt time.Time
}

// Gallery is an append-only history of encoded snapshots with a cyclic
// cursor.
type Gallery struct {
	entries []Entry
	index   int
	now     func() time.Time
}

// NewGallery returns an empty gallery.
func NewGallery() *Gallery {
	return &Gallery{now: time.Now}
}

// Capture appends a snapshot. The data slice is copied. The cursor does not
// move.
func (g *Gallery) Capture(data []byte) Entry {
	e := Entry{
		ID:         uuid.New(),
		Data:       append([]byte(nil), data...),
		CapturedAt: g.now(),
	}
	g.entries = append(g.entries, e)
	return e
}

// Navigate moves the cursor by one in dir, wrapping around. It does nothing
// on an empty gallery.
func (g *Gallery) Navigate(dir Direction) {
	n := len(g.entries)
	if n == 0 {
		return
	}
	if dir == Backward {
		g.index = (g.index - 1 + n) % n
		return
	}
	g.index = (g.index + 1) % n
}

// Current returns the entry under the cursor, or false when empty.
func (g *Gallery) Current() (Entry, bool) {
	if len(g.entries) == 0 {
		return Entry{}, false
	}
	return g.entries[g.index], true
}

// Len returns the number of entries.
func (g *Gallery) Len() int { return len(g.entries) }

// Index returns the cursor position.
func (g *Gallery) Index() int { return g.index }

// Entries returns a copy of the entry list in capture order.
func (g *Gallery) Entries() []Entry {
	return append([]Entry(nil), g.entries...)
}
