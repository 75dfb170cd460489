package modes

import "slices"

// Key names used by the Konami detector.
const (
	KeyUp    = "ArrowUp"
	KeyDown  = "ArrowDown"
	KeyLeft  = "ArrowLeft"
	KeyRight = "ArrowRight"
)

var konamiCode = []string{KeyUp, KeyUp, KeyDown, KeyDown, KeyLeft, KeyRight, KeyLeft, KeyRight, "b", "a"}

// Konami watches key presses for the cheat code. It keeps only the most
// recent presses, as many as the code is long.
type Konami struct {
	seq []string
}

// Press records a key and reports whether the last presses spell the code.
func (k *Konami) Press(key string) bool {
	k.seq = append(k.seq, key)
	if len(k.seq) > len(konamiCode) {
		k.seq = k.seq[len(k.seq)-len(konamiCode):]
	}
	return slices.Equal(k.seq, konamiCode)
}

// Reset forgets all presses.
func (k *Konami) Reset() { k.seq = k.seq[:0] }
