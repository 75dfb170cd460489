package platform

// AppName is the sender name shown by notification services and window
// titles.
const AppName = "Vibes"

// Options are per-notification extras. Platforms ignore what they cannot
// show.
type Options struct {
	IconPath  string // image shown beside the text
	SoundPath string // WAV played with the notification
}
