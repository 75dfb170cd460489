//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify posts to Notification Center through osascript. AppleScript has no
// way to attach an icon, so IconPath is ignored.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, AppName, title)
	if out, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	if opts.SoundPath == "" {
		return nil
	}
	return PlaySound(opts.SoundPath)
}

// PlaySound starts afplay and returns without waiting for it.
func PlaySound(path string) error {
	return exec.Command("afplay", path).Start()
}
