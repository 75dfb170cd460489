//go:build linux

package platform

import (
	"errors"
	"os/exec"

	"github.com/godbus/dbus/v5"
)

// Notify sends a desktop notification using the Freedesktop.org notification spec.
// Sounds are passed as the sound-file hint.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{}
	if opts.SoundPath != "" {
		hints["sound-file"] = dbus.MakeVariant(opts.SoundPath)
	}
	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, hints, int32(5000))
	return call.Err
}

// PlaySound plays a WAV file without a notification, trying PulseAudio then
// ALSA.
func PlaySound(path string) error {
	var errs []error
	for _, player := range [][]string{{"paplay"}, {"aplay", "-q"}} {
		bin, err := exec.LookPath(player[0])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return exec.Command(bin, append(player[1:], path)...).Start()
	}
	return errors.Join(errs...)
}
