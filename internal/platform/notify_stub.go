//go:build !linux && !darwin && !windows

package platform

// Notify does nothing here; there is no notification service to talk to.
func Notify(string, string, Options) error { return nil }

// PlaySound does nothing here.
func PlaySound(string) error { return nil }
