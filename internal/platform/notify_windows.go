//go:build windows

package platform

import (
	"encoding/xml"
	"fmt"
	"os/exec"
	"strings"
)

// toast is the ToastGeneric payload understood by the Windows notification
// center.
type toast struct {
	XMLName xml.Name     `xml:"toast"`
	Binding toastBinding `xml:"visual>binding"`
	Audio   toastAudio   `xml:"audio"`
}

type toastBinding struct {
	Template string     `xml:"template,attr"`
	Texts    []string   `xml:"text"`
	Image    *toastIcon `xml:"image,omitempty"`
}

type toastIcon struct {
	Placement string `xml:"placement,attr"`
	Src       string `xml:"src,attr"`
}

type toastAudio struct {
	Silent bool `xml:"silent,attr"`
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func powershell(script string) *exec.Cmd {
	return exec.Command("powershell.exe", "-NoProfile", "-NonInteractive", "-Command", script)
}

// Notify shows a toast. A custom sound replaces the system chime and is
// played separately.
func Notify(title, body string, opts Options) error {
	t := toast{
		Binding: toastBinding{Template: "ToastGeneric", Texts: []string{title, body}},
		Audio:   toastAudio{Silent: opts.SoundPath != ""},
	}
	if icon := strings.TrimSpace(opts.IconPath); icon != "" {
		t.Binding.Image = &toastIcon{Placement: "appLogoOverride", Src: icon}
	}
	payload, err := xml.Marshal(t)
	if err != nil {
		return err
	}
	script := strings.Join([]string{
		`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=WindowsRuntime] > $null`,
		`[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType=WindowsRuntime] > $null`,
		`$doc = New-Object Windows.Data.Xml.Dom.XmlDocument`,
		fmt.Sprintf(`$doc.LoadXml(%s)`, psQuote(string(payload))),
		fmt.Sprintf(`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show([Windows.UI.Notifications.ToastNotification]::new($doc))`, psQuote(AppName)),
	}, "; ")
	if err := powershell(script).Run(); err != nil {
		return fmt.Errorf("toast: %w", err)
	}
	if opts.SoundPath != "" {
		return PlaySound(opts.SoundPath)
	}
	return nil
}

// PlaySound plays a WAV file through System.Media.SoundPlayer.
func PlaySound(path string) error {
	return powershell(fmt.Sprintf(`(New-Object Media.SoundPlayer %s).PlaySync()`, psQuote(path))).Start()
}
