package playground

import (
	"fmt"
	"strings"

	"github.com/example/vibes/internal/platform"
)

// TitleOptions are the parts of a window title.
type TitleOptions struct {
	Mode      string
	State     string
	Detail    string
	LastSaved string
	Version   string
	Extras    []string
}

// WindowTitle joins the non-empty parts of opts behind the program name.
func WindowTitle(opts TitleOptions) string {
	parts := []string{platform.AppName}

	for _, p := range []string{opts.Mode, opts.State, opts.Detail} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	extras := make([]string, 0, len(opts.Extras)+2)
	if saved := strings.TrimSpace(opts.LastSaved); saved != "" {
		extras = append(extras, fmt.Sprintf("last saved %s", saved))
	}
	if v := strings.TrimSpace(opts.Version); v != "" {
		extras = append(extras, fmt.Sprintf("v%s", strings.TrimPrefix(v, "v")))
	}
	extras = append(extras, opts.Extras...)

	return strings.Join(append(parts, extras...), " - ")
}
