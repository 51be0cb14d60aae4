package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// colorsEnabled reports whether terminal colors should be used. NO_COLOR
// (any value) and TERM=dumb disable them.
func colorsEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// renderMarkdown renders a markdown artifact for terminal display. With
// colors disabled the content is returned unmodified.
func renderMarkdown(content string) (string, error) {
	if content == "" || !colorsEnabled() {
		return content, nil
	}
	rendered, err := glamour.RenderWithEnvironmentConfig(content)
	if err != nil {
		return content, err
	}
	return strings.TrimSpace(rendered), nil
}
