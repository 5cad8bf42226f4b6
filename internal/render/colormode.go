package render

import (
	"fmt"
	"strings"
)

// ColorMode selects how cell colors are written to the sink.
type ColorMode uint8

const (
	ColorTrueColor ColorMode = iota // ESC[38;2;R;G;Bm
	Color256                        // ESC[38;5;Nm, nearest xterm palette entry
	ColorNone                       // glyphs only
)

func (m ColorMode) String() string {
	switch m {
	case ColorTrueColor:
		return "truecolor"
	case Color256:
		return "256"
	case ColorNone:
		return "none"
	default:
		return fmt.Sprintf("ColorMode(%d)", uint8(m))
	}
}

// ParseColorMode accepts the names used on the command line.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "true", "truecolor", "24", "24bit":
		return ColorTrueColor, nil
	case "256", "8", "8bit":
		return Color256, nil
	case "none", "off", "mono":
		return ColorNone, nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}

// truecolorTerminals are env vars set by terminals known to support 24-bit color.
var truecolorTerminals = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"ALACRITTY_LOG",
	"WEZTERM_PANE",
}

// DetectColorMode determines color capability from an environment lookup.
// getenv is usually os.Getenv; the SSH server passes the session environment.
func DetectColorMode(getenv func(string) string) ColorMode {
	colorterm := getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorTrueColor
	}

	for _, key := range truecolorTerminals {
		if getenv(key) != "" {
			return ColorTrueColor
		}
	}

	term := getenv("TERM")
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorTrueColor
	}

	return Color256
}
