package draw

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the text styles for HUD and screen overlays.
type Styles struct {
	Title  lipgloss.Style
	Text   lipgloss.Style
	Score  lipgloss.Style
	Danger lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
}

// NewStyles builds styles bound to w. The colour profile is forced to 256
// colours since SSH sessions do not expose a TTY for detection.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	fg := func(c Color) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c.Code()))
	}
	return Styles{
		Title:  fg(ColorWhite).Bold(true),
		Text:   fg(ColorWhite),
		Score:  fg(ColorGreen).Bold(true),
		Danger: fg(ColorRed).Bold(true),
		Muted:  fg(ColorGrey),
		Accent: fg(ColorYellow),
	}
}

// Centered returns the column at which s starts when centred on centerX.
// Width is measured on the printable text, ignoring escape sequences.
func Centered(centerX int, s string) int {
	return centerX - lipgloss.Width(s)/2
}
