package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	title  lipgloss.Style
	border lipgloss.Style
	key    lipgloss.Style
	header lipgloss.Style
	status lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		border: r.NewStyle().Foreground(lipgloss.Color("244")),
		key:    r.NewStyle().Foreground(lipgloss.Color("250")),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		status: r.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// newLipglossRenderer binds styling to w. Color is detected from w unless disabled.
func newLipglossRenderer(opts Options) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(opts.Writer)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}
