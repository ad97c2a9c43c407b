package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles contains styling for console output
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	Prompt    lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Hidden    lipgloss.Style
	Money     lipgloss.Style
	Player    lipgloss.Style
	Separator lipgloss.Style
}

// NewRenderer returns a renderer for w. Plain renderers never emit colour.
func NewRenderer(w io.Writer, plain bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewStyles creates a new set of styles bound to r
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1B5E20")).
			Padding(0, 2).
			Bold(true),
		SubHeader: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Prompt:  r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		CardRed: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: r.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD")).
			Bold(true),
		Hidden:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Money:     r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Player:    r.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
		Separator: r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}
