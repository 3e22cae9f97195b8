package report

import (
	"github.com/charmbracelet/lipgloss"

	"go.trai.ch/hbuild/internal/core/domain"
)

var (
	colorIris  = lipgloss.Color("#5D3FD3")
	colorSlate = lipgloss.Color("#667085")
	colorWhite = lipgloss.Color("#FFFFFF")
)

// styles are bound to the renderer of the output, so colors are dropped
// when the report is not written to a terminal.
type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	label  lipgloss.Style
	status map[domain.TargetStatus]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(colorIris).
			Foreground(colorWhite),
		header: r.NewStyle().
			Bold(true).
			Padding(0, 1),
		cell: r.NewStyle().
			Padding(0, 1),
		border: r.NewStyle().
			Foreground(colorSlate),
		label: r.NewStyle().
			Foreground(colorSlate),
		status: map[domain.TargetStatus]lipgloss.Style{
			domain.StatusCompiled:  r.NewStyle().Foreground(colorIris).Bold(true),
			domain.StatusUpToDate:  r.NewStyle().Foreground(colorSlate).Faint(true),
			domain.StatusDelegated: r.NewStyle().Foreground(lipgloss.Color("42")),  // Green
			domain.StatusFailed:    r.NewStyle().Foreground(lipgloss.Color("196")), // Red
		},
	}
}
