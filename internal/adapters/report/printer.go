// Package report renders the counters, timings and artefacts collected during a build.
package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"go.trai.ch/hbuild/internal/core/domain"
)

// Printer writes build reports.
type Printer struct {
	out    io.Writer
	styles styles
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	p := &Printer{}
	p.SetOutput(out)
	return p
}

// SetOutput redirects the printer.
func (p *Printer) SetOutput(out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	p.out = out
	p.styles = newStyles(lipgloss.NewRenderer(out))
}

// Print renders the report of r.
func (p *Printer) Print(r *domain.Reporter) error {
	sections := []string{p.styles.title.Render("Build summary")}

	if artefacts := r.Artefacts(); len(artefacts) > 0 {
		sections = append(sections, p.artefactTable(artefacts))
	}

	if counters := r.Counters(); len(counters) > 0 {
		parts := make([]string, 0, len(counters))
		for _, name := range slices.Sorted(maps.Keys(counters)) {
			parts = append(parts, p.styles.label.Render(name)+" "+strconv.Itoa(counters[name]))
		}
		sections = append(sections, strings.Join(parts, "  "))
	}

	if measurements := r.Measurements(); len(measurements) > 0 {
		rows := make([]string, 0, len(measurements))
		for _, m := range measurements {
			rows = append(rows, fmt.Sprintf("%s %s", p.styles.label.Render(m.Label), m.Duration.Round(time.Millisecond)))
		}
		sections = append(sections, strings.Join(rows, "\n"))
	}

	_, err := fmt.Fprintln(p.out, lipgloss.JoinVertical(lipgloss.Left, sections...))
	return err
}

func (p *Printer) artefactTable(artefacts []domain.Artefact) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.styles.border).
		Headers("TARGET", "STATUS", "ARTEFACT", "FINGERPRINT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.header
			}
			return p.styles.cell
		})

	for _, a := range artefacts {
		status := string(a.Status)
		if style, ok := p.styles.status[a.Status]; ok {
			status = style.Render(status)
		}
		t.Row(a.Target, status, a.Path, a.Fingerprint)
	}
	return t.String()
}
