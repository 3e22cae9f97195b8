package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/zerr"
)

// Progress runs the progress view of one build.
type Progress struct {
	stream  *Stream
	out     io.Writer
	options []tea.ProgramOption
}

// NewProgress creates a Progress drawing the updates of stream to out.
func NewProgress(stream *Stream, out io.Writer, opts ...tea.ProgramOption) *Progress {
	return &Progress{
		stream:  stream,
		out:     out,
		options: opts,
	}
}

// Run draws the view until the stream is closed or ctx is done.
func (p *Progress) Run(ctx context.Context) error {
	opts := make([]tea.ProgramOption, 0, len(p.options)+3)
	opts = append(opts, tea.WithContext(ctx), tea.WithOutput(p.out), tea.WithInput(nil))
	opts = append(opts, p.options...)

	if _, err := tea.NewProgram(NewModel(p.stream), opts...).Run(); err != nil {
		return zerr.Wrap(err, "progress view failed")
	}
	return nil
}
