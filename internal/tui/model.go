package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
)

const (
	statusRunning   = "running"
	statusCached    = "cached"
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// logTail is the number of output lines kept per target.
const logTail = 8

// VertexState is the view of one target.
type VertexState struct {
	ID     string
	Name   string
	Status string
	// Logs holds the last complete output lines of the target.
	Logs []string

	partial string
}

func (v *VertexState) appendLog(data []byte) {
	text := v.partial + string(data)
	lines := strings.Split(text, "\n")
	v.partial = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		v.Logs = append(v.Logs, line)
	}
	if len(v.Logs) > logTail {
		v.Logs = append([]string(nil), v.Logs[len(v.Logs)-logTail:]...)
	}
}

type styles struct {
	running   lipgloss.Style
	cached    lipgloss.Style
	completed lipgloss.Style
	failed    lipgloss.Style
	log       lipgloss.Style
}

// Model is the Bubble Tea model of the progress view.
type Model struct {
	tape     TapeSource
	vertices []VertexState
	index    map[string]int
	width    int
	height   int
	spinner  spinner.Model
	styles   styles
}

// NewModel creates a new progress model reading from tape.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))

	return &Model{
		tape:    tape,
		index:   make(map[string]int),
		spinner: s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
			cached:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true),
			completed: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),  // Green
			failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")), // Red
			log:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

// Init starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		m.apply(msg.Update)
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

// apply folds one progrock update into the model.
func (m *Model) apply(update *progrock.StatusUpdate) {
	if update == nil {
		return
	}
	for _, v := range update.Vertexes {
		i, ok := m.index[v.Id]
		if !ok {
			i = len(m.vertices)
			m.index[v.Id] = i
			m.vertices = append(m.vertices, VertexState{ID: v.Id, Name: v.Name})
		}
		m.vertices[i].Status = vertexStatus(v)
	}
	for _, l := range update.Logs {
		if i, ok := m.index[l.Vertex]; ok {
			m.vertices[i].appendLog(l.Data)
		}
	}
}

func vertexStatus(v *progrock.Vertex) string {
	switch {
	case v.Completed == nil:
		return statusRunning
	case v.Error != nil:
		return statusFailed
	case v.Cached:
		return statusCached
	default:
		return statusCompleted
	}
}

// View renders one line per target. Running and failed targets show their
// latest output below them.
func (m *Model) View() string {
	var lines []string
	for _, v := range m.vertices {
		var icon string
		var style lipgloss.Style
		switch v.Status {
		case statusRunning:
			icon = m.spinner.View()
			style = m.styles.running
		case statusCached:
			icon = "⚡"
			style = m.styles.cached
		case statusFailed:
			icon = "✗"
			style = m.styles.failed
		default:
			icon = "✓"
			style = m.styles.completed
		}
		lines = append(lines, fmt.Sprintf("%s %s", style.Render(icon), v.Name))

		if v.Status == statusRunning || v.Status == statusFailed {
			for _, l := range v.Logs {
				lines = append(lines, "    "+m.styles.log.Render(l))
			}
		}
	}

	// Keep the newest lines when the terminal is too short.
	if m.height > 0 && len(lines) > m.height {
		lines = lines[len(lines)-m.height:]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
