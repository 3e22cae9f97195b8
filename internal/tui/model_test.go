//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestModel_TapeUpdateAddsVertices(t *testing.T) {
	m := NewModel(NewStream())

	_, cmd := m.Update(MsgTapeUpdate{Update: &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "core"},
			{Id: "2", Name: "app"},
		},
	}})

	require.Len(t, m.vertices, 2)
	assert.Equal(t, "core", m.vertices[0].Name)
	assert.Equal(t, statusRunning, m.vertices[1].Status)
	assert.NotNil(t, cmd)
}

func TestModel_CompletionStatus(t *testing.T) {
	now := timestamppb.New(time.Now())
	boom := "link failed"

	m := NewModel(NewStream())
	m.apply(&progrock.StatusUpdate{Vertexes: []*progrock.Vertex{
		{Id: "1", Name: "core"},
		{Id: "2", Name: "zlib"},
		{Id: "3", Name: "app"},
	}})
	m.apply(&progrock.StatusUpdate{Vertexes: []*progrock.Vertex{
		{Id: "1", Name: "core", Completed: now},
		{Id: "2", Name: "zlib", Completed: now, Cached: true},
		{Id: "3", Name: "app", Completed: now, Error: &boom},
	}})

	require.Len(t, m.vertices, 3)
	assert.Equal(t, statusCompleted, m.vertices[0].Status)
	assert.Equal(t, statusCached, m.vertices[1].Status)
	assert.Equal(t, statusFailed, m.vertices[2].Status)
}

func TestModel_LogTail(t *testing.T) {
	m := NewModel(NewStream())
	m.apply(&progrock.StatusUpdate{Vertexes: []*progrock.Vertex{{Id: "1", Name: "core"}}})

	var out strings.Builder
	for i := range logTail + 3 {
		out.WriteString("line ")
		out.WriteString(string(rune('a' + i)))
		out.WriteString("\r\n")
	}
	out.WriteString("partial")
	m.apply(&progrock.StatusUpdate{Logs: []*progrock.VertexLog{
		{Vertex: "1", Data: []byte(out.String())},
		{Vertex: "unknown", Data: []byte("ignored\n")},
	}})

	logs := m.vertices[0].Logs
	require.Len(t, logs, logTail)
	assert.Equal(t, "line d", logs[0])
	assert.Equal(t, "line k", logs[logTail-1])

	m.apply(&progrock.StatusUpdate{Logs: []*progrock.VertexLog{{Vertex: "1", Data: []byte(" line\n")}}})
	assert.Equal(t, "partial line", m.vertices[0].Logs[logTail-1])
}

func TestModel_View(t *testing.T) {
	m := NewModel(NewStream())
	m.vertices = []VertexState{
		{ID: "1", Name: "core", Status: statusCompleted, Logs: []string{"hidden"}},
		{ID: "2", Name: "zlib", Status: statusCached},
		{ID: "3", Name: "app", Status: statusFailed, Logs: []string{"error C2143"}},
	}

	view := m.View()
	assert.Contains(t, view, "✓ core")
	assert.Contains(t, view, "zlib")
	assert.Contains(t, view, "✗ app")
	assert.Contains(t, view, "error C2143")
	assert.NotContains(t, view, "hidden")

	m.height = 1
	assert.Equal(t, 1, strings.Count(m.View(), "\n"))
}

func TestModel_TapeEndedQuits(t *testing.T) {
	m := NewModel(NewStream())
	_, cmd := m.Update(MsgTapeEnded{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestProgress_RunUntilStreamCloses(t *testing.T) {
	stream := NewStream()
	require.NoError(t, stream.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{Id: "1", Name: "core", Completed: timestamppb.New(time.Now())}},
	}))
	require.NoError(t, stream.Close())

	var out bytes.Buffer
	p := NewProgress(stream, &out, tea.WithoutSignalHandler(), tea.WithoutRenderer())
	require.NoError(t, p.Run(context.Background()))
}
