package progrock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/hbuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/hbuild/internal/tui"
)

func TestRecorder_RecordTarget(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "core")

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("core.c\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelDebug, "cache hit")
	vertex.Log(domain.LogLevelError, "link failed")
	vertex.Cached()
	vertex.Complete(nil)

	require.NoError(t, recorder.Close())
}

func TestRecorder_FailedVertex(t *testing.T) {
	recorder := progrock.New()

	_, vertex := recorder.Record(context.Background(), "app")
	vertex.Complete(errors.New("failed to link"))

	assert.NoError(t, recorder.Close())
}

func TestRecorder_StreamsToProgressView(t *testing.T) {
	stream := tui.NewStream()
	recorder := progrock.NewRecorder(stream)

	_, vertex := recorder.Record(context.Background(), "core")
	_, err := vertex.Stdout().Write([]byte("core.c\n"))
	require.NoError(t, err)
	vertex.Complete(nil)
	require.NoError(t, recorder.Close())

	names := make(map[string]bool)
	completed := false
	for {
		update, err := stream.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		for _, v := range update.Vertexes {
			names[v.Name] = true
			if v.Completed != nil {
				completed = true
			}
		}
	}
	assert.True(t, names["core"])
	assert.True(t, completed)
}

func TestRecorder_BackendFailureIsLogged(t *testing.T) {
	stream := tui.NewStream()
	recorder := progrock.NewRecorder(stream)

	_, vertex := recorder.Record(context.Background(), "app")
	vertex.Complete(&domain.BackendError{Step: domain.StepLink, Target: "app", ReturnCode: 1120})
	require.NoError(t, recorder.Close())

	var logs string
	failed := false
	for {
		update, err := stream.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		for _, l := range update.Logs {
			logs += string(l.Data)
		}
		for _, v := range update.Vertexes {
			if v.Error != nil {
				failed = true
			}
		}
	}
	assert.Contains(t, logs, "link of app failed with return code 1120")
	assert.True(t, failed)
}
