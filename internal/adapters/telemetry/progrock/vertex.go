package progrock

import (
	"errors"
	"fmt"
	"io"

	"github.com/vito/progrock"

	"go.trai.ch/hbuild/internal/core/domain"
)

// Vertex is the progress record of one target.
type Vertex struct {
	vertex *progrock.VertexRecorder
	target string
}

// Stdout receives compiler and linker output of the target.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr receives diagnostics of the target.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log writes a leveled line to the target's output. Warnings and errors go to stderr.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level.String(), msg)
}

// Complete finishes the target. A backend failure leaves its step and
// return code as the last line of the target's output.
func (v *Vertex) Complete(err error) {
	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		_, _ = fmt.Fprintf(v.vertex.Stderr(), "%s of %s failed with return code %d\n",
			backendErr.Step, v.target, backendErr.ReturnCode)
	}
	v.vertex.Done(err)
}

// Cached marks the target as up to date.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
