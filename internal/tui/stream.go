package tui

import (
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/zerr"
)

// ErrStreamClosed is returned when an update is written after Close.
var ErrStreamClosed = zerr.New("progress stream closed")

var (
	_ progrock.Writer = (*Stream)(nil)
	_ TapeSource      = (*Stream)(nil)
)

// Stream is a progrock writer whose updates are read back in order.
// Updates queue until they are read, so writers never block on the view.
type Stream struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*progrock.StatusUpdate
	closed bool
}

// NewStream creates an open Stream.
func NewStream() *Stream {
	s := &Stream{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// WriteStatus queues an update.
func (s *Stream) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStreamClosed
	}
	s.queue = append(s.queue, update)
	s.cond.Signal()
	return nil
}

// Close ends the stream. Queued updates can still be read.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cond.Broadcast()
	return nil
}

// Read blocks until an update is queued and returns io.EOF once the stream
// is closed and drained.
func (s *Stream) Read() (*progrock.StatusUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.queue) == 0 && !s.closed {
		s.cond.Wait()
	}
	if len(s.queue) == 0 {
		return nil, io.EOF
	}
	update := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return update, nil
}
