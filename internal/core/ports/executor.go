// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/hbuild/internal/core/domain"
)

// Executor runs subprocesses.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command and waits for it to exit.
	//
	// A non-zero exit code is reported through the result, not as an error.
	// An error is returned when the process cannot be started or when its
	// timeout elapses (domain.ErrCommandTimeout).
	Run(ctx context.Context, cmd domain.Command) (domain.ProcessResult, error)
}
