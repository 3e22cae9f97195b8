package ports

import (
	"context"

	"go.trai.ch/hbuild/internal/core/domain"
)

// DescriptionVars are the values a build description may refer to while it is evaluated.
type DescriptionVars struct {
	BuildType    domain.BuildType
	Architecture domain.Architecture
	Compiler     domain.CompilerID
}

// DescriptionLoader turns a build description file into packages.
//
//go:generate go run go.uber.org/mock/mockgen -source=description.go -destination=mocks/mock_description.go -package=mocks
type DescriptionLoader interface {
	// Load evaluates the build description at path.
	Load(ctx context.Context, path string, vars DescriptionVars) ([]*domain.Package, error)
}
