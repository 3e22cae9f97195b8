package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ExternalTool identifies the build system a delegated target is handed to.
type ExternalTool string

const (
	// ToolSelf delegates to a nested build description of this engine.
	ToolSelf ExternalTool = "self"
	// ToolCMake delegates to CMake.
	ToolCMake ExternalTool = "cmake"
)

// ParseExternalTool converts a declaration string into an ExternalTool.
func ParseExternalTool(s string) (ExternalTool, error) {
	switch ExternalTool(strings.ToLower(s)) {
	case ToolSelf, "hbuild":
		return ToolSelf, nil
	case ToolCMake:
		return ToolCMake, nil
	default:
		return "", zerr.With(ErrUnsupportedTool, "tool", s)
	}
}

// ExternalBuildProps describes how a delegated target is built.
type ExternalBuildProps struct {
	Tool ExternalTool
	// Location is the external project directory.
	Location string
	// BuildFile is the nested description file name, used by ToolSelf.
	BuildFile string
	// Variables are passed to the configure phase of third-party tools.
	Variables map[string]string
}
