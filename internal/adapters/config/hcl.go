package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// evalContext exposes the build variables to HCL expressions, so a
// description can write macros = { DEBUG = build_type == "Debug" ? "1" : "0" }.
func evalContext(vars ports.DescriptionVars) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"build_type":   cty.StringVal(string(vars.BuildType)),
			"architecture": cty.StringVal(string(vars.Architecture)),
			"compiler":     cty.StringVal(string(vars.Compiler)),
		},
	}
}

func decodeHCL(path string, vars ports.DescriptionVars) (*Description, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, diags.Error()), "path", path)
	}

	var desc Description
	if diags := gohcl.DecodeBody(file.Body, evalContext(vars), &desc); diags.HasErrors() {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, diags.Error()), "path", path)
	}
	return &desc, nil
}
