// Package config loads build descriptions written in YAML or HCL.
package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"go.trai.ch/hbuild/internal/adapters/fs"
	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DescriptionLoader = (*Loader)(nil)

// Loader implements ports.DescriptionLoader.
type Loader struct {
	logger   ports.Logger
	resolver *fs.Resolver
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger, resolver *fs.Resolver) *Loader {
	return &Loader{
		logger:   logger,
		resolver: resolver,
	}
}

// Load reads the description at path and builds its packages.
// The format is selected by the file extension.
func (l *Loader) Load(_ context.Context, path string, vars ports.DescriptionVars) ([]*domain.Package, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var desc *Description
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".yaml", ".yml":
		desc, err = decodeYAML(abs)
	case ".hcl":
		desc, err = decodeHCL(abs, vars)
	default:
		return nil, zerr.With(domain.ErrUnsupportedDescription, "path", path)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loaded build description", "path", abs, "packages", len(desc.Packages))
	return build(desc, filepath.Dir(abs), l.resolver)
}

// ResolveBuildFile returns path itself, or the first known description
// file inside it when path is a directory.
func ResolveBuildFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range domain.BuildFileCandidates {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, "no build description found"), "path", path)
}

func decodeYAML(path string) (*Description, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var desc Description
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}
	return &desc, nil
}

type pendingLinks struct {
	target *domain.Target
	access domain.Access
	names  []string
}

// build turns a decoded description into packages.
// Links are resolved after every target is known, so declaration order
// inside the file does not matter.
func build(desc *Description, dir string, resolver *fs.Resolver) ([]*domain.Package, error) {
	b := domain.NewBuilder()
	var pending []pendingLinks

	addTargets := func(targets []TargetDTO) error {
		for _, dto := range targets {
			links, err := addTarget(b, dto, dir, resolver)
			if err != nil {
				return err
			}
			pending = append(pending, links...)
		}
		return nil
	}

	if len(desc.Targets) > 0 {
		b.Package(filepath.Base(dir), dir)
		if err := addTargets(desc.Targets); err != nil {
			return nil, err
		}
	}
	for _, pkg := range desc.Packages {
		b.Package(pkg.Name, dir)
		if err := addTargets(pkg.Targets); err != nil {
			return nil, err
		}
	}

	for _, p := range pending {
		links := make([]*domain.Target, 0, len(p.names))
		for _, name := range p.names {
			dep, ok := b.Lookup(name)
			if !ok {
				return nil, zerr.With(zerr.With(domain.ErrMissingDependency, "dependency", name), "target", p.target.Name.String())
			}
			links = append(links, dep)
		}
		if err := p.target.Declare(p.access, domain.TargetProperties{Links: links}); err != nil {
			return nil, err
		}
	}

	return b.Packages(), nil
}

func addTarget(b *domain.Builder, dto TargetDTO, dir string, resolver *fs.Resolver) ([]pendingLinks, error) {
	kind, err := domain.ParseTargetKind(dto.Kind)
	if err != nil {
		return nil, zerr.With(err, "target", dto.Name)
	}

	sources, err := resolver.ExpandSources(dto.Sources, dir)
	if err != nil {
		return nil, zerr.With(err, "target", dto.Name)
	}

	t, err := b.AddTarget(dto.Name, kind, sources)
	if err != nil {
		return nil, err
	}

	if dto.External != nil {
		tool, err := domain.ParseExternalTool(dto.External.Tool)
		if err != nil {
			return nil, zerr.With(err, "target", dto.Name)
		}
		t.External = &domain.ExternalBuildProps{
			Tool:      tool,
			Location:  dto.External.Location,
			BuildFile: dto.External.BuildFile,
			Variables: dto.External.Variables,
		}
	}

	var pending []pendingLinks
	for _, bucket := range []struct {
		access domain.Access
		dto    *PropertiesDTO
	}{
		{domain.AccessPublic, dto.Public},
		{domain.AccessPrivate, dto.Private},
	} {
		if bucket.dto == nil {
			continue
		}
		props := domain.TargetProperties{Includes: bucket.dto.Includes, Macros: bucket.dto.Macros}
		if !props.IsEmpty() || len(bucket.dto.Links) == 0 {
			if err := t.Declare(bucket.access, props); err != nil {
				return nil, err
			}
		}
		if len(bucket.dto.Links) > 0 {
			pending = append(pending, pendingLinks{target: t, access: bucket.access, names: bucket.dto.Links})
		}
	}

	return pending, nil
}
