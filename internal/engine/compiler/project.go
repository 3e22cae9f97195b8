package compiler

import (
	"context"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

type chainKey struct{}

// withDescription appends path to the chain of descriptions being built.
// Entering a description that is already on the chain is a cycle.
func withDescription(ctx context.Context, path string) (context.Context, error) {
	chain, _ := ctx.Value(chainKey{}).([]string)
	if slices.Contains(chain, path) {
		cycle := append(slices.Clone(chain), path)
		return ctx, zerr.With(domain.ErrCycleDetected, "cycle", strings.Join(cycle, " -> "))
	}
	return context.WithValue(ctx, chainKey{}, append(slices.Clone(chain), path)), nil
}

type cacheKey struct{}

// withCache records the in-memory cache loaded from path for nested builds.
func withCache(ctx context.Context, path string, cache map[string]string) context.Context {
	open, _ := ctx.Value(cacheKey{}).(map[string]map[string]string)
	next := make(map[string]map[string]string, len(open)+1)
	maps.Copy(next, open)
	next[path] = cache
	return context.WithValue(ctx, cacheKey{}, next)
}

// openCache returns the cache an enclosing build loaded from path.
func openCache(ctx context.Context, path string) (map[string]string, bool) {
	open, _ := ctx.Value(cacheKey{}).(map[string]map[string]string)
	cache, ok := open[path]
	return cache, ok
}

// CompileProject loads the build description, compiles every target and
// returns the public includes and macros aggregated over all targets.
// The object cache is saved even when the build fails.
func (c *Compiler) CompileProject(ctx context.Context, opts ports.ProjectOptions) (result domain.TargetProperties, err error) {
	buildFile, err := filepath.Abs(opts.BuildFile)
	if err != nil {
		return result, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", opts.BuildFile)
	}
	ctx, err = withDescription(ctx, buildFile)
	if err != nil {
		return result, err
	}

	backend, err := c.resolveBackend(ctx, opts.Compiler)
	if err != nil {
		return result, err
	}

	conf, err := domain.NewConfiguration(opts.Prefix, buildFile, backend.ID(), opts.BuildType, opts.Architecture)
	if err != nil {
		return result, err
	}
	conf.Reconfigure = opts.Reconfigure
	conf.Timeout = opts.Timeout

	pkgs, err := c.loader.Load(ctx, buildFile, ports.DescriptionVars{
		BuildType:    conf.BuildType,
		Architecture: conf.Architecture,
		Compiler:     conf.Compiler,
	})
	if err != nil {
		return result, err
	}
	if len(pkgs) == 0 {
		return result, zerr.With(domain.ErrNoPackages, "path", buildFile)
	}

	graph, err := domain.NewGraphFromPackages(pkgs)
	if err != nil {
		return result, err
	}
	if err := graph.Validate(); err != nil {
		return result, err
	}

	if err := c.configure(ctx, conf, backend); err != nil {
		return result, err
	}

	if cache, ok := openCache(ctx, conf.CachePath()); ok {
		// A nested build writing to the same output folder shares the
		// entries of the build that opened the cache file, which saves them.
		conf.LocalCache = cache
	} else {
		if conf.LocalCache, err = c.store.Load(ctx, conf.CachePath()); err != nil {
			return result, err
		}
		ctx = withCache(ctx, conf.CachePath(), conf.LocalCache)
		defer func() {
			if saveErr := c.store.Save(ctx, conf.CachePath(), conf.LocalCache); saveErr != nil {
				err = errors.Join(err, saveErr)
			}
		}()
	}

	c.hasher.Reset()
	for _, pkg := range pkgs {
		for _, t := range pkg.Targets {
			t.Reset()
			c.owners[t] = pkg
		}
	}

	c.logger.Info("building project",
		"path", buildFile,
		"targets", graph.Len(),
		"output", conf.OutputFolder(),
		"compiler", string(conf.Compiler),
	)

	for t := range graph.Walk() {
		props, err := c.CompileTarget(ctx, conf, c.owners[t], t)
		if err != nil {
			return domain.TargetProperties{}, err
		}
		result = result.Merge(props.WithoutLinks())
	}
	return result, nil
}

// resolveBackend looks the compiler up, or detects one when none is requested.
func (c *Compiler) resolveBackend(ctx context.Context, id domain.CompilerID) (ports.Backend, error) {
	if id == "" {
		return c.registry.Detect(ctx)
	}
	return c.registry.Lookup(id)
}

// configure creates the output folder and captures the toolchain environment.
func (c *Compiler) configure(ctx context.Context, conf *domain.Configuration, backend ports.Backend) error {
	out := conf.OutputFolder()
	if err := os.MkdirAll(out, 0o750); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrOutputCreateFailed, err.Error()), "path", out)
	}

	env, err := backend.Environment(ctx, conf)
	if err != nil {
		return err
	}
	conf.Environment = env
	return nil
}
