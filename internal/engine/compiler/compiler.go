// Package compiler implements the dependency-aware target compiler.
//
// Targets are compiled by a sequential, leaves-first recursive descent. Every
// source goes through the object cache before the backend is invoked, and
// externally built targets are handed to their delegate.
package compiler

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/hbuild/internal/engine/delegate"
	"go.trai.ch/zerr"
)

var _ ports.ProjectCompiler = (*Compiler)(nil)

// Compiler compiles targets and whole build descriptions.
// It is not safe for concurrent use.
type Compiler struct {
	logger    ports.Logger
	registry  ports.BackendRegistry
	loader    ports.DescriptionLoader
	store     ports.CacheStore
	hasher    ports.Hasher
	verifier  ports.Verifier
	telemetry ports.Telemetry
	delegates *delegate.Registry

	reporter *domain.Reporter
	owners   map[*domain.Target]*domain.Package
}

// New creates a new Compiler.
func New(
	logger ports.Logger,
	registry ports.BackendRegistry,
	loader ports.DescriptionLoader,
	store ports.CacheStore,
	hasher ports.Hasher,
	verifier ports.Verifier,
	telemetry ports.Telemetry,
	delegates *delegate.Registry,
) *Compiler {
	return &Compiler{
		logger:    logger,
		registry:  registry,
		loader:    loader,
		store:     store,
		hasher:    hasher,
		verifier:  verifier,
		telemetry: telemetry,
		delegates: delegates,
		reporter:  domain.NewReporter(),
		owners:    make(map[*domain.Target]*domain.Package),
	}
}

// Reporter returns the counters and measurements collected so far.
func (c *Compiler) Reporter() *domain.Reporter {
	return c.reporter
}

// ResetReporter starts a fresh report.
func (c *Compiler) ResetReporter() {
	c.reporter = domain.NewReporter()
}

// CompileTarget compiles t after every target it links and returns its
// effective public properties. A target compiled earlier in the same build
// returns the properties computed the first time.
func (c *Compiler) CompileTarget(
	ctx context.Context,
	conf *domain.Configuration,
	pkg *domain.Package,
	t *domain.Target,
) (domain.TargetProperties, error) {
	switch t.State() {
	case domain.StateCompiled:
		return t.Effective(), nil
	case domain.StateCompiling:
		return domain.TargetProperties{}, linkCycle(ctx, t)
	}

	backend, err := c.registry.Lookup(conf.Compiler)
	if err != nil {
		return domain.TargetProperties{}, err
	}

	t.MarkCompiling()
	ctx = withTarget(ctx, t)

	ctx, vertex := c.telemetry.Record(ctx, t.Name.String())
	stop := c.reporter.Track(t.Name.String())
	defer stop()

	c.logger.Info("compiling target", "target", t.Name.String(), "package", pkg.Name)

	var (
		props  domain.TargetProperties
		status domain.TargetStatus
	)
	if t.IsExternal() {
		props, status, err = c.compileExternal(ctx, conf, backend, t)
	} else {
		props, status, err = c.compileNative(ctx, conf, backend, pkg, t)
	}
	if err != nil {
		t.Reset()
		c.reporter.RecordArtefact(domain.Artefact{Target: t.Name.String(), Status: domain.StatusFailed})
		vertex.Complete(err)
		return domain.TargetProperties{}, err
	}

	if status == domain.StatusUpToDate {
		vertex.Cached()
	}
	vertex.Complete(nil)

	t.MarkCompiled(props)
	c.logger.Info("target compiled", "target", t.Name.String(), "status", string(status))
	return t.Effective(), nil
}

type targetChainKey struct{}

// withTarget appends t to the chain of targets being compiled.
func withTarget(ctx context.Context, t *domain.Target) context.Context {
	chain, _ := ctx.Value(targetChainKey{}).([]*domain.Target)
	return context.WithValue(ctx, targetChainKey{}, append(slices.Clone(chain), t))
}

// linkCycle reports the targets from the first entry of t on the chain back to t.
func linkCycle(ctx context.Context, t *domain.Target) error {
	chain, _ := ctx.Value(targetChainKey{}).([]*domain.Target)
	start := slices.Index(chain, t)
	if start < 0 {
		start = len(chain)
	}
	members := make([]string, 0, len(chain)-start+1)
	for _, member := range chain[start:] {
		members = append(members, member.Name.String())
	}
	members = append(members, t.Name.String())
	return zerr.With(domain.ErrCycleDetected, "cycle", strings.Join(members, " -> "))
}

// compileExternal hands t to its delegate. Relative include paths reported
// by the delegate are rewritten against the external location.
func (c *Compiler) compileExternal(
	ctx context.Context,
	conf *domain.Configuration,
	backend ports.Backend,
	t *domain.Target,
) (domain.TargetProperties, domain.TargetStatus, error) {
	result := t.Properties(domain.AccessPublic).WithoutLinks()

	builder, err := c.delegates.Lookup(t.External.Tool)
	if err != nil {
		return result, domain.StatusFailed, zerr.With(err, "target", t.Name.String())
	}

	location := absolutePath(t.External.Location, t.Dir)
	reported, err := builder.Build(ctx, ports.DelegateRequest{Target: t, Location: location, Conf: conf})
	if err != nil {
		return result, domain.StatusFailed, err
	}

	reported = reported.WithoutLinks()
	reported.Includes = absolutePaths(reported.Includes, location)
	result = result.Merge(reported)

	artefact, err := ArtefactPath(conf, backend, t)
	if err != nil {
		return result, domain.StatusFailed, err
	}

	var fingerprint string
	if t.External.Tool == domain.ToolSelf {
		if fingerprint, err = c.verifier.VerifyArtefact(artefact); err != nil {
			return result, domain.StatusFailed, zerr.With(err, "target", t.Name.String())
		}
	} else if !c.verifier.Exists(artefact) {
		c.logger.Warn("delegated artefact not found", "target", t.Name.String(), "path", artefact)
	}

	c.reporter.Increment(domain.CounterTargetsDelegated)
	c.reporter.RecordArtefact(domain.Artefact{
		Target:      t.Name.String(),
		Path:        artefact,
		Fingerprint: fingerprint,
		Status:      domain.StatusDelegated,
	})
	return result, domain.StatusDelegated, nil
}

// compileNative runs the scan, cache, compile and link pipeline of t.
func (c *Compiler) compileNative(
	ctx context.Context,
	conf *domain.Configuration,
	backend ports.Backend,
	pkg *domain.Package,
	t *domain.Target,
) (domain.TargetProperties, domain.TargetStatus, error) {
	result := t.Properties(domain.AccessPublic).WithoutLinks()
	local := result.Merge(t.Properties(domain.AccessPrivate).WithoutLinks())

	var libraries []string
	seenLibraries := make(map[string]struct{})
	addLibrary := func(dep *domain.Target) error {
		path, err := ArtefactPath(conf, backend, dep)
		if err != nil {
			return err
		}
		if _, dup := seenLibraries[path]; !dup {
			seenLibraries[path] = struct{}{}
			libraries = append(libraries, path)
		}
		return nil
	}

	for _, dep := range t.Links() {
		owner, ok := c.owners[dep]
		if !ok {
			owner = pkg
		}
		depProps, err := c.CompileTarget(ctx, conf, owner, dep)
		if err != nil {
			return result, domain.StatusFailed, err
		}

		local = local.Merge(depProps.WithoutLinks())
		if err := addLibrary(dep); err != nil {
			return result, domain.StatusFailed, err
		}
		for _, transitive := range depProps.Links {
			if err := addLibrary(transitive); err != nil {
				return result, domain.StatusFailed, err
			}
		}

		result = result.Merge(depProps)
		result = result.Merge(domain.TargetProperties{Links: []*domain.Target{dep}})
	}

	sources, err := c.resolveSources(t)
	if err != nil {
		return result, domain.StatusFailed, err
	}

	if err := checkObjectCollisions(conf, backend, t, sources); err != nil {
		return result, domain.StatusFailed, err
	}

	includes := absolutePaths(local.Includes, t.Dir)
	objects := make([]string, 0, len(sources))
	compiled := 0
	for _, src := range sources {
		obj, fresh, err := c.compileSource(ctx, conf, backend, t, src, includes, local.Macros)
		if err != nil {
			return result, domain.StatusFailed, err
		}
		if fresh {
			compiled++
		}
		objects = append(objects, obj)
	}

	artefact, err := ArtefactPath(conf, backend, t)
	if err != nil {
		return result, domain.StatusFailed, err
	}
	if err := c.link(ctx, conf, backend, t, objects, libraries, artefact); err != nil {
		return result, domain.StatusFailed, err
	}

	fingerprint, err := c.verifier.VerifyArtefact(artefact)
	if err != nil {
		return result, domain.StatusFailed, zerr.With(err, "target", t.Name.String())
	}

	status := domain.StatusUpToDate
	if compiled > 0 {
		status = domain.StatusCompiled
	}
	c.reporter.Increment(domain.CounterTargetsCompiled)
	c.reporter.RecordArtefact(domain.Artefact{
		Target:      t.Name.String(),
		Path:        artefact,
		Fingerprint: fingerprint,
		Status:      status,
	})
	return result, status, nil
}

// resolveSources resolves every source against the description directory
// and reports all missing sources together.
func (c *Compiler) resolveSources(t *domain.Target) ([]domain.SourceFile, error) {
	sources := make([]domain.SourceFile, 0, len(t.Sources))
	var missing []string
	for _, src := range t.Sources {
		path := absolutePath(src.Path, t.Dir)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if !c.verifier.Exists(path) {
			missing = append(missing, path)
			continue
		}
		sources = append(sources, domain.SourceFile{Path: path, Language: src.Language})
	}
	if len(missing) > 0 {
		return nil, &domain.MissingSourcesError{Target: t.Name.String(), Paths: missing}
	}
	return sources, nil
}

// checkObjectCollisions fails when two sources of t would write the same object file.
func checkObjectCollisions(conf *domain.Configuration, backend ports.Backend, t *domain.Target, sources []domain.SourceFile) error {
	owners := make(map[string]string, len(sources))
	for _, src := range sources {
		obj := objectPath(conf, backend, t, src.Path)
		if other, ok := owners[obj]; ok && other != src.Path {
			err := zerr.With(domain.ErrObjectCollision, "target", t.Name.String())
			err = zerr.With(err, "object", obj)
			return zerr.With(err, "sources", other+", "+src.Path)
		}
		owners[obj] = src.Path
	}
	return nil
}

// compileSource compiles one source unless its cache entry is current.
// It reports whether the backend was invoked.
func (c *Compiler) compileSource(
	ctx context.Context,
	conf *domain.Configuration,
	backend ports.Backend,
	t *domain.Target,
	src domain.SourceFile,
	includes []string,
	macros map[string]string,
) (string, bool, error) {
	opts := domain.DeriveCompileOptions(conf.BuildType, src.Language)
	obj := objectPath(conf, backend, t, src.Path)
	if err := os.MkdirAll(filepath.Dir(obj), 0o750); err != nil {
		return "", false, zerr.With(zerr.Wrap(domain.ErrOutputCreateFailed, err.Error()), "path", filepath.Dir(obj))
	}

	headers, err := backend.ScanHeaders(ctx, domain.ScanRequest{
		Source:   src.Path,
		Includes: includes,
		Macros:   macros,
		Standard: opts.Standard,
		Env:      conf.Environment,
		Dir:      t.Dir,
		Timeout:  conf.Timeout,
	})
	if err != nil {
		return "", false, zerr.With(err, "target", t.Name.String())
	}

	digest, err := c.hasher.Digest(ctx, src.Path, headers, opts)
	if err != nil {
		return "", false, zerr.With(err, "target", t.Name.String())
	}

	if cached, ok := conf.LocalCache[obj]; ok && cached == digest && c.verifier.Exists(obj) {
		c.reporter.Increment(domain.CounterCacheHits)
		c.logger.Debug("cache hit", "target", t.Name.String(), "source", src.Path)
		return obj, false, nil
	}

	c.reporter.Increment(domain.CounterCacheMisses)
	c.logger.Debug("cache miss", "target", t.Name.String(), "source", src.Path)

	res, err := backend.Compile(ctx, domain.CompileRequest{
		Sources:  []string{src.Path},
		Output:   obj,
		Kind:     domain.OutputObject,
		Includes: includes,
		Macros:   macros,
		Options:  opts,
		Env:      conf.Environment,
		Dir:      t.Dir,
		Timeout:  conf.Timeout,
	})
	if err != nil {
		return "", false, zerr.With(err, "target", t.Name.String())
	}
	if !res.Success() {
		return "", false, &domain.BackendError{
			Step:       domain.StepCompile,
			Target:     t.Name.String(),
			Path:       src.Path,
			ReturnCode: res.ReturnCode,
			Output:     res.Output,
		}
	}

	conf.LocalCache[obj] = digest
	c.reporter.Increment(domain.CounterObjectsCompiled)
	return obj, true, nil
}

// link produces the artefact of t. Executables and dynamic libraries get a
// sibling debug info file.
func (c *Compiler) link(
	ctx context.Context,
	conf *domain.Configuration,
	backend ports.Backend,
	t *domain.Target,
	objects, libraries []string,
	artefact string,
) error {
	req := domain.LinkRequest{
		Objects:   objects,
		Output:    artefact,
		Kind:      domain.OutputKindFor(t.Kind),
		Libraries: libraries,
		DebugInfo: domain.DeriveCompileOptions(conf.BuildType, domain.LanguageC).DebugInfo,
		Env:       conf.Environment,
		Dir:       t.Dir,
		Timeout:   conf.Timeout,
	}
	if t.Kind != domain.KindStaticLibrary {
		req.DebugInfoPath = debugInfoPath(artefact)
	}

	res, err := backend.Link(ctx, req)
	if err != nil {
		return zerr.With(err, "target", t.Name.String())
	}
	if !res.Success() {
		return &domain.BackendError{
			Step:       domain.StepLink,
			Target:     t.Name.String(),
			Path:       artefact,
			ReturnCode: res.ReturnCode,
			Output:     res.Output,
		}
	}
	c.reporter.Increment(domain.CounterLinks)
	return nil
}
