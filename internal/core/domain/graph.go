// Package domain contains the core domain models of the build engine: targets,
// their property sets, packages and the link graph between them.
package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the link graph of a build set.
type Graph struct {
	targets        map[InternedString]*Target
	declared       []InternedString
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets: make(map[InternedString]*Target),
	}
}

// NewGraphFromPackages adds every target of every package to a new graph.
func NewGraphFromPackages(pkgs []*Package) (*Graph, error) {
	g := NewGraph()
	for _, pkg := range pkgs {
		for _, t := range pkg.Targets {
			if err := g.AddTarget(t); err != nil {
				return nil, zerr.With(err, "package", pkg.Name)
			}
		}
	}
	return g, nil
}

// AddTarget adds a target to the graph.
// It returns an error if a target with the same name already exists.
func (g *Graph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Name]; exists {
		return zerr.With(ErrTargetAlreadyExists, "target_name", t.Name.String())
	}
	g.targets[t.Name] = t
	g.declared = append(g.declared, t.Name)
	return nil
}

// Len returns the number of targets in the graph.
func (g *Graph) Len() int {
	return len(g.targets)
}

// Validate checks that every link points into the graph and that links form no cycle.
// It populates a leaves-first execution order if successful.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.targets))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.targets[u].Links() {
			if g.targets[dep.Name] != dep {
				return zerr.With(zerr.With(ErrMissingDependency, "dependency", dep.Name.String()), "target", u.String())
			}
			if visited[dep.Name] == 1 {
				return g.buildCycleError(path, dep.Name)
			}
			if visited[dep.Name] == 0 {
				if err := visit(dep.Name); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	// Declaration order keeps the traversal deterministic.
	for _, name := range g.declared {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	var members []string
	for i, node := range path {
		if node == dep {
			for _, n := range path[i:] {
				members = append(members, n.String())
			}
			break
		}
	}
	members = append(members, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(members, " -> "))
}

// Walk returns an iterator that yields targets leaves first.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[*Target] {
	return func(yield func(*Target) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.targets[name]) {
				return
			}
		}
	}
}
