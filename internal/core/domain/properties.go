package domain

import (
	"maps"
	"strings"

	"go.trai.ch/zerr"
)

// Access is the visibility of a declared property.
type Access int

const (
	// AccessPublic properties propagate to every transitive dependent.
	AccessPublic Access = iota + 1
	// AccessPrivate properties affect only the declaring target.
	AccessPrivate
)

// String returns the declaration name of the access level.
func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "PUBLIC"
	case AccessPrivate:
		return "PRIVATE"
	default:
		return "UNKNOWN"
	}
}

// ParseAccess converts a declaration string into an Access.
func ParseAccess(s string) (Access, error) {
	switch strings.ToUpper(s) {
	case "PUBLIC":
		return AccessPublic, nil
	case "PRIVATE":
		return AccessPrivate, nil
	default:
		return 0, zerr.With(ErrUnknownAccess, "access", s)
	}
}

// TargetProperties is the set of compile and link properties of a target.
type TargetProperties struct {
	// Includes is in search-priority order.
	Includes []string
	Macros   map[string]string
	// Links are dependency edges. They never own the referenced targets.
	Links []*Target
}

// Merge combines p with other into a new set.
// Includes are concatenated with p's entries first. Macros are unioned and
// other wins on a key collision. Links are concatenated without duplicates.
func (p TargetProperties) Merge(other TargetProperties) TargetProperties {
	out := TargetProperties{}

	if n := len(p.Includes) + len(other.Includes); n > 0 {
		out.Includes = make([]string, 0, n)
		out.Includes = append(out.Includes, p.Includes...)
		out.Includes = append(out.Includes, other.Includes...)
	}

	if len(p.Macros)+len(other.Macros) > 0 {
		out.Macros = make(map[string]string, len(p.Macros)+len(other.Macros))
		maps.Copy(out.Macros, p.Macros)
		maps.Copy(out.Macros, other.Macros)
	}

	if len(p.Links)+len(other.Links) > 0 {
		seen := make(map[*Target]struct{}, len(p.Links)+len(other.Links))
		for _, l := range p.Links {
			out.Links = appendUnique(out.Links, seen, l)
		}
		for _, l := range other.Links {
			out.Links = appendUnique(out.Links, seen, l)
		}
	}

	return out
}

// Clone returns a deep copy of the slices and map.
func (p TargetProperties) Clone() TargetProperties {
	return TargetProperties{}.Merge(p)
}

// IsEmpty reports whether the set carries no value at all.
func (p TargetProperties) IsEmpty() bool {
	return len(p.Includes) == 0 && len(p.Macros) == 0 && len(p.Links) == 0
}

// WithoutLinks returns a copy holding only includes and macros.
func (p TargetProperties) WithoutLinks() TargetProperties {
	c := p.Clone()
	c.Links = nil
	return c
}

func appendUnique(dst []*Target, seen map[*Target]struct{}, t *Target) []*Target {
	if _, ok := seen[t]; ok {
		return dst
	}
	seen[t] = struct{}{}
	return append(dst, t)
}
