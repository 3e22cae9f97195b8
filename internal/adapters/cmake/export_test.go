package cmake

// WithLookPath replaces the executable lookup.
func (b *Builder) WithLookPath(fn func(string, map[string]string) (string, error)) *Builder {
	b.lookPath = fn
	return b
}
