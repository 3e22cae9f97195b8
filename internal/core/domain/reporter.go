package domain

import (
	"maps"
	"time"
)

// Counter names written by the target compiler.
const (
	CounterCacheHits        = "cache_hits"
	CounterCacheMisses      = "cache_misses"
	CounterObjectsCompiled  = "objects_compiled"
	CounterTargetsCompiled  = "targets_compiled"
	CounterTargetsDelegated = "targets_delegated"
	CounterLinks            = "links"
)

// Measurement is one labelled duration.
type Measurement struct {
	Label    string
	Duration time.Duration
}

// Artefact is a produced file and its content fingerprint.
type Artefact struct {
	Target      string
	Path        string
	Fingerprint string
	Status      TargetStatus
}

// Reporter collects counters and measurements during a build.
// It is written by the target compiler and read by a report printer.
type Reporter struct {
	counters     map[string]int
	measurements []Measurement
	artefacts    []Artefact
	now          func() time.Time
}

// NewReporter creates an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{
		counters: make(map[string]int),
		now:      time.Now,
	}
}

// Increment adds one to a counter.
func (r *Reporter) Increment(name string) {
	r.counters[name]++
}

// Decrement subtracts one from a counter.
func (r *Reporter) Decrement(name string) {
	r.counters[name]--
}

// Counter returns the value of a counter.
func (r *Reporter) Counter(name string) int {
	return r.counters[name]
}

// Counters returns a copy of every counter.
func (r *Reporter) Counters() map[string]int {
	return maps.Clone(r.counters)
}

// Measure records a duration under a label.
func (r *Reporter) Measure(label string, d time.Duration) {
	r.measurements = append(r.measurements, Measurement{Label: label, Duration: d})
}

// Track starts a measurement and returns the function that stops it.
func (r *Reporter) Track(label string) func() {
	start := r.now()
	return func() {
		r.Measure(label, r.now().Sub(start))
	}
}

// Measurements returns every measurement in recording order.
func (r *Reporter) Measurements() []Measurement {
	out := make([]Measurement, len(r.measurements))
	copy(out, r.measurements)
	return out
}

// RecordArtefact remembers a produced artefact.
func (r *Reporter) RecordArtefact(a Artefact) {
	r.artefacts = append(r.artefacts, a)
}

// Artefacts returns every recorded artefact in build order.
func (r *Reporter) Artefacts() []Artefact {
	out := make([]Artefact, len(r.artefacts))
	copy(out, r.artefacts)
	return out
}
