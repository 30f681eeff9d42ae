package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrStageAlreadyRegistered is returned when registering a duplicate stage.
	ErrStageAlreadyRegistered = errors.New("stage already registered")

	// ErrStageNotFound is returned when a stage or a stage dependency is not found.
	ErrStageNotFound = errors.New("stage not found")

	// ErrDependencyCycle is returned when stage dependencies form a cycle.
	ErrDependencyCycle = errors.New("dependency cycle detected")
)

// Registry manages available stages and their dependencies.
type Registry struct {
	mu     sync.RWMutex
	stages map[string]Stage
	order  []string
}

// NewRegistry creates an empty stage registry.
func NewRegistry() *Registry {
	return &Registry{
		stages: make(map[string]Stage),
		order:  make([]string, 0),
	}
}

// DefaultRegistry returns a registry with the built-in stages.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range []Stage{SignalsStage{}, ParseStage{}, ExtractStage{}} {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a stage. Names must be unique.
func (r *Registry) Register(s Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.stages[name]; exists {
		return fmt.Errorf("%w: %s", ErrStageAlreadyRegistered, name)
	}

	r.stages[name] = s
	r.order = append(r.order, name)
	return nil
}

// Get returns a stage by name.
func (r *Registry) Get(name string) (Stage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stages[name]
	return s, ok
}

// Names returns all stage names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// GetOrdered returns every registered stage, dependencies first.
func (r *Registry) GetOrdered() ([]Stage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ordered(r.order)
}

// Plan returns the named stages and everything they depend on, ordered so
// that dependencies run first.
func (r *Registry) Plan(names ...string) ([]Stage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[string]bool)
	var visit func(name string) error
	visit = func(name string) error {
		if want[name] {
			return nil
		}
		stage, ok := r.stages[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrStageNotFound, name)
		}
		want[name] = true
		for _, dep := range stage.Dependencies() {
			if err := visit(dep); err != nil {
				return fmt.Errorf("stage %q: %w", name, err)
			}
		}
		return nil
	}
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	var subset []string
	for _, name := range r.order {
		if want[name] {
			subset = append(subset, name)
		}
	}
	return r.ordered(subset)
}

// ordered sorts the given stages so that every stage follows its
// dependencies. Ties keep registration order. Callers hold the lock.
func (r *Registry) ordered(names []string) ([]Stage, error) {
	waiting := make(map[string]int, len(names))
	dependents := make(map[string][]string)
	for _, name := range names {
		deps := r.stages[name].Dependencies()
		for _, dep := range deps {
			if _, ok := r.stages[dep]; !ok {
				return nil, fmt.Errorf("%w: stage %q depends on %q", ErrStageNotFound, name, dep)
			}
			dependents[dep] = append(dependents[dep], name)
		}
		waiting[name] = len(deps)
	}

	ready := slices.DeleteFunc(slices.Clone(names), func(n string) bool { return waiting[n] > 0 })
	out := make([]Stage, 0, len(names))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		out = append(out, r.stages[name])
		for _, d := range dependents[name] {
			if waiting[d]--; waiting[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(out) != len(names) {
		return nil, ErrDependencyCycle
	}
	return out, nil
}

// Validate checks that all stage dependencies exist and form no cycle.
func (r *Registry) Validate() error {
	_, err := r.GetOrdered()
	return err
}

// Run executes the named stages and their dependencies in order.
func (r *Registry) Run(ctx context.Context, opts *Options, names ...string) ([]*Result, error) {
	stages, err := r.Plan(names...)
	if err != nil {
		return nil, err
	}

	logger := opts.logger()
	var results []*Result
	for _, s := range stages {
		logger.Info("running stage", "stage", s.Name())
		res, err := s.Run(ctx, opts)
		if err != nil {
			return results, fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		results = append(results, res)
	}
	return results, nil
}
