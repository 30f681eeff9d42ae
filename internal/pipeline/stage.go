package pipeline

import (
	"context"
	"sort"
)

// Stage is one step of a run. Stages read their inputs and write their
// outputs through the paths in Options, so a stage can run on the output of
// an earlier run as well as right after its dependencies.
type Stage interface {
	// Identity
	Name() string           // e.g., "parse", "extract"
	Dependencies() []string // Stages that must complete first

	Description() string

	Run(ctx context.Context, opts *Options) (*Result, error)
}

// Result reports what a stage produced.
type Result struct {
	Stage   string         `json:"stage" yaml:"stage"`
	Counts  map[string]int `json:"counts" yaml:"counts"`
	Outputs []string       `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

func newResult(stage string) *Result {
	return &Result{Stage: stage, Counts: make(map[string]int)}
}

// CountKeys returns the count names in sorted order.
func (r *Result) CountKeys() []string {
	keys := make([]string, 0, len(r.Counts))
	for k := range r.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
