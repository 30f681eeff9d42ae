// Package fsm provides a small deterministic state machine driven by string
// signals. States declare which signals keep them in place (cycle) and which
// move the machine elsewhere (transitions); behaviour is attached through
// enter/cycle/exit/fail hooks.
package fsm

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fsm package.
var (
	// ErrInvalidState is returned when a state definition breaks an invariant.
	ErrInvalidState = errors.New("invalid state definition")

	// ErrUnknownState is returned when a state name is not defined.
	ErrUnknownState = errors.New("unknown state")

	// ErrWrongSignal is matched by WrongSignalError.
	ErrWrongSignal = errors.New("wrong signal")
)

// State is a declarative state definition.
type State struct {
	Name string

	// Cycle lists signal kinds that keep the machine in this state.
	Cycle []string

	// Next maps a signal kind to the name of the state it leads to.
	Next map[string]string
}

// Transition is one entry of a state's Next table.
type Transition struct {
	Kind   string
	Target string
}

// Edge is a transition to the state named like the signal kind.
func Edge(kind string) Transition {
	return Transition{Kind: kind, Target: kind}
}

// EdgeTo is a transition on kind to a differently named state.
func EdgeTo(kind, target string) Transition {
	return Transition{Kind: kind, Target: target}
}

// NewState builds a State from a cycle list and transitions.
func NewState(name string, cycle []string, next ...Transition) State {
	st := State{Name: name, Cycle: cycle, Next: make(map[string]string, len(next))}
	for _, t := range next {
		st.Next[t.Kind] = t.Target
	}
	return st
}

// cycles reports whether kind keeps the machine in this state.
func (s *State) cycles(kind string) bool {
	for _, c := range s.Cycle {
		if c == kind {
			return true
		}
	}
	return false
}

// validate checks the state's own invariants. Self-transitions must be
// expressed through Cycle, never as explicit edges.
func (s *State) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty state name", ErrInvalidState)
	}
	if _, ok := s.Next[s.Name]; ok {
		return fmt.Errorf("%w: state %q has a transition keyed by its own name", ErrInvalidState, s.Name)
	}
	for _, c := range s.Cycle {
		if _, ok := s.Next[c]; ok {
			return fmt.Errorf("%w: state %q has %q both in cycle and transitions", ErrInvalidState, s.Name, c)
		}
	}
	return nil
}
