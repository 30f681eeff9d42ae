package fsm

import (
	"fmt"
)

// Event identifies a hook point.
type Event string

const (
	EventEnter Event = "enter"
	EventCycle Event = "cycle"
	EventExit  Event = "exit"
	EventFail  Event = "fail"
)

// AnyState registers a hook for every state. Generic hooks run before the
// hooks bound to a specific state.
const AnyState = "*"

// Hook is invoked with the triggering signal kind and its payload.
// The boolean result means "handled": for exit hooks it cancels the
// transition, for fail hooks it marks the failure as resolved.
type Hook[T any] func(m *Machine[T], kind string, data T) (bool, error)

type hookKey struct {
	state string
	event Event
}

// WrongSignalError reports a signal the current state cannot accept.
type WrongSignalError struct {
	Kind    string
	State   string
	Context string
}

func (e *WrongSignalError) Error() string {
	msg := fmt.Sprintf("can't process signal %q in state %q", e.Kind, e.State)
	if e.Context != "" {
		msg += ": " + e.Context
	}
	return msg
}

// Is lets errors.Is match ErrWrongSignal.
func (e *WrongSignalError) Is(target error) bool {
	return target == ErrWrongSignal
}

// Machine runs a fixed set of states. Exactly one state is current.
type Machine[T any] struct {
	states  map[string]*State
	current *State
	prev    *State
	hooks   map[hookKey][]Hook[T]

	// ContextFunc, when set, supplies diagnostic context for WrongSignalError.
	ContextFunc func() string
}

// New creates a machine from state definitions. If initial is empty the
// first state is used.
func New[T any](states []State, initial string) (*Machine[T], error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: expected at least one state", ErrInvalidState)
	}

	m := &Machine[T]{
		states: make(map[string]*State, len(states)),
		hooks:  make(map[hookKey][]Hook[T]),
	}
	for i := range states {
		st := states[i]
		if err := st.validate(); err != nil {
			return nil, err
		}
		if _, dup := m.states[st.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate state %q", ErrInvalidState, st.Name)
		}
		m.states[st.Name] = &st
	}
	for _, st := range m.states {
		for kind, target := range st.Next {
			if _, ok := m.states[target]; !ok {
				return nil, fmt.Errorf("%w: state %q: signal %q leads to undefined state %q",
					ErrInvalidState, st.Name, kind, target)
			}
		}
	}

	if initial == "" {
		initial = states[0].Name
	}
	cur, ok := m.states[initial]
	if !ok {
		return nil, fmt.Errorf("%w: initial state %q", ErrUnknownState, initial)
	}
	m.current = cur
	return m, nil
}

// On registers a hook for the given state (or AnyState) and event.
func (m *Machine[T]) On(state string, event Event, hook Hook[T]) {
	k := hookKey{state: state, event: event}
	m.hooks[k] = append(m.hooks[k], hook)
}

// State returns the current state name.
func (m *Machine[T]) State() string {
	return m.current.Name
}

// Previous returns the name of the state before the last switch, or "".
func (m *Machine[T]) Previous() string {
	if m.prev == nil {
		return ""
	}
	return m.prev.Name
}

// Signal feeds one signal to the machine.
func (m *Machine[T]) Signal(kind string, data T) error {
	st := m.current

	if st.cycles(kind) {
		_, err := m.dispatch(EventCycle, kind, data)
		return err
	}

	if target, ok := st.Next[kind]; ok {
		cancel, err := m.dispatch(EventExit, kind, data)
		if err != nil || cancel {
			return err
		}
		m.switchTo(m.states[target])
		_, err = m.dispatch(EventEnter, kind, data)
		return err
	}

	resolved, err := m.dispatch(EventFail, kind, data)
	if err != nil {
		return err
	}
	if resolved {
		return nil
	}

	wrong := &WrongSignalError{Kind: kind, State: st.Name}
	if m.ContextFunc != nil {
		wrong.Context = m.ContextFunc()
	}
	return wrong
}

// SetState forces the machine into the named state. Exit and enter hooks run
// only when runHooks is true; an exit hook cannot cancel a forced switch.
func (m *Machine[T]) SetState(name string, runHooks bool) error {
	next, ok := m.states[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}

	var zero T
	if runHooks {
		if _, err := m.dispatch(EventExit, "", zero); err != nil {
			return err
		}
	}
	m.switchTo(next)
	if runHooks {
		if _, err := m.dispatch(EventEnter, "", zero); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine[T]) switchTo(next *State) {
	m.prev = m.current
	m.current = next
}

// dispatch runs generic hooks, then the current state's hooks.
func (m *Machine[T]) dispatch(event Event, kind string, data T) (bool, error) {
	handled := false
	for _, key := range []hookKey{{AnyState, event}, {m.current.Name, event}} {
		for _, h := range m.hooks[key] {
			ok, err := h(m, kind, data)
			if err != nil {
				return handled, err
			}
			handled = handled || ok
		}
	}
	return handled, nil
}
