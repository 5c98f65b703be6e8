package pipeline

import (
	"errors"
	"fmt"
	"slices"
)

// State is a step of a pipeline run.
type State string

const (
	StateReceived    State = "received"
	StateParsed      State = "parsed"
	StateCategorized State = "categorized"
	StatePersisted   State = "persisted"
	StateEvaluated   State = "evaluated"
	StateAlerted     State = "alerted"
	StateSummarized  State = "summarized"
	StateAdvised     State = "advised"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

var ErrInvalidTransition = errors.New("invalid state transition")

// transitions lists the states that can follow each state. A run can only
// fail before the transaction is persisted.
var transitions = map[State][]State{
	StateReceived:    {StateParsed, StateFailed},
	StateParsed:      {StateCategorized, StateFailed},
	StateCategorized: {StatePersisted, StateFailed},
	StatePersisted:   {StateEvaluated},
	StateEvaluated:   {StateAlerted, StateSummarized},
	StateAlerted:     {StateSummarized},
	StateSummarized:  {StateAdvised, StateDone},
	StateAdvised:     {StateDone},
}

// CanTransition reports if to may follow s.
func (s State) CanTransition(to State) bool {
	return slices.Contains(transitions[s], to)
}

// Terminal reports if no state can follow s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Machine tracks the states of a single run.
type Machine struct {
	history []State
}

func NewMachine() *Machine {
	return &Machine{history: []State{StateReceived}}
}

// Current is the state the run is in.
func (m *Machine) Current() State {
	return m.history[len(m.history)-1]
}

// History returns all states the run has been in, in order.
func (m *Machine) History() []State {
	return slices.Clone(m.history)
}

// Advance moves the run to the next state.
func (m *Machine) Advance(to State) error {
	if !m.Current().CanTransition(to) {
		return fmt.Errorf("%w from %s to %s", ErrInvalidTransition, m.Current(), to)
	}

	m.history = append(m.history, to)
	return nil
}
