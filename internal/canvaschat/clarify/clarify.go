// Package clarify implements the per-thread "awaiting more information"
// state: a command that was recognised but underspecified parks its text
// here, and the next turn is merged into it before being re-dispatched.
//
// The machine has exactly two states. Any Take resets it to Idle, whatever
// the merged command later produces, so a second ambiguous answer opens a
// fresh clarification instead of chaining onto the first.
package clarify

import (
	"fmt"
	"strings"
	"sync"
)

// Status is the machine state.
type Status int

const (
	// Idle means no clarification is outstanding.
	Idle Status = iota
	// Awaiting means the thread waits for a value of kind Expected.
	Awaiting
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Awaiting:
		return "awaiting_input"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is the outstanding clarification of a thread.
type State struct {
	Status   Status
	Expected string // kind of value asked for, e.g. "color"
	Original string // command text that triggered the question
}

// Machine holds the clarification state of one chat thread. It is safe for
// concurrent use.
type Machine struct {
	mu    sync.Mutex
	state State
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Pending reports whether a clarification is outstanding.
func (m *Machine) Pending() bool {
	return m.State().Status == Awaiting
}

// Await moves the machine to Awaiting, replacing any outstanding state.
func (m *Machine) Await(expected, original string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Status: Awaiting, Expected: expected, Original: original}
}

// Take merges text into the outstanding command and resets to Idle. When
// nothing is outstanding it returns text unchanged and false.
func (m *Machine) Take(text string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state
	m.state = State{}
	if st.Status != Awaiting {
		return text, false
	}
	return Merge(st.Original, st.Expected, text), true
}

// Reset discards any outstanding clarification.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{}
}

// Merge renders "<original> (<expected>: <text>)".
func Merge(original, expected, text string) string {
	return fmt.Sprintf("%s (%s: %s)", strings.TrimSpace(original), expected, strings.TrimSpace(text))
}
