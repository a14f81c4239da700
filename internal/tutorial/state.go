package tutorial

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Steps is the number of numbered tutorial steps.
const Steps = 5

// State is a position in the tutorial. The zero value is not valid; use New.
// Once complete, a State never returns to a numbered step.
type State struct {
	step     int
	complete bool
}

// New returns the initial state: step 1, not complete.
func New() State { return State{step: 1} }

// Step returns the current step in [1, Steps].
func (s State) Step() int { return s.step }

// Complete reports whether the tutorial has been finished.
func (s State) Complete() bool { return s.complete }

// Next advances one step. It is a no-op at the last step and once complete.
func (s State) Next() State {
	if s.complete || s.step >= Steps {
		return s
	}
	s.step++
	return s
}

// Previous moves back one step. It is a no-op at step 1 and once complete.
func (s State) Previous() State {
	if s.complete || s.step <= 1 {
		return s
	}
	s.step--
	return s
}

// Finish completes the tutorial from the last step. It is a no-op elsewhere.
func (s State) Finish() State {
	if s.step == Steps {
		s.complete = true
	}
	return s
}

// CanFinish reports whether Finish would complete the tutorial.
func (s State) CanFinish() bool { return !s.complete && s.step == Steps }

func (s State) String() string {
	if s.complete {
		return "complete"
	}
	return fmt.Sprintf("step %d/%d", s.step, Steps)
}

// Action is a tutorial navigation command.
type Action int

const (
	ActionNext Action = iota
	ActionPrevious
	ActionFinish
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionPrevious:
		return "previous"
	case ActionFinish:
		return "finish"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction accepts "next", "prev"/"previous", "finish" and their single
// letter forms.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next", "n":
		return ActionNext, nil
	case "prev", "previous", "back", "p":
		return ActionPrevious, nil
	case "finish", "done", "f":
		return ActionFinish, nil
	}
	return 0, fmt.Errorf("unknown tutorial action %q", s)
}

// Apply performs a. Unknown actions leave the state unchanged.
func (s State) Apply(a Action) State {
	switch a {
	case ActionNext:
		return s.Next()
	case ActionPrevious:
		return s.Previous()
	case ActionFinish:
		return s.Finish()
	}
	return s
}

// Session binds a tutorial State to one interactive session.
type Session struct {
	ID    uuid.UUID
	State State
}

// NewSession starts a session at the initial state.
func NewSession() *Session {
	return &Session{ID: uuid.New(), State: New()}
}

// Apply performs a on the session state and returns the new state.
func (s *Session) Apply(a Action) State {
	s.State = s.State.Apply(a)
	return s.State
}

// Page returns the content for the current step.
func (s *Session) Page() Page { return PageFor(s.State.Step()) }
