// Package navigation implements the view state machine of a session.
//
//	Login      --LoginSucceeded(Onboarding|Dashboard)--> target
//	Onboarding --GradeSelected-->                        Dashboard
//	Dashboard  --Open(Learn|Quiz|History|Settings)-->    that view
//	Learn      --LearningCompleted | Exit-->             Dashboard
//	Quiz       --QuizCompleted | Exit-->                 Dashboard
//	History    --Back | Exit-->                          Dashboard
//	Settings   --Back | Exit-->                          Dashboard
//	any authenticated view --Logout-->                   Login
//
// Anything else is rejected with ErrInvalidTransition and leaves the
// state as it was.
package navigation

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
)

var ErrInvalidTransition = errors.New("invalid view transition")

// EventKind names a navigation event.
type EventKind string

const (
	LoginSucceeded    EventKind = "login-succeeded"
	GradeSelected     EventKind = "grade-selected"
	Open              EventKind = "open"
	LearningCompleted EventKind = "learning-completed"
	QuizCompleted     EventKind = "quiz-completed"
	Exit              EventKind = "exit"
	Back              EventKind = "back"
	Logout            EventKind = "logout"
)

// Event is a navigation trigger. Target is used by LoginSucceeded and Open.
type Event struct {
	Kind   EventKind
	Target models.View
}

func (e Event) String() string {
	if e.Target != "" {
		return fmt.Sprintf("%s(%s)", e.Kind, e.Target)
	}
	return string(e.Kind)
}

// Navigator holds the current view. Every accepted transition increments
// Epoch, so a caller can tell whether the view changed between two reads
// even when it returned to the same screen.
type Navigator struct {
	view  models.View
	epoch uint64
}

// New returns a navigator positioned at the Login view.
func New() *Navigator {
	return &Navigator{view: models.ViewLogin}
}

func (n *Navigator) View() models.View { return n.view }

func (n *Navigator) Epoch() uint64 { return n.epoch }

// Reset places the navigator at the view chosen by the session resolver.
func (n *Navigator) Reset(v models.View) error {
	if !v.Valid() {
		return fmt.Errorf("reset to %q: %w", v, ErrInvalidTransition)
	}
	n.view = v
	n.epoch++
	return nil
}

// Next computes the view that follows e from the current view without
// changing state.
func (n *Navigator) Next(e Event) (models.View, error) {
	next, ok := transition(n.view, e)
	if !ok {
		return n.view, fmt.Errorf("%s from %s: %w", e, n.view, ErrInvalidTransition)
	}
	return next, nil
}

// Fire applies e.
func (n *Navigator) Fire(e Event) (models.View, error) {
	next, err := n.Next(e)
	if err != nil {
		return n.view, err
	}
	n.view = next
	n.epoch++
	return next, nil
}

func transition(from models.View, e Event) (models.View, bool) {
	if e.Kind == Logout {
		return models.ViewLogin, from.Authenticated()
	}

	switch from {
	case models.ViewLogin:
		if e.Kind == LoginSucceeded && (e.Target == models.ViewOnboarding || e.Target == models.ViewDashboard) {
			return e.Target, true
		}
	case models.ViewOnboarding:
		if e.Kind == GradeSelected {
			return models.ViewDashboard, true
		}
	case models.ViewDashboard:
		if e.Kind == Open {
			switch e.Target {
			case models.ViewLearn, models.ViewQuiz, models.ViewHistory, models.ViewSettings:
				return e.Target, true
			}
		}
	case models.ViewLearn:
		if e.Kind == LearningCompleted || e.Kind == Exit {
			return models.ViewDashboard, true
		}
	case models.ViewQuiz:
		if e.Kind == QuizCompleted || e.Kind == Exit {
			return models.ViewDashboard, true
		}
	case models.ViewHistory, models.ViewSettings:
		if e.Kind == Back || e.Kind == Exit {
			return models.ViewDashboard, true
		}
	}
	return from, false
}
