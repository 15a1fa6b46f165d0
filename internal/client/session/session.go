// Package session holds the state of one running client: the active
// identity, its profile and the current view.
//
// Every mutation follows the same order: compute the new profile with
// package progress, write it to the store, then move the navigator. When the
// write fails nothing changes in memory and the error is returned.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/client/navigation"
	"github.com/dmitrijs2005/lexiconquest/internal/client/progress"
	"github.com/dmitrijs2005/lexiconquest/internal/client/services"
	"github.com/dmitrijs2005/lexiconquest/internal/client/store"
	"github.com/dmitrijs2005/lexiconquest/internal/logging"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Persister writes whole profile records.
type Persister interface {
	Set(ctx context.Context, key string, p models.Profile) error
}

// Ticket identifies the view a pending request was started from.
type Ticket struct {
	view  models.View
	epoch uint64
}

type Session struct {
	resolver services.SessionService
	store    Persister
	logger   logging.Logger

	nav      *navigation.Navigator
	identity *models.Identity
	profile  models.Profile
}

// New returns a logged-out session at the Login view.
func New(resolver services.SessionService, p Persister, logger logging.Logger) *Session {
	return &Session{
		resolver: resolver,
		store:    p,
		logger:   logger,
		nav:      navigation.New(),
		profile:  models.DefaultProfile(),
	}
}

// Login activates id and enters the view the resolver picked.
func (s *Session) Login(ctx context.Context, id models.Identity) error {
	if _, err := s.nav.Next(navigation.Event{Kind: navigation.LoginSucceeded, Target: models.ViewDashboard}); err != nil {
		return err
	}

	p, view, err := s.resolver.Resolve(ctx, &id)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if _, err := s.nav.Fire(navigation.Event{Kind: navigation.LoginSucceeded, Target: view}); err != nil {
		return err
	}

	s.identity = &id
	s.profile = p
	s.logger.Info(ctx, "logged in", "identity", id.ID, "view", view)
	return nil
}

// Restore logs back in as the identity of the previous run, if any. It
// reports whether a session was restored.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	id, err := s.resolver.Restore(ctx)
	if err != nil {
		return false, err
	}
	if id == nil {
		return false, nil
	}
	if err := s.Login(ctx, *id); err != nil {
		return false, err
	}
	return true, nil
}

// Logout clears the session marker, drops the in-memory profile and returns
// to Login. The stored profile is kept for the next login.
func (s *Session) Logout(ctx context.Context) error {
	if s.identity == nil {
		return ErrNotLoggedIn
	}
	if _, err := s.nav.Next(navigation.Event{Kind: navigation.Logout}); err != nil {
		return err
	}

	p, view, err := s.resolver.Resolve(ctx, nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.nav.Reset(view); err != nil {
		return err
	}

	s.logger.Info(ctx, "logged out", "identity", s.identity.ID)
	s.identity = nil
	s.profile = p
	return nil
}

// SelectGrade finishes onboarding.
func (s *Session) SelectGrade(ctx context.Context, grade int) error {
	return s.apply(ctx, navigation.Event{Kind: navigation.GradeSelected}, func(p models.Profile) (models.Profile, error) {
		return progress.SelectGrade(p, grade)
	})
}

// CompleteLearning records a finished learning session.
func (s *Session) CompleteLearning(ctx context.Context, words []models.Word) error {
	return s.apply(ctx, navigation.Event{Kind: navigation.LearningCompleted}, func(p models.Profile) (models.Profile, error) {
		return progress.CompleteLearning(p, words), nil
	})
}

// CompleteQuiz claims a quiz reward.
func (s *Session) CompleteQuiz(ctx context.Context, xp int) error {
	return s.apply(ctx, navigation.Event{Kind: navigation.QuizCompleted}, func(p models.Profile) (models.Profile, error) {
		return progress.CompleteQuiz(p, xp)
	})
}

func (s *Session) apply(ctx context.Context, e navigation.Event, mutate func(models.Profile) (models.Profile, error)) error {
	if s.identity == nil {
		return ErrNotLoggedIn
	}
	if _, err := s.nav.Next(e); err != nil {
		return err
	}

	next, err := mutate(s.profile)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, store.ProfileKey(s.identity.ID), next); err != nil {
		s.logger.Error(ctx, "persist profile failed", "identity", s.identity.ID, "event", e.String(), "error", err)
		return fmt.Errorf("save profile: %w", err)
	}

	s.profile = next
	_, err = s.nav.Fire(e)
	return err
}

// Open moves to an activity view. From History or Settings the session
// first returns to the dashboard, so the menu works from those screens too.
func (s *Session) Open(v models.View) error {
	if s.identity == nil {
		return ErrNotLoggedIn
	}

	nav := *s.nav
	if from := nav.View(); (from == models.ViewHistory || from == models.ViewSettings) && v != from {
		if _, err := nav.Fire(navigation.Event{Kind: navigation.Exit}); err != nil {
			return err
		}
		if v == models.ViewDashboard {
			*s.nav = nav
			return nil
		}
	}
	if _, err := nav.Fire(navigation.Event{Kind: navigation.Open, Target: v}); err != nil {
		return err
	}
	*s.nav = nav
	return nil
}

// Exit abandons the current activity.
func (s *Session) Exit() error {
	_, err := s.nav.Fire(navigation.Event{Kind: navigation.Exit})
	return err
}

// Back leaves History or Settings.
func (s *Session) Back() error {
	_, err := s.nav.Fire(navigation.Event{Kind: navigation.Back})
	return err
}

// Profile returns a copy of the active profile.
func (s *Session) Profile() models.Profile { return s.profile.Clone() }

func (s *Session) View() models.View { return s.nav.View() }

// Identity returns the active identity, or nil when logged out.
func (s *Session) Identity() *models.Identity {
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// GradeGroup derives the band of the active profile's grade.
func (s *Session) GradeGroup() (models.GradeGroup, error) {
	return s.profile.GradeGroup()
}

// Begin captures the current view before a long-running request.
func (s *Session) Begin() Ticket {
	return Ticket{view: s.nav.View(), epoch: s.nav.Epoch()}
}

// Accept reports whether the result of a request started with t may still
// be applied: the user has not navigated since.
func (s *Session) Accept(t Ticket) bool {
	return t.view == s.nav.View() && t.epoch == s.nav.Epoch()
}
