// Package services contains application services for the LexiconQuest
// client. This file defines the session resolver: it decides which profile
// belongs to the active identity and which view the session starts in.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/client/store"
	"github.com/dmitrijs2005/lexiconquest/internal/logging"
)

// ProfileStore is the subset of the store adapter the resolver needs.
type ProfileStore interface {
	Get(ctx context.Context, key string) (store.RawProfile, error)
	LoadIdentity(ctx context.Context) (*models.Identity, error)
	ClearIdentity(ctx context.Context) error
	Activate(ctx context.Context, id models.Identity, p *models.Profile) error
}

// SessionService resolves identity changes into a profile and a view.
//
// Contract:
//   - Resolve(nil): default profile, Login view, session marker cleared.
//   - Resolve(id): session marker persisted; the stored profile is migrated,
//     or a fresh one is created when the record is absent or unreadable.
//     Dashboard when a grade is set, Onboarding otherwise.
//   - Restore: the identity saved by the last session, or nil.
//
// Returned errors always come from storage I/O; a stored record that cannot
// be decoded is never an error.
type SessionService interface {
	Resolve(ctx context.Context, id *models.Identity) (models.Profile, models.View, error)
	Restore(ctx context.Context) (*models.Identity, error)
}

type sessionService struct {
	store  ProfileStore
	logger logging.Logger
}

// NewSessionService constructs a SessionService over the given store.
func NewSessionService(s ProfileStore, logger logging.Logger) SessionService {
	return &sessionService{store: s, logger: logger}
}

func (s *sessionService) Resolve(ctx context.Context, id *models.Identity) (models.Profile, models.View, error) {
	if id == nil {
		if err := s.store.ClearIdentity(ctx); err != nil {
			return models.DefaultProfile(), models.ViewLogin, fmt.Errorf("clear session marker: %w", err)
		}
		return models.DefaultProfile(), models.ViewLogin, nil
	}

	log := s.logger.With("identity", id.ID)

	p, write, err := s.load(ctx, log, *id)
	if err != nil {
		return models.DefaultProfile(), models.ViewLogin, err
	}

	var toWrite *models.Profile
	if write {
		toWrite = &p
	}
	if err := s.store.Activate(ctx, *id, toWrite); err != nil {
		return models.DefaultProfile(), models.ViewLogin, fmt.Errorf("activate session: %w", err)
	}

	view := models.ViewDashboard
	if p.NeedsOnboarding() {
		view = models.ViewOnboarding
	}
	log.Info(ctx, "session resolved", "view", view, "grade", p.Grade)
	return p, view, nil
}

// load reads the identity's profile and reports whether it must be written
// back (new, replaced, upgraded from an older schema, or repaired).
func (s *sessionService) load(ctx context.Context, log logging.Logger, id models.Identity) (models.Profile, bool, error) {
	raw, err := s.store.Get(ctx, store.ProfileKey(id.ID))
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info(ctx, "creating profile")
		return models.NewProfile(id.Name), true, nil
	case errors.Is(err, store.ErrMalformed):
		log.Warn(ctx, "stored profile unreadable, starting fresh", "error", err)
		return models.NewProfile(id.Name), true, nil
	case err != nil:
		return models.Profile{}, false, fmt.Errorf("read profile: %w", err)
	}

	p := Migrate(raw, id.Name)
	if NeedsUpgrade(raw) {
		log.Info(ctx, "upgrading profile", "from", SchemaVersion(raw), "to", models.CurrentSchemaVersion)
		return p, true, nil
	}
	if Repaired(raw, p) {
		log.Warn(ctx, "repairing stored profile")
		return p, true, nil
	}
	return p, false, nil
}

func (s *sessionService) Restore(ctx context.Context) (*models.Identity, error) {
	id, err := s.store.LoadIdentity(ctx)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, nil
	case errors.Is(err, store.ErrMalformed):
		s.logger.Warn(ctx, "session marker unreadable, clearing", "error", err)
		if err := s.store.ClearIdentity(ctx); err != nil {
			return nil, fmt.Errorf("clear session marker: %w", err)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("read session marker: %w", err)
	}
}
