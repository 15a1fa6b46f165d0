// Package store persists profiles and the session marker in the local
// metadata table.
//
// Record layout:
//
//	lq_session_user     JSON-encoded models.Identity of the active session
//	lq_profile_<id>     JSON-encoded models.Profile of identity <id>
//
// Reads distinguish an absent key (ErrNotFound) from a value that exists but
// cannot be decoded (ErrMalformed). Writes always replace the whole record.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lexiconquest/internal/common"
	"github.com/dmitrijs2005/lexiconquest/internal/dbx"
)

const (
	// SessionKey holds the identity of the active session.
	SessionKey = "lq_session_user"

	profileKeyPrefix = "lq_profile_"
)

var (
	ErrNotFound  = common.ErrNotFound
	ErrMalformed = common.ErrMalformed
)

// ProfileKey derives the storage key of an identity's profile.
func ProfileKey(identityID string) string {
	return profileKeyPrefix + identityID
}

// RawProfile is a decoded but untyped profile record: every top-level field
// is kept as raw JSON so that migration can default each one independently.
type RawProfile map[string]json.RawMessage

// ProfileStore is the profile store adapter over an SQLite database.
type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Get reads the record at key.
func (s *ProfileStore) Get(ctx context.Context, key string) (RawProfile, error) {
	data, err := s.repo(s.db).Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return decodeRaw(key, data)
}

func decodeRaw(key string, data []byte) (RawProfile, error) {
	var raw RawProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", key, ErrMalformed, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w: null record", key, ErrMalformed)
	}
	return raw, nil
}

// Set serializes p and overwrites the record at key.
func (s *ProfileStore) Set(ctx context.Context, key string, p models.Profile) error {
	return setProfile(ctx, s.repo(s.db), key, p)
}

func setProfile(ctx context.Context, repo metadata.Repository, key string, p models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return repo.Set(ctx, key, data)
}

// Remove deletes the record at key. Removing an absent key succeeds.
func (s *ProfileStore) Remove(ctx context.Context, key string) error {
	return s.repo(s.db).Delete(ctx, key)
}

// LoadIdentity reads the session marker.
func (s *ProfileStore) LoadIdentity(ctx context.Context) (*models.Identity, error) {
	data, err := s.repo(s.db).Get(ctx, SessionKey)
	if err != nil {
		return nil, err
	}
	var id models.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", SessionKey, ErrMalformed, err)
	}
	if id.ID == "" {
		return nil, fmt.Errorf("%s: %w: empty identity id", SessionKey, ErrMalformed)
	}
	return &id, nil
}

// SaveIdentity overwrites the session marker.
func (s *ProfileStore) SaveIdentity(ctx context.Context, id models.Identity) error {
	return saveIdentity(ctx, s.repo(s.db), id)
}

func saveIdentity(ctx context.Context, repo metadata.Repository, id models.Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return repo.Set(ctx, SessionKey, data)
}

// ClearIdentity removes the session marker.
func (s *ProfileStore) ClearIdentity(ctx context.Context) error {
	return s.Remove(ctx, SessionKey)
}

// Activate writes the session marker and, when p is not nil, the identity's
// profile in a single transaction.
func (s *ProfileStore) Activate(ctx context.Context, id models.Identity, p *models.Profile) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := saveIdentity(ctx, repo, id); err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		return setProfile(ctx, repo, ProfileKey(id.ID), *p)
	})
}

// ProfileIDs lists the identity ids that have a profile on this device.
func (s *ProfileStore) ProfileIDs(ctx context.Context) ([]string, error) {
	records, err := s.repo(s.db).List(ctx, profileKeyPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for key := range records {
		ids = append(ids, strings.TrimPrefix(key, profileKeyPrefix))
	}
	sort.Strings(ids)
	return ids, nil
}
