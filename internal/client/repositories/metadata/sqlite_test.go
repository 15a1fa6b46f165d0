package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/lexiconquest/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "lq_profile_a", []byte(`{"xp":1}`)))

	v, err := r.Get(ctx, "lq_profile_a")
	require.NoError(t, err)
	require.Equal(t, `{"xp":1}`, string(v))
}

func TestGet_Absent_ReturnsNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.ErrorIs(t, err, common.ErrNotFound)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestList_FiltersByPrefix(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "lq_profile_a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "lq_profile_b", []byte{0xBB, 0xCC}))
	require.NoError(t, r.Set(ctx, "lq_session_user", []byte{0x01}))

	m, err := r.List(ctx, "lq_profile_")
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte{0xAA}, m["lq_profile_a"])
	assert.Equal(t, []byte{0xBB, 0xCC}, m["lq_profile_b"])

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestList_NonASCIIPrefix(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	for _, k := range []string{"ключ_a", "ключ_b", "ключи", "other"} {
		require.NoError(t, r.Set(ctx, k, []byte(k)))
	}

	m, err := r.List(ctx, "ключ_")
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Contains(t, m, "ключ_a")
	assert.Contains(t, m, "ключ_b")

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	_, err := r.Get(ctx, "x")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestRepository_DBErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.NotErrorIs(t, err, common.ErrNotFound)

	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set metadata[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")

	_, err = r.List(ctx, "")
	require.ErrorContains(t, err, "failed to list metadata")
}
