package state_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pspdfkit/nudocs/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
}

func newStore(t *testing.T) *state.Store {
	t.Helper()
	return state.NewStore(filepath.Join(t.TempDir(), "nudocs", "state.json"), state.WithClock(fixedClock))
}

func TestStore_Read_MissingFile(t *testing.T) {
	store := newStore(t)

	st, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st.LastUpload)
}

func TestStore_Read_CorruptFile(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o700))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	st, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st.LastUpload)
}

func TestStore_RecordUpload(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.RecordUpload(ctx, "01AAA", "first"))

	lu, err := store.LastUpload(ctx)
	require.NoError(t, err)
	require.NotNil(t, lu)
	assert.Equal(t, "01AAA", lu.ULID)
	assert.Equal(t, "first", lu.Title)
	assert.Equal(t, fixedClock(), lu.UploadedAt)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"lastUpload":{"ulid":"01AAA","title":"first","uploadedAt":"2026-03-04T05:06:07Z"}}`, string(data))
}

func TestStore_RecordUpload_Overwrites(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.RecordUpload(ctx, "01AAA", "first"))
	require.NoError(t, store.RecordUpload(ctx, "01BBB", "second"))

	lu, err := store.LastUpload(ctx)
	require.NoError(t, err)
	require.NotNil(t, lu)
	assert.Equal(t, "01BBB", lu.ULID)
	assert.Equal(t, "second", lu.Title)
}

func TestStore_RecordUpload_RecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o700))
	require.NoError(t, os.WriteFile(store.Path(), []byte("garbage"), 0o600))

	require.NoError(t, store.RecordUpload(ctx, "01AAA", "first"))

	lu, err := store.LastUpload(ctx)
	require.NoError(t, err)
	require.NotNil(t, lu)
	assert.Equal(t, "01AAA", lu.ULID)
}

func TestStore_ClearUploadIfMatches(t *testing.T) {
	t.Run("different ulid leaves state unchanged", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.RecordUpload(ctx, "01AAA", "first"))
		before, err := os.ReadFile(store.Path())
		require.NoError(t, err)

		cleared, err := store.ClearUploadIfMatches(ctx, "01ZZZ")
		require.NoError(t, err)
		assert.False(t, cleared)

		after, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("matching ulid clears the pointer", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.RecordUpload(ctx, "01AAA", "first"))

		cleared, err := store.ClearUploadIfMatches(ctx, "01AAA")
		require.NoError(t, err)
		assert.True(t, cleared)

		lu, err := store.LastUpload(ctx)
		require.NoError(t, err)
		assert.Nil(t, lu)

		// The file itself is kept, only emptied.
		data, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})

	t.Run("no state file", func(t *testing.T) {
		store := newStore(t)

		cleared, err := store.ClearUploadIfMatches(context.Background(), "01AAA")
		require.NoError(t, err)
		assert.False(t, cleared)

		_, statErr := os.Stat(store.Path())
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestStore_PreservesUnknownKeys(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o700))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"editor":"vim"}`), 0o600))

	require.NoError(t, store.RecordUpload(ctx, "01AAA", "first"))
	_, err := store.ClearUploadIfMatches(ctx, "01AAA")
	require.NoError(t, err)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"editor":"vim"}`, string(data))
}
