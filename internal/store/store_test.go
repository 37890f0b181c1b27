package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New[testRecord](NewMemoryStorage(), "t:")

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.Set(ctx, "a", testRecord{Count: 3, At: now}, time.Minute))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 3, got.Count)
	require.True(t, now.Equal(got.At))

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorePrefixIsolation(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	a := New[testRecord](storage, "a:")
	b := New[testRecord](storage, "b:")

	require.NoError(t, a.Save(ctx, "k", testRecord{Count: 1}))
	_, err := b.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)

	raw, err := storage.Get("a:k")
	require.NoError(t, err)
	require.NotEmpty(t, raw)
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := New[testRecord](NewMemoryStorage(), "")
	require.NoError(t, s.Set(ctx, "k", testRecord{Count: 1}, time.Second))

	time.Sleep(2100 * time.Millisecond)
	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorageWithPrefix(t *testing.T) {
	backend := NewMemoryStorage()
	sessions := StorageWithPrefix(backend, "s:")

	require.NoError(t, sessions.Set("abc", []byte("data"), 0))
	raw, err := backend.Get("s:abc")
	require.NoError(t, err)
	require.Equal(t, []byte("data"), raw)

	raw, err = sessions.Get("abc")
	require.NoError(t, err)
	require.Equal(t, []byte("data"), raw)

	require.NoError(t, sessions.Delete("abc"))
	raw, err = backend.Get("s:abc")
	require.NoError(t, err)
	require.Nil(t, raw)
}
