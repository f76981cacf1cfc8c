package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactory struct {
	name string
	new  func(t *testing.T) Store
}

var storeFactories = []storeFactory{
	{
		name: "memory",
		new: func(t *testing.T) Store {
			return NewMemoryStore()
		},
	},
	{
		name: "sqlite",
		new: func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	},
}

func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	for _, factory := range storeFactories {
		t.Run(factory.name, func(t *testing.T) {
			fn(t, factory.new(t))
		})
	}
}

func enterAll(t *testing.T, s Store, lines ...string) {
	t.Helper()
	for _, line := range lines {
		require.NoError(t, s.Enter(line))
	}
}

func TestStoreTraversal(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		enterAll(t, s, "a", "b", "c")

		entry, ok, err := s.Newest()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "c", entry)

		entry, ok, err = s.Older()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "b", entry)

		entry, ok, err = s.Older()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "a", entry)

		_, ok, err = s.Older()
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStoreEmpty(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, ok, err := s.Newest()
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = s.Older()
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStoreOlderWithoutNewest(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		enterAll(t, s, "a", "b")

		_, ok, err := s.Older()
		require.NoError(t, err)
		assert.False(t, ok, "cursor is unset until Newest is called")
	})
}

func TestStoreClear(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		enterAll(t, s, "a", "b")
		require.NoError(t, s.Clear())

		_, ok, err := s.Newest()
		require.NoError(t, err)
		assert.False(t, ok)

		enterAll(t, s, "c")
		entry, ok, err := s.Newest()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "c", entry)
	})
}

func TestStoreSizeLimit(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		require.NoError(t, s.SetSize(2))
		enterAll(t, s, "a", "b", "c")

		entries, err := Snapshot(s)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b"}, entries)
	})
}

func TestStoreShrinkingSizeTrims(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		enterAll(t, s, "a", "b", "c", "d")
		require.NoError(t, s.SetSize(1))

		entries, err := Snapshot(s)
		require.NoError(t, err)
		assert.Equal(t, []string{"d"}, entries)

		require.NoError(t, s.SetSize(0))
		enterAll(t, s, "e", "f")

		entries, err = Snapshot(s)
		require.NoError(t, err)
		assert.Equal(t, []string{"f", "e", "d"}, entries)
	})
}

func TestStoreNegativeSize(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		assert.Error(t, s.SetSize(-1))
	})
}

func TestStoreUnique(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		require.NoError(t, s.SetUnique(true))
		enterAll(t, s, "ls", "ls", "pwd", "ls")

		entries, err := Snapshot(s)
		require.NoError(t, err)
		assert.Equal(t, []string{"ls", "pwd", "ls"}, entries)

		require.NoError(t, s.SetUnique(false))
		enterAll(t, s, "ls")

		entries, err = Snapshot(s)
		require.NoError(t, err)
		assert.Equal(t, []string{"ls", "ls", "pwd", "ls"}, entries)
	})
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	enterAll(t, s, "first", "second")
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	entries, err := Snapshot(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, entries)
}

func TestSQLiteStoreEntries(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer s.Close()

	enterAll(t, s, "one", "two")

	entries, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "two", entries[0].Line)
	assert.Equal(t, "one", entries[1].Line)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestSQLiteStoreInMemory(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	enterAll(t, s, "x", "y")
	entries, err := Snapshot(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, entries)
}

func TestSQLiteStoreOpenErrorIsWrapped(t *testing.T) {
	_, err := NewSQLiteStore(filepath.Join(t.TempDir(), "missing", "history.db"))
	assert.ErrorContains(t, err, "error opening history database")
}
