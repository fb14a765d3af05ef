package store

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Note string
}

func (i item) Key() string { return i.ID }

func newTestStore() *Store[item] {
	return New[item](zerolog.Nop())
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := newTestStore()
	s.Add(item{ID: "b"})
	s.Add(item{ID: "a"})
	s.Add(item{ID: "c"})

	got := s.All()
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestAddReplacesDuplicateInPlace(t *testing.T) {
	s := newTestStore()
	s.Add(item{ID: "a", Note: "first"})
	s.Add(item{ID: "b"})
	s.Add(item{ID: "a", Note: "second"})

	require.Equal(t, 2, s.Len())
	got := s.All()
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "second", got[0].Note)
	assert.Equal(t, "b", got[1].ID)
}

func TestAddDropsEmptyKey(t *testing.T) {
	s := newTestStore()
	s.Add(item{Note: "no id"})
	assert.Equal(t, 0, s.Len())
}

func TestReplaceAllDiscardsPreviousContents(t *testing.T) {
	s := newTestStore()
	s.Add(item{ID: "old"})

	s.ReplaceAll([]item{{ID: "x"}, {ID: "y"}})

	require.Equal(t, 2, s.Len())
	_, ok := s.Get("old")
	assert.False(t, ok)
	assert.Equal(t, "x", s.All()[0].ID)
}

func TestRemove(t *testing.T) {
	s := newTestStore()
	s.AddMany([]item{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	s.Remove("b")

	require.Equal(t, 2, s.Len())
	got := s.All()
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	// Removing a missing key is a no-op.
	s.Remove("zzz")
	assert.Equal(t, 2, s.Len())
}

func TestPatch(t *testing.T) {
	s := newTestStore()
	s.Add(item{ID: "a", Note: "before"})

	ok := s.Patch("a", func(i *item) { i.Note = "after" })
	require.True(t, ok)

	got, _ := s.Get("a")
	assert.Equal(t, "after", got.Note)
}

func TestPatchMissLeavesStoreUntouched(t *testing.T) {
	s := newTestStore()
	s.Add(item{ID: "a"})

	called := false
	ok := s.Patch("missing", func(i *item) { called = true })

	assert.False(t, ok)
	assert.False(t, called)
	assert.Equal(t, 1, s.Len())
}

func TestFindReturnsFirstMatchInOrder(t *testing.T) {
	s := newTestStore()
	s.AddMany([]item{
		{ID: "1", Note: "x"},
		{ID: "2", Note: "match"},
		{ID: "3", Note: "match"},
	})

	got, ok := s.Find(func(i item) bool { return i.Note == "match" })
	require.True(t, ok)
	assert.Equal(t, "2", got.ID)

	_, ok = s.Find(func(i item) bool { return i.Note == "none" })
	assert.False(t, ok)
}
