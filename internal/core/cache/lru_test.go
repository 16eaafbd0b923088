package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetMissOnEmptyCache(t *testing.T) {
	c := NewLRU(4, 0)

	_, ok := c.Get("anything")
	require.False(t, ok)
}

func TestPutThenGetReturnsValue(t *testing.T) {
	c := NewLRU(4, 0)
	c.Put("k", "v", false)

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", got)
}

func TestCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU(2, 0)
	c.Put("a", 1, false)
	c.Put("b", 2, false)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("c", 3, false)
	require.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	require.False(t, ok)
	_, ok = c.Get("a")
	require.True(t, ok)
	_, ok = c.Get("c")
	require.True(t, ok)
}

func TestUpdateExistingKeyDoesNotGrow(t *testing.T) {
	c := NewLRU(2, 0)
	c.Put("a", 1, false)
	c.Put("a", 2, false)

	require.Equal(t, 1, c.Len())
	got, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, got)
}

func TestNegativeEntryExpires(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	c := NewLRU(4, 30*time.Second)
	c.Clock = func() time.Time { return now }

	c.Put("miss", nil, true)

	_, ok := c.Get("miss")
	require.True(t, ok)

	now = now.Add(31 * time.Second)
	_, ok = c.Get("miss")
	require.False(t, ok)
	require.Zero(t, c.Len())
}

func TestPositiveEntryNeverExpires(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	c := NewLRU(4, 30*time.Second)
	c.Clock = func() time.Time { return now }

	c.Put("hit", "value", false)

	now = now.Add(48 * time.Hour)
	_, ok := c.Get("hit")
	require.True(t, ok)
}

func TestSearchKeyNormalizesEquivalentInputs(t *testing.T) {
	a := SearchKey([]string{" Chicken", "rice", "chicken"}, 3, nil)
	b := SearchKey([]string{"rice", "chicken"}, 3, nil)
	require.Equal(t, a, b)

	withDiet := SearchKey([]string{"rice"}, 3, []string{"Vegan"})
	withoutDiet := SearchKey([]string{"rice"}, 3, nil)
	require.NotEqual(t, withDiet, withoutDiet)

	require.NotEqual(t,
		SearchKey([]string{"rice"}, 3, nil),
		SearchKey([]string{"rice"}, 5, nil),
	)
}
