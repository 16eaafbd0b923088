package quota

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryLedger struct {
	mu      sync.Mutex
	records map[string]int
	appends int
	failure error
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{records: make(map[string]int)}
}

func (l *memoryLedger) CountOnDay(ctx context.Context, day string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failure != nil {
		return 0, l.failure
	}
	return l.records[day], nil
}

func (l *memoryLedger) AppendRequest(ctx context.Context, ts time.Time, endpoint string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appends++
	if l.failure != nil {
		return l.failure
	}
	l.records[DayOf(ts)]++
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRemainingPlusUsedEqualsLimit(t *testing.T) {
	ledger := newMemoryLedger()
	m := New(ledger, 5)

	for i := 0; i < 5; i++ {
		status := m.Status()
		require.Equal(t, 5, status.Used+status.Remaining)
		require.True(t, m.CanMakeRequest())
		require.NoError(t, m.LogRequest(context.Background(), "findByIngredients"))
	}

	require.False(t, m.CanMakeRequest())
	require.Zero(t, m.RemainingRequests())
}

func TestRemainingNeverNegative(t *testing.T) {
	ledger := newMemoryLedger()
	m := New(ledger, 1)

	// Bill past the ceiling: remaining clamps at zero.
	require.NoError(t, m.LogRequest(context.Background(), "a"))
	require.NoError(t, m.LogRequest(context.Background(), "b"))
	require.Zero(t, m.RemainingRequests())
	require.Equal(t, 2, m.Status().Used)
}

func TestSeedsFromExistingHistory(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	ledger := newMemoryLedger()
	ledger.records[DayOf(now)] = 3

	m := New(ledger, 5)
	m.Clock = fixedClock(now)

	require.Equal(t, 2, m.RemainingRequests())
	require.True(t, m.CanMakeRequest())
}

func TestLedgerRecountMatchesLoggedCalls(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	ledger := newMemoryLedger()
	m := New(ledger, 10)
	m.Clock = fixedClock(now)

	for i := 0; i < 4; i++ {
		require.NoError(t, m.LogRequest(context.Background(), "findByIngredients"))
	}

	count, err := ledger.CountOnDay(context.Background(), DayOf(now))
	require.NoError(t, err)
	require.Equal(t, 4, count)
}

func TestUnreadableLedgerCountsAsFreshWindow(t *testing.T) {
	ledger := newMemoryLedger()
	ledger.failure = errors.New("disk gone")

	m := New(ledger, 3)
	require.Equal(t, 3, m.RemainingRequests())
}

func TestAppendFailureStillIncrementsSnapshot(t *testing.T) {
	ledger := newMemoryLedger()
	m := New(ledger, 2)

	require.NoError(t, m.LogRequest(context.Background(), "a"))
	ledger.failure = errors.New("disk full")

	err := m.LogRequest(context.Background(), "b")
	require.Error(t, err)
	// Admission stays conservative even though persistence failed.
	require.False(t, m.CanMakeRequest())
}

func TestDayRolloverReseedsWindow(t *testing.T) {
	day1 := time.Date(2026, 3, 4, 23, 0, 0, 0, time.Local)
	day2 := day1.Add(2 * time.Hour)

	ledger := newMemoryLedger()
	m := New(ledger, 2)
	m.Clock = fixedClock(day1)

	require.NoError(t, m.LogRequest(context.Background(), "a"))
	require.NoError(t, m.LogRequest(context.Background(), "b"))
	require.False(t, m.CanMakeRequest())

	m.Clock = fixedClock(day2)
	require.True(t, m.CanMakeRequest())
	require.Equal(t, 2, m.RemainingRequests())
}

func TestConcurrentLogRequestsAreNotLost(t *testing.T) {
	ledger := newMemoryLedger()
	m := New(ledger, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.LogRequest(context.Background(), "findByIngredients")
		}()
	}
	wg.Wait()

	require.Equal(t, 50, m.Status().Used)
}
