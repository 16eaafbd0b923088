// Package quota enforces the daily ceiling on outbound API calls. The
// ledger is the durable record; the manager keeps an in-memory snapshot of
// today's count so admission checks never touch the database.
package quota

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pantrychef/pantrychef/internal/core"
)

// Ledger is the durable, append-only record of issued API calls.
type Ledger interface {
	CountOnDay(ctx context.Context, day string) (int, error)
	AppendRequest(ctx context.Context, ts time.Time, endpoint string) error
}

// Manager tracks requests against the daily quota window. The counter is a
// snapshot: seeded from the ledger for the current day, incremented locally
// on each logged call, reseeded when the calendar day rolls over. Calls made
// by other process instances after seeding are not observed.
//
// The window is keyed by the process-local calendar date, matching the
// ledger's day stamps. If the remote API resets on a different clock the two
// counts can diverge; see DayOf.
type Manager struct {
	Clock func() time.Time

	ledger Ledger
	limit  int

	mu     sync.Mutex
	seeded bool
	day    string
	count  int
}

// New creates a Manager enforcing the given daily limit. The count snapshot
// is seeded from the ledger on first use; a ledger without history (or one
// that cannot be read) counts as a fresh window.
func New(ledger Ledger, limit int) *Manager {
	return &Manager{ledger: ledger, limit: limit}
}

// CanMakeRequest reports whether one more call fits in today's quota.
func (m *Manager) CanMakeRequest() bool {
	if m == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureWindow(context.Background())

	return m.count < m.limit
}

// LogRequest records one issued API call: it appends a timestamped record to
// the ledger and increments the snapshot. Call it exactly once per
// actually-issued remote call, never speculatively. The counter increments
// even when the append fails (never under-count admission); the append error
// is returned so the caller can log it loudly, since a silently broken
// ledger corrupts future quota accuracy.
func (m *Manager) LogRequest(ctx context.Context, endpoint string) error {
	if m == nil || m.ledger == nil {
		return errors.New("quota manager is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureWindow(ctx)

	m.count++
	return m.ledger.AppendRequest(ctx, m.now(), endpoint)
}

// RemainingRequests returns how many calls are left today, never negative.
func (m *Manager) RemainingRequests() int {
	if m == nil {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureWindow(context.Background())

	remaining := m.limit - m.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Status returns a point-in-time view of the quota window.
func (m *Manager) Status() core.QuotaStatus {
	if m == nil {
		return core.QuotaStatus{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureWindow(context.Background())

	remaining := m.limit - m.count
	if remaining < 0 {
		remaining = 0
	}

	return core.QuotaStatus{
		Used:      m.count,
		Remaining: remaining,
		Limit:     m.limit,
		Day:       m.day,
	}
}

// ensureWindow seeds the snapshot and reseeds it when the calendar day
// changes. Caller must hold the mutex.
func (m *Manager) ensureWindow(ctx context.Context) {
	today := DayOf(m.now())
	if m.seeded && m.day == today {
		return
	}

	m.day = today
	m.seeded = true
	m.count = 0

	if m.ledger == nil {
		return
	}
	if count, err := m.ledger.CountOnDay(ctx, today); err == nil {
		m.count = count
	}
}

func (m *Manager) now() time.Time {
	if m != nil && m.Clock != nil {
		return m.Clock()
	}
	return time.Now()
}

// DayOf maps a timestamp to its quota-window key. Process-local timezone by
// choice: the ledger stamps with the same clock, so counting stays
// consistent even if the remote API resets at a different midnight.
func DayOf(t time.Time) string {
	return t.Format("2006-01-02")
}
