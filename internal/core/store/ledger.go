package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CountOnDay returns the number of ledger records stamped with the given
// day ("YYYY-MM-DD"). A store without history counts as zero.
func (s *Store) CountOnDay(ctx context.Context, day string) (int, error) {
	if s == nil || s.DB == nil {
		return 0, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	day = strings.TrimSpace(day)
	if day == "" {
		return 0, errors.New("day is required")
	}

	var count int
	row := s.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM request_log WHERE requested_day = ?
	`, day)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count ledger records: %w", err)
	}

	return count, nil
}

// AppendRequest durably records one issued API call. Records are immutable
// and never purged; days outside the quota window are simply not counted.
func (s *Store) AppendRequest(ctx context.Context, ts time.Time, endpoint string) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO request_log (requested_at, requested_day, endpoint)
		VALUES (?, ?, ?)
	`, ts.Unix(), ts.Format("2006-01-02"), strings.TrimSpace(endpoint))
	if err != nil {
		return fmt.Errorf("append ledger record: %w", err)
	}

	return nil
}
