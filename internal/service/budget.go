package service

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jask/daybudget/internal/database"
	"github.com/jask/daybudget/internal/database/repository"
	"github.com/jask/daybudget/internal/ledger"
)

// SnapshotKey is the single key the whole ledger lives under.
const SnapshotKey = "daily-budget-data"

// BudgetService orchestrates the engine against storage: load the snapshot,
// run the opportunistic day-rollover check, apply one command, persist the
// snapshot, and sync the relational mirror. Commands never interleave; the
// ledger is a single mutable aggregate touched by one caller at a time.
type BudgetService struct {
	Snapshots *repository.SnapshotRepo
	Mirror    *repository.MirrorRepo
	Log       *log.Logger

	// Now is injectable for tests; defaults to database.Now.
	Now func() time.Time
}

func (s *BudgetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return database.Now()
}

func (s *BudgetService) logger() *log.Logger {
	if s.Log != nil {
		return s.Log
	}
	return log.Default()
}

// Load reads and decodes the persisted snapshot. A corrupted snapshot is
// logged and replaced by the built-in defaults rather than failing the
// session; a snapshot with no accounts comes back with the default pair.
func (s *BudgetService) Load(ctx context.Context) (*ledger.Ledger, error) {
	data, err := s.Snapshots.Get(ctx, SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	l, err := ledger.DecodeSnapshot(data)
	if err != nil {
		s.logger().Warn("snapshot unreadable, starting from defaults", "err", err)
		return ledger.New(), nil
	}
	return l, nil
}

// Save persists the ledger as a full-snapshot overwrite and refreshes the
// mirror. Mirror failures are logged but never fail the command: the
// snapshot is the durability boundary, the mirror is best-effort.
func (s *BudgetService) Save(ctx context.Context, l *ledger.Ledger) error {
	data, err := ledger.EncodeSnapshot(l)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.Snapshots.Put(ctx, SnapshotKey, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if s.Mirror != nil {
		if err := s.Mirror.Sync(ctx, l); err != nil {
			s.logger().Warn("mirror sync failed", "err", err)
		}
	}
	return nil
}

// Update runs one command against the current ledger. Every interaction
// first gives the rollover coordinator a chance to advance the day (there
// is no timer; a skipped day is caught on the next call). A failing command
// leaves the stored snapshot untouched unless a rollover already fired, in
// which case the rollover alone is persisted.
func (s *BudgetService) Update(ctx context.Context, fn func(l *ledger.Ledger) error) (*ledger.Ledger, error) {
	l, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	swept, rolled := l.CheckRollover(now)
	if rolled {
		s.logger().Info("day rolled over", "swept", swept, "allowance", l.DailyAllowance)
	}

	if fn != nil {
		if err := fn(l); err != nil {
			if rolled {
				if saveErr := s.Save(ctx, l); saveErr != nil {
					s.logger().Error("persisting rollover failed", "err", saveErr)
				}
			}
			return nil, err
		}
	}

	if err := s.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// View returns the current ledger, still running the rollover check first:
// reads count as interactions too.
func (s *BudgetService) View(ctx context.Context) (*ledger.Ledger, error) {
	return s.Update(ctx, nil)
}

// Clear wipes the snapshot and mirror, returning to the unconfigured state.
func (s *BudgetService) Clear(ctx context.Context) error {
	if err := s.Snapshots.Delete(ctx, SnapshotKey); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	if s.Mirror != nil {
		if err := s.Mirror.Sync(ctx, ledger.New()); err != nil {
			s.logger().Warn("mirror clear failed", "err", err)
		}
	}
	return nil
}
