package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/daybudget/internal/database"
	"github.com/jask/daybudget/internal/ledger"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSnapshotRepoRoundTrip(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := NewSnapshotRepo(testDB(t))

	got, err := repo.Get(ctx, "daily-budget-data")
	require.NoError(t, err)
	require.Nil(t, got, "missing key should read as nil, not error")

	require.NoError(t, repo.Put(ctx, "daily-budget-data", []byte(`{"isSetup":false}`)))
	got, err = repo.Get(ctx, "daily-budget-data")
	require.NoError(t, err)
	require.JSONEq(t, `{"isSetup":false}`, string(got))

	// Second put overwrites, last write wins.
	require.NoError(t, repo.Put(ctx, "daily-budget-data", []byte(`{"isSetup":true}`)))
	got, err = repo.Get(ctx, "daily-budget-data")
	require.NoError(t, err)
	require.JSONEq(t, `{"isSetup":true}`, string(got))

	require.NoError(t, repo.Delete(ctx, "daily-budget-data"))
	got, err = repo.Get(ctx, "daily-budget-data")
	require.NoError(t, err)
	require.Nil(t, got)

	// Deleting again is fine.
	require.NoError(t, repo.Delete(ctx, "daily-budget-data"))
}

func TestMirrorSyncRewritesTables(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := testDB(t)
	mirror := NewMirrorRepo(db)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := ledger.New()
	require.NoError(t, l.Setup(700, now.AddDate(0, 0, 6), now))
	_, err := l.AddTransaction(ledger.TypeExpense, 30, "lunch", ledger.AccountDaily, now, now)
	require.NoError(t, err)

	require.NoError(t, mirror.Sync(ctx, l))

	balances, err := mirror.AccountBalances(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(670), balances[ledger.AccountDaily])
	require.Equal(t, int64(0), balances[ledger.AccountSavings])

	var txCount int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&txCount))
	require.Equal(t, 2, txCount)

	// The mirror records insertion order so the newest-first log survives
	// round-trips through SQL.
	var headDesc string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT description FROM transactions ORDER BY position LIMIT 1`).Scan(&headDesc))
	require.Equal(t, "lunch", headDesc)

	var startAmount int64
	require.NoError(t, db.QueryRowContext(ctx, `SELECT start_amount FROM budgets WHERE id = 1`).Scan(&startAmount))
	require.Equal(t, int64(700), startAmount)

	// A later sync replaces rather than appends.
	require.NoError(t, l.RemoveTransaction(l.Transactions[0].ID, now))
	require.NoError(t, mirror.Sync(ctx, l))
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&txCount))
	require.Equal(t, 1, txCount)
}

func TestMirrorSyncUnconfiguredLedgerHasNoBudgetRow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testDB(t)
	mirror := NewMirrorRepo(db)

	require.NoError(t, mirror.Sync(ctx, ledger.New()))
	var budgetCount int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM budgets`).Scan(&budgetCount))
	require.Zero(t, budgetCount)
}
