package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jask/daybudget/internal/database"
	"github.com/jask/daybudget/internal/ledger"
)

// MirrorRepo maintains a relational copy of the ledger for ad-hoc SQL and
// external sync. The snapshot blob is the source of truth; the mirror is
// rewritten wholesale inside one transaction per sync, so it can never be
// half-updated.
type MirrorRepo struct {
	db *sql.DB
}

func NewMirrorRepo(db *sql.DB) *MirrorRepo { return &MirrorRepo{db: db} }

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// Sync replaces the mirror tables with the current ledger contents.
func (r *MirrorRepo) Sync(ctx context.Context, l *ledger.Ledger) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		for _, table := range []string{"transactions", "accounts", "budgets"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return err
			}
		}
		for _, a := range l.Accounts {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO accounts(id, name, type, balance, icon, parent_id)
			VALUES (?, ?, ?, ?, ?, ?);
			`, a.ID, a.Name, a.Type, a.Balance, a.Icon, a.ParentID); err != nil {
				return err
			}
		}
		for i, t := range l.Transactions {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions(id, type, date, amount, description, account, position)
			VALUES (?, ?, ?, ?, ?, ?, ?);
			`, t.ID, string(t.Type), nullableTime(t.Date), t.Amount, t.Description, t.Account, i); err != nil {
				return err
			}
		}
		if l.IsSetup {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO budgets(id, start_amount, start_date, end_date, auto_save)
			VALUES (1, ?, ?, ?, ?);
			`, l.Budget.StartAmount, nullableTime(l.Budget.StartDate), nullableTime(l.Budget.EndDate), l.Budget.AutoSave); err != nil {
				return err
			}
		}
		return nil
	})
}

// AccountBalances reads balances back from the mirror, mostly for
// verification and external consumers.
func (r *MirrorRepo) AccountBalances(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, balance FROM accounts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var id string
		var balance int64
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, err
		}
		out[id] = balance
	}
	return out, rows.Err()
}
