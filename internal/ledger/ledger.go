// Package ledger implements the daily-budget engine: a single in-memory
// aggregate of accounts, transactions and budget configuration, mutated by
// command methods and re-derived into view values (daily allowance,
// remaining today, progress). The package performs no I/O; callers load the
// aggregate from a snapshot, apply commands, and persist the result.
package ledger

import (
	"time"

	"github.com/google/uuid"
)

func newID() string { return uuid.NewString() }

// Reserved account ids. These are structural: daily is the allowance
// source, savings is the default sweep target. None of them can be deleted.
const (
	AccountDaily      = "daily"
	AccountSavings    = "savings"
	AccountInvestment = "investment"
)

// TransactionType classifies a transaction. Balance effects are driven by
// the signed amount, not the type; the type stays consistent with the sign.
type TransactionType string

const (
	TypeExpense  TransactionType = "expense"
	TypeIncome   TransactionType = "income"
	TypeTransfer TransactionType = "transfer"
)

// Account holds a named balance. Balances are signed integers in the
// smallest currency unit.
type Account struct {
	ID       string
	Name     string
	Type     string
	Balance  int64
	Icon     string
	ParentID string
}

// Transaction records a single balance movement against one account.
// Transfers are represented as two paired records.
type Transaction struct {
	ID          string
	Type        TransactionType
	Amount      int64 // negative = funds leaving Account, positive = entering
	Description string
	Account     string
	Date        time.Time
}

// Budget is the singleton allocation config.
type Budget struct {
	StartAmount int64
	StartDate   time.Time // zero = unset
	EndDate     time.Time // zero = unset; inclusive in day counts
	AutoSave    bool
}

// Ledger is the mutable aggregate the whole engine operates on. The
// transaction log is newest-first by insertion order, which is not the same
// as date order once backdated entries exist.
type Ledger struct {
	Budget       Budget
	Accounts     []Account
	Transactions []Transaction

	DailyAllowance int64
	RemainingToday int64
	Progress       int64 // 0..100
	LastCheckedDay time.Time
	IsSetup        bool
}

// New returns an unconfigured ledger seeded with the two default accounts.
func New() *Ledger {
	return &Ledger{
		Accounts: defaultAccounts(),
		Progress: 100,
	}
}

func defaultAccounts() []Account {
	return []Account{
		{ID: AccountDaily, Name: "Daily Budget", Type: "daily", Icon: "wallet"},
		{ID: AccountSavings, Name: "Savings", Type: "savings", Icon: "piggybank"},
	}
}

// IsReserved reports whether id names a non-deletable account.
func IsReserved(id string) bool {
	switch id {
	case AccountDaily, AccountSavings, AccountInvestment:
		return true
	}
	return false
}

// Account returns a pointer into the accounts slice, or nil.
func (l *Ledger) Account(id string) *Account {
	for i := range l.Accounts {
		if l.Accounts[i].ID == id {
			return &l.Accounts[i]
		}
	}
	return nil
}

// DailyBalance returns the daily account balance, 0 if the account is
// somehow missing.
func (l *Ledger) DailyBalance() int64 {
	if a := l.Account(AccountDaily); a != nil {
		return a.Balance
	}
	return 0
}

// EnsureDefaults guarantees the reserved daily and savings accounts exist.
// Several calculations index into the daily account unconditionally, so a
// loaded snapshot is never allowed to leave the set empty.
func (l *Ledger) EnsureDefaults() {
	if len(l.Accounts) == 0 {
		l.Accounts = defaultAccounts()
		return
	}
	for _, def := range defaultAccounts() {
		if l.Account(def.ID) == nil {
			l.Accounts = append(l.Accounts, def)
		}
	}
}

// prepend inserts t at the head of the log (newest-first insertion order).
func (l *Ledger) prepend(t Transaction) {
	l.Transactions = append([]Transaction{t}, l.Transactions...)
}

// transactionIndex returns the log position of id, or -1.
func (l *Ledger) transactionIndex(id string) int {
	for i := range l.Transactions {
		if l.Transactions[i].ID == id {
			return i
		}
	}
	return -1
}

// TotalBalance sums all account balances. Transfers keep this invariant.
func (l *Ledger) TotalBalance() int64 {
	var sum int64
	for _, a := range l.Accounts {
		sum += a.Balance
	}
	return sum
}
