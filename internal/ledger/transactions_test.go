package ledger

import (
	"errors"
	"testing"
	"time"
)

func TestSetupInitialState(t *testing.T) {
	l := setupLedger(t)

	if l.DailyAllowance != 100 {
		t.Fatalf("DailyAllowance = %d, want 100", l.DailyAllowance)
	}
	if l.RemainingToday != 100 {
		t.Fatalf("RemainingToday = %d, want 100", l.RemainingToday)
	}
	if l.Progress != 100 {
		t.Fatalf("Progress = %d, want 100", l.Progress)
	}
	if len(l.Transactions) != 1 {
		t.Fatalf("transaction count = %d, want 1", len(l.Transactions))
	}
	tx := l.Transactions[0]
	if tx.Type != TypeIncome || tx.Amount != 700 || tx.Account != AccountDaily {
		t.Fatalf("initial transaction = %+v, want +700 income on daily", tx)
	}
}

func TestAddExpenseWithinAllowance(t *testing.T) {
	l := setupLedger(t)

	if _, err := l.AddTransaction(TypeExpense, 30, "lunch", AccountDaily, testNow, testNow); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if got := l.DailyBalance(); got != 670 {
		t.Fatalf("daily balance = %d, want 670", got)
	}
	if l.RemainingToday != 70 {
		t.Fatalf("RemainingToday = %d, want 70", l.RemainingToday)
	}
	if l.Progress != 70 {
		t.Fatalf("Progress = %d, want 70", l.Progress)
	}
	// Spending within the allowance leaves the allowance itself untouched.
	if l.DailyAllowance != 100 {
		t.Fatalf("DailyAllowance = %d, want 100", l.DailyAllowance)
	}
	if l.Transactions[0].Amount != -30 {
		t.Fatalf("logged amount = %d, want -30", l.Transactions[0].Amount)
	}
}

func TestAddExpenseOverspend(t *testing.T) {
	l := setupLedger(t)
	if _, err := l.AddTransaction(TypeExpense, 30, "lunch", AccountDaily, testNow, testNow); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if _, err := l.AddTransaction(TypeExpense, 9999, "splurge", AccountDaily, testNow, testNow); err != nil {
		t.Fatalf("overspend: %v", err)
	}

	if got := l.DailyBalance(); got != 700-30-9999 {
		t.Fatalf("daily balance = %d, want %d", got, 700-30-9999)
	}
	if l.RemainingToday != 0 || l.Progress != 0 {
		t.Fatalf("remaining/progress = %d/%d, want 0/0", l.RemainingToday, l.Progress)
	}
	// Negative balance spread over remaining days clamps at zero.
	if l.DailyAllowance != 0 {
		t.Fatalf("DailyAllowance = %d, want 0", l.DailyAllowance)
	}
}

func TestAddExpenseNonDailyAccountLeavesViewAlone(t *testing.T) {
	l := setupLedger(t)
	acct, err := l.AddAccount("Vacation", "savings", 0, "", "", testNow)
	if err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	if _, err := l.AddTransaction(TypeExpense, 50, "flights", acct.ID, testNow, testNow); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if l.Account(acct.ID).Balance != -50 {
		t.Fatalf("balance = %d, want -50", l.Account(acct.ID).Balance)
	}
	if l.RemainingToday != 100 || l.DailyAllowance != 100 {
		t.Fatalf("view changed: remaining=%d allowance=%d", l.RemainingToday, l.DailyAllowance)
	}
}

func TestAddBackdatedExpenseRederivesView(t *testing.T) {
	l := setupLedger(t)
	yesterday := testNow.AddDate(0, 0, -1)
	if _, err := l.AddTransaction(TypeExpense, 70, "forgot", AccountDaily, yesterday, testNow); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	// Balance 630 over 7 days; nothing spent today.
	if l.DailyAllowance != 90 {
		t.Fatalf("DailyAllowance = %d, want 90", l.DailyAllowance)
	}
	if l.RemainingToday != 90 {
		t.Fatalf("RemainingToday = %d, want 90", l.RemainingToday)
	}
	// Backdated entry sits at the head of the log despite its older date.
	if !sameDay(l.Transactions[0].Date, yesterday) {
		t.Fatalf("log head date = %v, want yesterday", l.Transactions[0].Date)
	}
}

func TestAddIncomeOnDailyRaisesAllowance(t *testing.T) {
	l := setupLedger(t)
	if _, err := l.AddTransaction(TypeIncome, 700, "bonus", AccountDaily, testNow, testNow); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if got := l.DailyBalance(); got != 1400 {
		t.Fatalf("daily balance = %d, want 1400", got)
	}
	if l.DailyAllowance != 200 || l.RemainingToday != 200 {
		t.Fatalf("allowance/remaining = %d/%d, want 200/200", l.DailyAllowance, l.RemainingToday)
	}
}

func TestAddTransactionValidation(t *testing.T) {
	l := setupLedger(t)

	if _, err := l.AddTransaction(TypeExpense, 0, "", AccountDaily, testNow, testNow); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: err = %v, want ErrInvalidAmount", err)
	}
	if _, err := l.AddTransaction(TypeExpense, -5, "", AccountDaily, testNow, testNow); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative amount: err = %v, want ErrInvalidAmount", err)
	}
	if _, err := l.AddTransaction(TypeTransfer, 5, "", AccountDaily, testNow, testNow); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("transfer via add: err = %v, want ErrInvalidType", err)
	}
	if _, err := l.AddTransaction(TypeExpense, 5, "", "nope", testNow, testNow); !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("unknown account: err = %v, want ErrUnknownAccount", err)
	}
	if len(l.Transactions) != 1 {
		t.Fatalf("failed adds mutated the log: %d entries", len(l.Transactions))
	}

	unconfigured := New()
	if _, err := unconfigured.AddTransaction(TypeExpense, 5, "", AccountDaily, testNow, testNow); !errors.Is(err, ErrNotSetup) {
		t.Fatalf("unconfigured: err = %v, want ErrNotSetup", err)
	}
}

func TestRemoveTransactionRestoresBalances(t *testing.T) {
	l := setupLedger(t)
	before := l.DailyBalance()
	remBefore := l.RemainingToday

	tx, err := l.AddTransaction(TypeExpense, 30, "lunch", AccountDaily, testNow, testNow)
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := l.RemoveTransaction(tx.ID, testNow); err != nil {
		t.Fatalf("RemoveTransaction: %v", err)
	}

	if got := l.DailyBalance(); got != before {
		t.Fatalf("daily balance = %d, want %d", got, before)
	}
	if l.RemainingToday != remBefore {
		t.Fatalf("RemainingToday = %d, want %d", l.RemainingToday, remBefore)
	}
	if l.transactionIndex(tx.ID) != -1 {
		t.Fatal("transaction still present after removal")
	}
}

func TestRemoveMissingTransactionIsError(t *testing.T) {
	l := setupLedger(t)
	if err := l.RemoveTransaction("nope", testNow); !errors.Is(err, ErrUnknownTransaction) {
		t.Fatalf("err = %v, want ErrUnknownTransaction", err)
	}
}

func TestUpdateTransactionReversalSymmetry(t *testing.T) {
	l := setupLedger(t)
	tx, err := l.AddTransaction(TypeExpense, 30, "lunch", AccountDaily, testNow, testNow)
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	balBefore := l.DailyBalance()

	edited := tx
	edited.Amount = -55
	edited.Description = "expensive lunch"
	if err := l.UpdateTransaction(edited, testNow); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if got := l.DailyBalance(); got != 700-55 {
		t.Fatalf("daily balance = %d, want %d", got, 700-55)
	}

	// Editing back restores every affected balance.
	if err := l.UpdateTransaction(tx, testNow); err != nil {
		t.Fatalf("UpdateTransaction (revert): %v", err)
	}
	if got := l.DailyBalance(); got != balBefore {
		t.Fatalf("daily balance = %d, want %d", got, balBefore)
	}
	// Edits re-derive the view from the full log: 670 over 7 days is 95,
	// minus the 30 spent today.
	if l.DailyAllowance != 95 || l.RemainingToday != 65 {
		t.Fatalf("allowance/remaining = %d/%d, want 95/65", l.DailyAllowance, l.RemainingToday)
	}
}

func TestUpdateTransactionMovesBetweenAccounts(t *testing.T) {
	l := setupLedger(t)
	acct, err := l.AddAccount("Vacation", "savings", 200, "", "", testNow)
	if err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	tx, err := l.AddTransaction(TypeExpense, 30, "lunch", AccountDaily, testNow, testNow)
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	edited := tx
	edited.Account = acct.ID
	if err := l.UpdateTransaction(edited, testNow); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if got := l.DailyBalance(); got != 700 {
		t.Fatalf("daily balance = %d, want 700", got)
	}
	if got := l.Account(acct.ID).Balance; got != 170 {
		t.Fatalf("vacation balance = %d, want 170", got)
	}
	// Daily no longer carries today's expense, so the day reads fresh.
	if l.RemainingToday != 100 {
		t.Fatalf("RemainingToday = %d, want 100", l.RemainingToday)
	}
}

func TestUpdateMissingTransactionIsError(t *testing.T) {
	l := setupLedger(t)
	err := l.UpdateTransaction(Transaction{ID: "nope", Account: AccountDaily}, testNow)
	if !errors.Is(err, ErrUnknownTransaction) {
		t.Fatalf("err = %v, want ErrUnknownTransaction", err)
	}
}

func TestTransferConservesTotalBalance(t *testing.T) {
	l := setupLedger(t)
	total := l.TotalBalance()

	pair, err := l.Transfer(50, AccountDaily, AccountSavings, "", testNow)
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if got := l.TotalBalance(); got != total {
		t.Fatalf("total balance = %d, want %d (conservation)", got, total)
	}
	if got := l.DailyBalance(); got != 650 {
		t.Fatalf("daily balance = %d, want 650", got)
	}
	if got := l.Account(AccountSavings).Balance; got != 50 {
		t.Fatalf("savings balance = %d, want 50", got)
	}
	if pair[0].Amount != -50 || pair[1].Amount != 50 {
		t.Fatalf("pair amounts = %d/%d, want -50/+50", pair[0].Amount, pair[1].Amount)
	}
	if pair[0].Type != TypeTransfer || pair[1].Type != TypeTransfer {
		t.Fatalf("pair types = %s/%s, want transfer/transfer", pair[0].Type, pair[1].Type)
	}
	// Default descriptions reference the opposite account.
	if pair[0].Description != "Transfer to Savings" {
		t.Fatalf("withdrawal description = %q", pair[0].Description)
	}
	if pair[1].Description != "Transfer from Daily Budget" {
		t.Fatalf("deposit description = %q", pair[1].Description)
	}
}

func TestTransferSameAccountRejected(t *testing.T) {
	l := setupLedger(t)
	if _, err := l.Transfer(50, AccountDaily, AccountDaily, "", testNow); !errors.Is(err, ErrSameAccount) {
		t.Fatalf("err = %v, want ErrSameAccount", err)
	}
}

func TestTransferOverdrawAllowed(t *testing.T) {
	l := setupLedger(t)
	// Savings holds nothing; the engine warns upstream but executes anyway.
	if _, err := l.Transfer(80, AccountSavings, AccountDaily, "", testNow); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if got := l.Account(AccountSavings).Balance; got != -80 {
		t.Fatalf("savings balance = %d, want -80", got)
	}
}

func TestTransferDoesNotConsumeAllowance(t *testing.T) {
	l := setupLedger(t)
	if _, err := l.Transfer(50, AccountDaily, AccountSavings, "", testNow); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	// The daily balance changed, so the allowance is re-derived (650/7=92),
	// but the transfer is not an expense: nothing counts as spent today.
	if l.DailyAllowance != 92 {
		t.Fatalf("DailyAllowance = %d, want 92", l.DailyAllowance)
	}
	if l.RemainingToday != 92 {
		t.Fatalf("RemainingToday = %d, want 92", l.RemainingToday)
	}
	if l.SpentToday(testNow) != 0 {
		t.Fatalf("SpentToday = %d, want 0", l.SpentToday(testNow))
	}
}

func TestBackdatedEntriesKeepInsertionOrder(t *testing.T) {
	l := setupLedger(t)
	old := testNow.AddDate(0, 0, -3)
	if _, err := l.AddTransaction(TypeExpense, 10, "first", AccountDaily, testNow, testNow); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(TypeExpense, 20, "backdated", AccountDaily, old, testNow); err != nil {
		t.Fatal(err)
	}
	// Insertion order is canonical: the backdated entry is newest.
	if l.Transactions[0].Description != "backdated" {
		t.Fatalf("log head = %q, want the backdated entry", l.Transactions[0].Description)
	}
	if l.Transactions[1].Description != "first" {
		t.Fatalf("log[1] = %q, want %q", l.Transactions[1].Description, "first")
	}
	var prev, cur = l.Transactions[0].Date, l.Transactions[1].Date
	if !prev.Before(cur) {
		t.Fatal("expected the raw log to be out of date order after backdating")
	}
}

func TestTimeOfDayIrrelevantForSameDay(t *testing.T) {
	l := setupLedger(t)
	lateTonight := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 23, 59, 0, 0, time.UTC)
	if _, err := l.AddTransaction(TypeExpense, 30, "late snack", AccountDaily, lateTonight, testNow); err != nil {
		t.Fatal(err)
	}
	if l.RemainingToday != 70 {
		t.Fatalf("RemainingToday = %d, want 70 (same calendar day)", l.RemainingToday)
	}
}
