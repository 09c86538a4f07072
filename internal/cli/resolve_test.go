package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jask/daybudget/internal/ledger"
)

func testLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if err := l.Setup(700, now.AddDate(0, 0, 6), now); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := l.AddAccount("Groceries", "custom", 0, "", "", now); err != nil {
		t.Fatalf("add account: %v", err)
	}
	return l
}

func TestResolveAccountByID(t *testing.T) {
	l := testLedger(t)
	acc, err := resolveAccount(l, "savings")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if acc.ID != ledger.AccountSavings {
		t.Fatalf("got %q", acc.ID)
	}
}

func TestResolveAccountByNameCaseInsensitive(t *testing.T) {
	l := testLedger(t)
	acc, err := resolveAccount(l, "groceries")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if acc.Name != "Groceries" {
		t.Fatalf("got %q", acc.Name)
	}
}

func TestResolveAccountByUniquePrefix(t *testing.T) {
	l := testLedger(t)
	acc, err := resolveAccount(l, "groc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if acc.Name != "Groceries" {
		t.Fatalf("got %q", acc.Name)
	}
}

func TestResolveAccountTypoSuggestsClosest(t *testing.T) {
	l := testLedger(t)
	_, err := resolveAccount(l, "grocceries")
	if !errors.Is(err, ledger.ErrUnknownAccount) {
		t.Fatalf("want ErrUnknownAccount, got %v", err)
	}
	if !strings.Contains(err.Error(), "Groceries") {
		t.Fatalf("no suggestion in %q", err.Error())
	}
}

func TestResolveAccountGarbageHasNoSuggestion(t *testing.T) {
	l := testLedger(t)
	_, err := resolveAccount(l, "zzzzzzzzzzzzzzz")
	if !errors.Is(err, ledger.ErrUnknownAccount) {
		t.Fatalf("want ErrUnknownAccount, got %v", err)
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("unexpected suggestion in %q", err.Error())
	}
}

func TestFindTransactionByPrefix(t *testing.T) {
	l := testLedger(t)
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	tx, err := l.AddTransaction(ledger.TypeExpense, 30, "lunch", ledger.AccountDaily, time.Time{}, now)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := findTransaction(l, tx.ID[:8])
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != tx.ID {
		t.Fatalf("got %q want %q", got.ID, tx.ID)
	}

	if _, err := findTransaction(l, "nope"); !errors.Is(err, ledger.ErrUnknownTransaction) {
		t.Fatalf("want ErrUnknownTransaction, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	for _, input := range []string{"2026-03-16", "16/03/2026"} {
		d, err := parseDate(input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if d.Year() != 2026 || d.Month() != time.March || d.Day() != 16 {
			t.Fatalf("%q parsed to %v", input, d)
		}
	}
	if _, err := parseDate("soon"); err == nil {
		t.Fatal("want error for garbage date")
	}
}

func TestParseBool(t *testing.T) {
	for input, want := range map[string]bool{"on": true, "Off": false, "yes": true, "0": false} {
		got, err := parseBool(input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if got != want {
			t.Fatalf("%q: got %v", input, got)
		}
	}
	if _, err := parseBool("maybe"); err == nil {
		t.Fatal("want error")
	}
}
