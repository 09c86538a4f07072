package ledger

import (
	"fmt"
	"time"
)

// AddTransaction records an expense or income of amount (always positive as
// supplied; the engine applies the sign) against accountID, attributed to
// date. Expenses against the daily account interact with today's allowance:
//
//   - spend within remainingToday simply consumes it;
//   - overspend still debits the balance, then re-derives the allowance from
//     the reduced balance over the remaining days, zeroing remainingToday
//     and progress for the rest of today.
//
// Other accounts only have their balance adjusted.
func (l *Ledger) AddTransaction(typ TransactionType, amount int64, description, accountID string, date, now time.Time) (Transaction, error) {
	if !l.IsSetup {
		return Transaction{}, ErrNotSetup
	}
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	var delta int64
	switch typ {
	case TypeExpense:
		delta = -amount
	case TypeIncome:
		delta = amount
	default:
		return Transaction{}, fmt.Errorf("%w: %q", ErrInvalidType, typ)
	}
	acct := l.Account(accountID)
	if acct == nil {
		return Transaction{}, fmt.Errorf("%w: %q", ErrUnknownAccount, accountID)
	}
	if date.IsZero() {
		date = now
	}

	t := Transaction{
		ID:          newID(),
		Type:        typ,
		Amount:      delta,
		Description: description,
		Account:     accountID,
		Date:        date,
	}
	acct.Balance += delta
	l.prepend(t)

	if accountID != AccountDaily {
		return t, nil
	}
	switch {
	case typ == TypeExpense && sameDay(date, now) && amount <= l.RemainingToday:
		// Within today's allowance: the allowance itself is untouched.
		l.RemainingToday -= amount
		l.Progress = progressPct(l.RemainingToday, l.DailyAllowance)
	case typ == TypeExpense && sameDay(date, now):
		// Overspend: spread the reduced balance over the remaining days and
		// treat today as fully consumed.
		l.Recalculate(now)
		l.RemainingToday = 0
		l.Progress = 0
	default:
		// Income or a backdated expense changed the daily balance.
		l.Recalculate(now)
	}
	return t, nil
}

// UpdateTransaction replaces the log entry with updated (matched by ID),
// reversing the original's balance effect on its original account and
// applying the new amount to the (possibly different) new account. When the
// daily account is touched, the view values are re-derived from the full
// set of today's expenses rather than patched incrementally, so repeated
// edits cannot drift.
func (l *Ledger) UpdateTransaction(updated Transaction, now time.Time) error {
	if !l.IsSetup {
		return ErrNotSetup
	}
	idx := l.transactionIndex(updated.ID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTransaction, updated.ID)
	}
	target := l.Account(updated.Account)
	if target == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAccount, updated.Account)
	}
	orig := l.Transactions[idx]
	if updated.Date.IsZero() {
		updated.Date = orig.Date
	}

	if a := l.Account(orig.Account); a != nil {
		a.Balance -= orig.Amount
	}
	target.Balance += updated.Amount
	l.Transactions[idx] = updated

	if orig.Account == AccountDaily || updated.Account == AccountDaily {
		l.Recalculate(now)
	}
	return nil
}

// RemoveTransaction deletes the transaction by id and reverses its balance
// effect. A daily-account expense dated today hands its amount back to
// remainingToday; any other daily-account change re-derives the view.
func (l *Ledger) RemoveTransaction(id string, now time.Time) error {
	if !l.IsSetup {
		return ErrNotSetup
	}
	idx := l.transactionIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTransaction, id)
	}
	t := l.Transactions[idx]
	if a := l.Account(t.Account); a != nil {
		a.Balance -= t.Amount
	}
	l.Transactions = append(l.Transactions[:idx], l.Transactions[idx+1:]...)

	if t.Account != AccountDaily {
		return nil
	}
	if t.Type == TypeExpense && sameDay(t.Date, now) {
		refund := t.Amount
		if refund < 0 {
			refund = -refund
		}
		l.RemainingToday += refund
		l.Progress = progressPct(l.RemainingToday, l.DailyAllowance)
	} else {
		l.Recalculate(now)
	}
	return nil
}

// Transfer moves amount between two accounts as a paired, zero-sum pair of
// transfer records. Overdrawing the source is allowed (the caller warns, the
// engine executes); transferring an account onto itself is not.
func (l *Ledger) Transfer(amount int64, fromID, toID, description string, now time.Time) ([2]Transaction, error) {
	if !l.IsSetup {
		return [2]Transaction{}, ErrNotSetup
	}
	if amount <= 0 {
		return [2]Transaction{}, ErrInvalidAmount
	}
	if fromID == toID {
		return [2]Transaction{}, ErrSameAccount
	}
	from := l.Account(fromID)
	if from == nil {
		return [2]Transaction{}, fmt.Errorf("%w: %q", ErrUnknownAccount, fromID)
	}
	to := l.Account(toID)
	if to == nil {
		return [2]Transaction{}, fmt.Errorf("%w: %q", ErrUnknownAccount, toID)
	}

	outDesc := description
	inDesc := description
	if description == "" {
		outDesc = "Transfer to " + to.Name
		inDesc = "Transfer from " + from.Name
	}

	withdrawal := Transaction{
		ID:          newID(),
		Type:        TypeTransfer,
		Amount:      -amount,
		Description: outDesc,
		Account:     fromID,
		Date:        now,
	}
	deposit := Transaction{
		ID:          newID(),
		Type:        TypeTransfer,
		Amount:      amount,
		Description: inDesc,
		Account:     toID,
		Date:        now,
	}

	from.Balance -= amount
	to.Balance += amount
	l.prepend(withdrawal)
	l.prepend(deposit)

	if fromID == AccountDaily || toID == AccountDaily {
		l.Recalculate(now)
	}
	return [2]Transaction{withdrawal, deposit}, nil
}
