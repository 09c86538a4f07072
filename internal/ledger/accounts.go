package ledger

import (
	"fmt"
	"time"
)

// AddAccount creates a new account. A positive opening balance is recorded
// as an income transaction so the log explains where the money came from.
func (l *Ledger) AddAccount(name, accType string, balance int64, icon, parentID string, now time.Time) (Account, error) {
	if !l.IsSetup {
		return Account{}, ErrNotSetup
	}
	if icon == "" {
		icon = "wallet"
	}
	a := Account{
		ID:       newID(),
		Name:     name,
		Type:     accType,
		Balance:  balance,
		Icon:     icon,
		ParentID: parentID,
	}
	l.Accounts = append(l.Accounts, a)
	if balance > 0 {
		l.prepend(Transaction{
			ID:          newID(),
			Type:        TypeIncome,
			Amount:      balance,
			Description: "Initial deposit to " + name,
			Account:     a.ID,
			Date:        now,
		})
	}
	return a, nil
}

// UpdateAccount overwrites the stored account matched by ID. Editing a
// reserved account is allowed (only deletion is protected); if the daily
// balance was changed directly the allowance is re-derived.
func (l *Ledger) UpdateAccount(updated Account, now time.Time) error {
	if !l.IsSetup {
		return ErrNotSetup
	}
	a := l.Account(updated.ID)
	if a == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAccount, updated.ID)
	}
	balanceChanged := a.Balance != updated.Balance
	*a = updated
	if updated.ID == AccountDaily && balanceChanged {
		l.Recalculate(now)
	}
	return nil
}

// DeleteAccount removes a non-reserved account. A non-zero balance is swept
// into savings first, recorded as a transfer-in on savings plus a closing
// record on the deleted account. The closing record's account reference is
// left dangling on purpose: it documents the deletion.
func (l *Ledger) DeleteAccount(id string, now time.Time) error {
	if !l.IsSetup {
		return ErrNotSetup
	}
	if IsReserved(id) {
		return fmt.Errorf("%w: %q", ErrReservedAccount, id)
	}
	acct := l.Account(id)
	if acct == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAccount, id)
	}
	balance, name := acct.Balance, acct.Name

	if balance != 0 {
		if savings := l.Account(AccountSavings); savings != nil {
			savings.Balance += balance
		}
		l.prepend(Transaction{
			ID:          newID(),
			Type:        TypeTransfer,
			Amount:      -balance,
			Description: "Account deleted: " + name,
			Account:     id,
			Date:        now,
		})
		l.prepend(Transaction{
			ID:          newID(),
			Type:        TypeTransfer,
			Amount:      balance,
			Description: "Transfer from deleted account: " + name,
			Account:     AccountSavings,
			Date:        now,
		})
	}

	for i := range l.Accounts {
		if l.Accounts[i].ID == id {
			l.Accounts = append(l.Accounts[:i], l.Accounts[i+1:]...)
			break
		}
	}
	return nil
}
