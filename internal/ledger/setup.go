package ledger

import "time"

// Setup performs the one-time transition into the configured state: it
// seeds the daily account with startAmount, records the initial deposit,
// starts the allocation period ending endDate (inclusive) and derives the
// first day's allowance with the full amount available.
func (l *Ledger) Setup(startAmount int64, endDate time.Time, now time.Time) error {
	if l.IsSetup {
		return ErrAlreadySetup
	}
	if startAmount <= 0 {
		return ErrInvalidAmount
	}
	if endDate.IsZero() {
		return ErrEndDateRequired
	}
	l.EnsureDefaults()

	l.Account(AccountDaily).Balance = startAmount
	l.Transactions = []Transaction{{
		ID:          newID(),
		Type:        TypeIncome,
		Amount:      startAmount,
		Description: "Initial deposit",
		Account:     AccountDaily,
		Date:        now,
	}}
	l.Budget = Budget{
		StartAmount: startAmount,
		StartDate:   startOfDay(now),
		EndDate:     endDate,
		AutoSave:    true,
	}
	l.LastCheckedDay = startOfDay(now)
	l.IsSetup = true
	l.Recalculate(now)
	return nil
}

// UpdateConfig adjusts the starting amount and end date of a configured
// budget. The difference between the new and old starting amount is applied
// to the current daily balance as a delta, recorded as an adjustment
// transaction; it is not a reset to the new amount. The day's view is then
// re-derived with the full new allowance available, treating today as fresh
// even mid-day.
func (l *Ledger) UpdateConfig(startAmount int64, endDate time.Time, now time.Time) error {
	if !l.IsSetup {
		return ErrNotSetup
	}
	if startAmount <= 0 {
		return ErrInvalidAmount
	}
	if endDate.IsZero() {
		return ErrEndDateRequired
	}

	delta := startAmount - l.Budget.StartAmount
	if daily := l.Account(AccountDaily); daily != nil {
		daily.Balance += delta
	}
	if delta != 0 {
		l.prepend(Transaction{
			ID:          newID(),
			Type:        TypeTransfer,
			Amount:      delta,
			Description: "Budget adjustment",
			Account:     AccountDaily,
			Date:        now,
		})
	}
	l.Budget.StartAmount = startAmount
	l.Budget.EndDate = endDate

	l.Recalculate(now)
	// Reconfiguration resets today: ignore what was already spent.
	l.RemainingToday = l.DailyAllowance
	l.Progress = progressPct(l.RemainingToday, l.DailyAllowance)
	return nil
}

// SetAutoSave toggles the day-rollover sweep into savings.
func (l *Ledger) SetAutoSave(on bool) error {
	if !l.IsSetup {
		return ErrNotSetup
	}
	l.Budget.AutoSave = on
	return nil
}

// ClearData wipes everything and returns the ledger to the unconfigured
// default state.
func (l *Ledger) ClearData() {
	*l = *New()
}
