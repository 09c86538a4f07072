package ledger

import "time"

// SweepDescription marks rollover sweep transactions in the log.
const SweepDescription = "Daily budget savings"

// CheckRollover advances the ledger when the calendar day has moved past
// LastCheckedDay. If a previous day was tracked, its unspent remainder is
// swept from daily into savings (when autoSave is on) and recorded as a
// transfer; the allowance is then re-derived for the new day.
//
// The calendar-day guard makes the call idempotent: invoking it twice on the
// same day performs nothing the second time. If the application skips N>1
// days, a single sweep fires using only the last tracked day's remainder;
// the intervening days are not reconstructed.
//
// The sweep and the recalculation are independently gated: an unset end date
// skips the recalculation but not the sweep.
func (l *Ledger) CheckRollover(now time.Time) (swept int64, rolled bool) {
	if !l.IsSetup {
		return 0, false
	}
	today := startOfDay(now)
	if !l.LastCheckedDay.IsZero() && sameDay(today, l.LastCheckedDay) {
		return 0, false
	}

	if !l.LastCheckedDay.IsZero() && l.RemainingToday > 0 && l.Budget.AutoSave {
		swept = l.RemainingToday
		if daily := l.Account(AccountDaily); daily != nil {
			daily.Balance -= swept
		}
		if savings := l.Account(AccountSavings); savings != nil {
			savings.Balance += swept
		}
		l.prepend(Transaction{
			ID:          newID(),
			Type:        TypeTransfer,
			Amount:      swept,
			Description: SweepDescription,
			Account:     AccountSavings,
			Date:        now,
		})
	}

	l.Recalculate(now)
	l.LastCheckedDay = today
	return swept, true
}
