package ledger

import "time"

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameDay compares calendar days, ignoring clock time.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween returns whole calendar days from 'from' to 'to'. Both are
// normalized to UTC midnight first so DST shifts cannot produce off-by-one
// fractions.
func daysBetween(to, from time.Time) int {
	ty, tm, td := to.Date()
	fy, fm, fd := from.Date()
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}

// floorDiv divides flooring toward minus infinity, so a negative balance
// spread over remaining days rounds down, not toward zero.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// progressPct derives the 0..100 percentage of today's allowance still
// unspent. A zero allowance always reads as 0 to avoid dividing by zero.
func progressPct(remaining, allowance int64) int64 {
	if allowance <= 0 {
		return 0
	}
	p := remaining * 100 / allowance
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// RemainingDays counts the days left in the allocation period, inclusive of
// the end date itself: a budget ending today still allocates one final day.
func (l *Ledger) RemainingDays(now time.Time) int {
	if l.Budget.EndDate.IsZero() {
		return 0
	}
	days := daysBetween(l.Budget.EndDate, now) + 1
	if days < 0 {
		return 0
	}
	return days
}

// Recalculate re-derives dailyAllowance, remainingToday and progress from
// the current daily-account balance, the configured end date and today's
// already-recorded spending. It is invoked at setup, after rollover, and
// after any edit that changes the daily balance or the end date; the
// allowance is a function of the current balance, never a stored historical
// value. No-ops when the end date is unset.
func (l *Ledger) Recalculate(now time.Time) {
	if l.Budget.EndDate.IsZero() {
		return
	}
	days := l.RemainingDays(now)
	if days == 0 {
		// Period over: terminal state.
		l.DailyAllowance = 0
		l.RemainingToday = 0
		l.Progress = 0
		return
	}
	allowance := floorDiv(l.DailyBalance(), int64(days))
	if allowance < 0 {
		allowance = 0
	}
	remaining := allowance - l.SpentToday(now)
	if remaining < 0 {
		remaining = 0
	}
	l.DailyAllowance = allowance
	l.RemainingToday = remaining
	l.Progress = progressPct(remaining, allowance)
}

// SpentToday sums the absolute amounts of today's expense transactions
// against the daily account. Transfers and income do not count.
func (l *Ledger) SpentToday(now time.Time) int64 {
	var spent int64
	for _, t := range l.Transactions {
		if t.Account != AccountDaily || t.Type != TypeExpense {
			continue
		}
		if !sameDay(t.Date, now) {
			continue
		}
		if t.Amount < 0 {
			spent += -t.Amount
		}
	}
	return spent
}
