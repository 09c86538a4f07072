package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/daybudget/internal/ledger"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	posStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	negStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	barFilled   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barEmpty    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// money renders a signed amount with the configured currency symbol, e.g.
// "$120" or "-$45".
func (a *app) money(amount int64) string {
	sym := a.cfg.UI.CurrencySymbol
	if amount < 0 {
		return "-" + sym + fmt.Sprintf("%d", -amount)
	}
	return sym + fmt.Sprintf("%d", amount)
}

func (a *app) moneyStyled(amount int64) string {
	s := a.money(amount)
	if amount < 0 {
		return negStyle.Render(s)
	}
	return posStyle.Render(s)
}

func (a *app) date(t time.Time) string {
	if t.IsZero() {
		return dimStyle.Render("-")
	}
	return t.Format(a.cfg.UI.DateFormat)
}

// progressBar draws a fixed-width bar for a 0..100 percentage.
func progressBar(pct int64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct) * width / 100
	return barFilled.Render(strings.Repeat("█", filled)) +
		barEmpty.Render(strings.Repeat("░", width-filled))
}

func (a *app) renderStatus(l *ledger.Ledger, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Daily Budget") + "\n\n")

	days := l.RemainingDays(now)
	fmt.Fprintf(&b, "%s  %s\n", labelStyle.Render("Remaining today"), valueStyle.Render(a.money(l.RemainingToday)))
	fmt.Fprintf(&b, "%s  %s\n", labelStyle.Render("Daily allowance"), a.money(l.DailyAllowance))
	fmt.Fprintf(&b, "%s  %s %s\n", labelStyle.Render("Progress       "), progressBar(l.Progress, 20), dimStyle.Render(fmt.Sprintf("%d%%", l.Progress)))
	fmt.Fprintf(&b, "%s  %d (until %s)\n", labelStyle.Render("Days left      "), days, a.date(l.Budget.EndDate))
	fmt.Fprintf(&b, "%s  %s\n", labelStyle.Render("Daily balance  "), a.moneyStyled(l.DailyBalance()))

	spent := l.SpentToday(now)
	if spent > 0 {
		fmt.Fprintf(&b, "%s  %s\n", labelStyle.Render("Spent today    "), negStyle.Render(a.money(spent)))
	}
	return b.String()
}

func (a *app) renderAccounts(l *ledger.Ledger) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-14s %-12s %-10s %10s", "ID", "NAME", "TYPE", "BALANCE")) + "\n")
	for _, acc := range l.Accounts {
		name := acc.Name
		if acc.ParentID != "" {
			name = "  " + name
		}
		fmt.Fprintf(&b, "%-14s %-12s %-10s %10s\n", acc.ID, name, acc.Type, a.money(acc.Balance))
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Total:"), valueStyle.Render(a.money(l.TotalBalance())))
	return b.String()
}

func (a *app) renderHistory(l *ledger.Ledger, limit int, accountID string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %-8s %10s  %-12s %s", "DATE", "TYPE", "AMOUNT", "ACCOUNT", "DESCRIPTION")) + "\n")
	shown := 0
	for _, tx := range l.Transactions {
		if accountID != "" && tx.Account != accountID {
			continue
		}
		if limit > 0 && shown >= limit {
			fmt.Fprintf(&b, "%s\n", dimStyle.Render("…"))
			break
		}
		accName := tx.Account
		if acc := l.Account(tx.Account); acc != nil {
			accName = acc.Name
		}
		// pad before styling so the ANSI codes don't skew the columns
		amt := fmt.Sprintf("%10s", a.money(tx.Amount))
		if tx.Amount < 0 {
			amt = negStyle.Render(amt)
		} else {
			amt = posStyle.Render(amt)
		}
		fmt.Fprintf(&b, "%-10s %-8s %s  %-12s %s\n",
			a.date(tx.Date), tx.Type, amt, accName, tx.Description)
		shown++
	}
	if shown == 0 {
		b.WriteString(dimStyle.Render("no transactions") + "\n")
	}
	return b.String()
}
