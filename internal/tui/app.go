// Package tui is a small read-only dashboard over the budget service.
// Mutations stay on the CLI; the dashboard just shows the day's numbers
// and refreshes (which is itself an interaction, so rollover still fires).
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/daybudget/internal/config"
	"github.com/jask/daybudget/internal/ledger"
	"github.com/jask/daybudget/internal/service"
)

type appState string

const (
	viewDashboard appState = "dashboard"
	viewHistory   appState = "history"
)

// App ties the dashboard views to the service.
type App struct {
	ctx    context.Context
	svc    *service.BudgetService
	cfg    config.Config
	state  appState
	ledger *ledger.Ledger
	cursor int
	status string
	width  int
}

func New(ctx context.Context, cfg config.Config, svc *service.BudgetService) *App {
	return &App{
		ctx:   ctx,
		svc:   svc,
		cfg:   cfg,
		state: viewDashboard,
	}
}

type ledgerMsg *ledger.Ledger

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func (a *App) Init() tea.Cmd {
	return a.refresh()
}

func (a *App) refresh() tea.Cmd {
	return func() tea.Msg {
		l, err := a.svc.View(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return ledgerMsg(l)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "d":
			a.state = viewDashboard
		case "h":
			a.state = viewHistory
		case "r":
			a.status = "refreshing..."
			return a, a.refresh()
		case "up", "k":
			if a.state == viewHistory && a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.ledger != nil && a.state == viewHistory && a.cursor < len(a.ledger.Transactions)-1 {
				a.cursor++
			}
		}
	case ledgerMsg:
		a.ledger = (*ledger.Ledger)(m)
		a.status = ""
		if a.cursor >= len(a.ledger.Transactions) {
			a.cursor = 0
		}
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	bigStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	negStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	barOn       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barOff      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// dateStr renders a dash for unset dates; a decoded snapshot may carry a
// zero end date.
func (a *App) dateStr(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(a.cfg.UI.DateFormat)
}

func (a *App) money(v int64) string {
	sym := a.cfg.UI.CurrencySymbol
	if v < 0 {
		return "-" + sym + fmt.Sprintf("%d", -v)
	}
	return sym + fmt.Sprintf("%d", v)
}

func (a *App) View() string {
	if a.ledger == nil {
		return "loading...\n"
	}
	var body string
	switch a.state {
	case viewHistory:
		body = a.renderHistory()
	default:
		body = a.renderDashboard()
	}
	help := dimStyle.Render("d dashboard · h history · r refresh · q quit")
	if a.status != "" {
		help = a.status + "\n" + help
	}
	return body + "\n" + help + "\n"
}

func (a *App) renderDashboard() string {
	l := a.ledger
	var b strings.Builder
	b.WriteString(titleStyle.Render("Daily Budget") + "\n\n")
	if !l.IsSetup {
		b.WriteString("Not configured. Run: daybudget setup <amount> <end-date>\n")
		return b.String()
	}

	now := a.now()
	b.WriteString(bigStyle.Render(a.money(l.RemainingToday)) + labelStyle.Render(" remaining today") + "\n")
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("of"), a.money(l.DailyAllowance))

	filled := int(l.Progress) * 24 / 100
	b.WriteString(barOn.Render(strings.Repeat("█", filled)) + barOff.Render(strings.Repeat("░", 24-filled)))
	fmt.Fprintf(&b, " %d%%\n\n", l.Progress)

	fmt.Fprintf(&b, "%s %d days until %s\n", labelStyle.Render("Runway:"), l.RemainingDays(now), a.dateStr(l.Budget.EndDate))
	b.WriteString("\n")
	for _, acc := range l.Accounts {
		bal := a.money(acc.Balance)
		if acc.Balance < 0 {
			bal = negStyle.Render(bal)
		}
		fmt.Fprintf(&b, "  %-14s %s\n", acc.Name, bal)
	}
	return b.String()
}

func (a *App) renderHistory() string {
	l := a.ledger
	var b strings.Builder
	b.WriteString(titleStyle.Render("History") + "\n\n")
	if len(l.Transactions) == 0 {
		b.WriteString(dimStyle.Render("no transactions") + "\n")
		return b.String()
	}
	// window around the cursor
	const page = 15
	start := a.cursor - page/2
	if start < 0 {
		start = 0
	}
	end := start + page
	if end > len(l.Transactions) {
		end = len(l.Transactions)
	}
	for i := start; i < end; i++ {
		tx := l.Transactions[i]
		marker := "  "
		if i == a.cursor {
			marker = cursorStyle.Render("> ")
		}
		accName := tx.Account
		if acc := l.Account(tx.Account); acc != nil {
			accName = acc.Name
		}
		amt := fmt.Sprintf("%9s", a.money(tx.Amount))
		if tx.Amount < 0 {
			amt = negStyle.Render(amt)
		}
		fmt.Fprintf(&b, "%s%-10s %-8s %s  %-12s %s\n",
			marker, a.dateStr(tx.Date), tx.Type, amt, accName, tx.Description)
	}
	if end < len(l.Transactions) {
		fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("… %d more", len(l.Transactions)-end)))
	}
	return b.String()
}

func (a *App) now() time.Time {
	if a.svc != nil && a.svc.Now != nil {
		return a.svc.Now()
	}
	return time.Now()
}

// Run starts the program on the alternate screen.
func Run(ctx context.Context, cfg config.Config, svc *service.BudgetService) error {
	p := tea.NewProgram(New(ctx, cfg, svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
