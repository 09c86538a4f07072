package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/jask/daybudget/internal/config"
)

func testApp() *app {
	cfg := config.Config{}
	cfg.UI.CurrencySymbol = "$"
	cfg.UI.DateFormat = "02/01"
	return &app{cfg: cfg}
}

func TestMoneyFormatting(t *testing.T) {
	a := testApp()
	if got := a.money(120); got != "$120" {
		t.Fatalf("got %q", got)
	}
	if got := a.money(-45); got != "-$45" {
		t.Fatalf("got %q", got)
	}
	if got := a.money(0); got != "$0" {
		t.Fatalf("got %q", got)
	}
}

func TestProgressBarBounds(t *testing.T) {
	full := progressBar(100, 10)
	if strings.Count(full, "█") != 10 {
		t.Fatalf("full bar wrong: %q", full)
	}
	empty := progressBar(0, 10)
	if strings.Count(empty, "░") != 10 {
		t.Fatalf("empty bar wrong: %q", empty)
	}
	// out-of-range values clamp instead of panicking
	if strings.Count(progressBar(250, 10), "█") != 10 {
		t.Fatal("overrange not clamped")
	}
	if strings.Count(progressBar(-5, 10), "░") != 10 {
		t.Fatal("underrange not clamped")
	}
}

func TestRenderStatusShowsCoreNumbers(t *testing.T) {
	a := testApp()
	l := testLedger(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	out := a.renderStatus(l, now)
	if !strings.Contains(out, "$100") {
		t.Fatalf("no allowance in output:\n%s", out)
	}
	if !strings.Contains(out, "7") {
		t.Fatalf("no day count in output:\n%s", out)
	}
}

func TestRenderHistoryFiltersAndLimits(t *testing.T) {
	a := testApp()
	l := testLedger(t)
	out := a.renderHistory(l, 1, "")
	if !strings.Contains(out, "Initial deposit") {
		t.Fatalf("missing log head:\n%s", out)
	}
	out = a.renderHistory(l, 0, "no-such-account")
	if !strings.Contains(out, "no transactions") {
		t.Fatalf("filter not applied:\n%s", out)
	}
}
