package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// The persisted snapshot is the sole durability boundary: one JSON document
// holding the whole aggregate plus the cached derived values. Dates travel
// as ISO-8601 strings; amounts that arrive as fractional numbers (older
// snapshots stored raw division results) are floored back to integers on
// load rather than rejected.

type snapshotBudget struct {
	StartAmount float64 `json:"startAmount"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     string  `json:"endDate,omitempty"`
	AutoSave    bool    `json:"autoSave"`
}

type snapshotAccount struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Balance  float64 `json:"balance"`
	Icon     string  `json:"icon,omitempty"`
	ParentID string  `json:"parentId,omitempty"`
}

type snapshotTransaction struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Account     string  `json:"account"`
	Date        string  `json:"date"`
}

type snapshot struct {
	Budget         snapshotBudget        `json:"budget"`
	Accounts       []snapshotAccount     `json:"accounts"`
	Transactions   []snapshotTransaction `json:"transactions"`
	DailyAllowance float64               `json:"dailyAllowance"`
	RemainingToday float64               `json:"remainingToday"`
	Progress       float64               `json:"progress"`
	LastCheckedDay string                `json:"lastCheckedDay,omitempty"`
	IsSetup        bool                  `json:"isSetup"`
}

func encodeDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// decodeDate parses an ISO-8601 date string. Absent or malformed values
// decode as unset rather than failing the whole snapshot.
func decodeDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func toUnits(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(math.Floor(f))
}

// EncodeSnapshot serializes the ledger to the persisted snapshot document.
func EncodeSnapshot(l *Ledger) ([]byte, error) {
	s := snapshot{
		Budget: snapshotBudget{
			StartAmount: float64(l.Budget.StartAmount),
			StartDate:   encodeDate(l.Budget.StartDate),
			EndDate:     encodeDate(l.Budget.EndDate),
			AutoSave:    l.Budget.AutoSave,
		},
		DailyAllowance: float64(l.DailyAllowance),
		RemainingToday: float64(l.RemainingToday),
		Progress:       float64(l.Progress),
		LastCheckedDay: encodeDate(l.LastCheckedDay),
		IsSetup:        l.IsSetup,
	}
	s.Accounts = make([]snapshotAccount, 0, len(l.Accounts))
	for _, a := range l.Accounts {
		s.Accounts = append(s.Accounts, snapshotAccount{
			ID: a.ID, Name: a.Name, Type: a.Type,
			Balance: float64(a.Balance), Icon: a.Icon, ParentID: a.ParentID,
		})
	}
	s.Transactions = make([]snapshotTransaction, 0, len(l.Transactions))
	for _, t := range l.Transactions {
		s.Transactions = append(s.Transactions, snapshotTransaction{
			ID: t.ID, Type: string(t.Type), Amount: float64(t.Amount),
			Description: t.Description, Account: t.Account, Date: encodeDate(t.Date),
		})
	}
	return json.MarshalIndent(s, "", "  ")
}

// DecodeSnapshot rebuilds a ledger from a persisted snapshot. An empty blob
// yields a fresh default ledger; an empty accounts array is replaced with
// the defaults so downstream calculations can index into the daily account
// unconditionally. Only structurally invalid JSON is an error — the caller
// decides whether to fall back to defaults.
func DecodeSnapshot(data []byte) (*Ledger, error) {
	if len(data) == 0 {
		return New(), nil
	}
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	l := &Ledger{
		Budget: Budget{
			StartAmount: toUnits(s.Budget.StartAmount),
			StartDate:   decodeDate(s.Budget.StartDate),
			EndDate:     decodeDate(s.Budget.EndDate),
			AutoSave:    s.Budget.AutoSave,
		},
		DailyAllowance: toUnits(s.DailyAllowance),
		RemainingToday: toUnits(s.RemainingToday),
		Progress:       toUnits(s.Progress),
		LastCheckedDay: decodeDate(s.LastCheckedDay),
		IsSetup:        s.IsSetup,
	}
	for _, a := range s.Accounts {
		l.Accounts = append(l.Accounts, Account{
			ID: a.ID, Name: a.Name, Type: a.Type,
			Balance: toUnits(a.Balance), Icon: a.Icon, ParentID: a.ParentID,
		})
	}
	for _, t := range s.Transactions {
		l.Transactions = append(l.Transactions, Transaction{
			ID: t.ID, Type: TransactionType(t.Type), Amount: toUnits(t.Amount),
			Description: t.Description, Account: t.Account, Date: decodeDate(t.Date),
		})
	}
	l.EnsureDefaults()
	return l, nil
}
