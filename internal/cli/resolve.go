package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/daybudget/internal/ledger"
)

// resolveAccount maps a user-supplied argument to an account: exact id
// match first, then case-insensitive name match, then unique name prefix.
// On no match the error carries the closest known name as a suggestion.
func resolveAccount(l *ledger.Ledger, arg string) (*ledger.Account, error) {
	if arg == "" {
		return nil, fmt.Errorf("account required: %w", ledger.ErrUnknownAccount)
	}
	if acc := l.Account(arg); acc != nil {
		return acc, nil
	}

	lowered := strings.ToLower(arg)
	var prefix *ledger.Account
	prefixes := 0
	for i := range l.Accounts {
		acc := &l.Accounts[i]
		if strings.ToLower(acc.Name) == lowered {
			return acc, nil
		}
		if strings.HasPrefix(strings.ToLower(acc.Name), lowered) {
			prefix = acc
			prefixes++
		}
	}
	if prefixes == 1 {
		return prefix, nil
	}

	if suggestion := closestAccountName(l, arg); suggestion != "" {
		return nil, fmt.Errorf("%q: %w (did you mean %q?)", arg, ledger.ErrUnknownAccount, suggestion)
	}
	return nil, fmt.Errorf("%q: %w", arg, ledger.ErrUnknownAccount)
}

// closestAccountName returns the account name nearest to arg by edit
// distance, or "" when nothing is plausibly close.
func closestAccountName(l *ledger.Ledger, arg string) string {
	best := ""
	bestDist := -1
	for _, acc := range l.Accounts {
		d := levenshtein.ComputeDistance(strings.ToLower(arg), strings.ToLower(acc.Name))
		if bestDist == -1 || d < bestDist {
			best, bestDist = acc.Name, d
		}
		d = levenshtein.ComputeDistance(strings.ToLower(arg), acc.ID)
		if d < bestDist {
			best, bestDist = acc.Name, d
		}
	}
	// a distance beyond half the input is noise, not a typo
	if bestDist < 0 || bestDist > max(len(arg)/2, 2) {
		return ""
	}
	return best
}
