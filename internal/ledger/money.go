package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// ParseAmount converts user input to an integer amount in the smallest
// currency unit. Fractional digits are dropped ("42.9" parses as 42), and
// anything that is not a plain decimal number is rejected. All amounts
// entering the engine go through here so arithmetic never has to re-check
// integrality.
func ParseAmount(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if !amountPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		s = s[:dot]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	return n, nil
}
