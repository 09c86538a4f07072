package ledger

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{" 42 ", 42, false},
		{"42.5", 42, false},
		{"42.999", 42, false},
		{"-42", -42, false},
		{"-42.5", -42, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"12abc", 0, true},
		{"1,000", 0, true},
		{".5", 0, true},
		{"-", 0, true},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q) = %d, want error", c.in, got)
			} else if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", c.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
