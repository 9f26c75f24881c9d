package dao

import "testing"

func TestEscapeLikePrefix(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"alice", "alice%"},
		{"", "%"},
		{"a%b", `a\%b%`},
		{"a_b", `a\_b%`},
		{`a\b`, `a\\b%`},
	}
	for _, c := range cases {
		if got := escapeLikePrefix(c.in); got != c.expected {
			t.Errorf("escapeLikePrefix(%q): expected %q got %q", c.in, c.expected, got)
		}
	}
}
