package momo

import (
	"strconv"
	"strings"
)

// parseAmount turns a captured figure such as "21,705" into an integer.
// Empty, signed, non-numeric and overflowing captures are reported as absent.
func parseAmount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") {
		return 0, false
	}

	clean := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\u00a0':
			return -1
		}
		return r
	}, s)
	if clean == "" {
		return 0, false
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
