package rowparse

import (
	"fmt"
	"strings"
)

var romanDigits = []struct {
	value  int
	symbol string
}{
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// maxRoman bounds the ordinals found after names.
const maxRoman = 39

// ToRoman renders n in Roman numerals, 1 <= n <= 39.
func ToRoman(n int) (string, error) {
	if n < 1 || n > maxRoman {
		return "", fmt.Errorf("roman numeral out of range: %d", n)
	}
	var b strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			b.WriteString(d.symbol)
			n -= d.value
		}
	}
	return b.String(), nil
}

// FromRoman parses a canonical Roman numeral between I and XXXIX.
func FromRoman(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	n, rest := 0, s
	for _, d := range romanDigits {
		for strings.HasPrefix(rest, d.symbol) {
			n += d.value
			rest = rest[len(d.symbol):]
		}
	}
	if rest != "" || n == 0 {
		return 0, fmt.Errorf("not a roman numeral: %q", s)
	}
	if canonical, err := ToRoman(n); err != nil || canonical != s {
		return 0, fmt.Errorf("not a canonical roman numeral: %q", s)
	}
	return n, nil
}
