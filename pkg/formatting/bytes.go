// Package formatting holds small text helpers shared by config parsing,
// logging, and the scoring response decoder.
package formatting

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Binary size units; index i is 1024^i bytes.
var sizeUnits = [...]string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders n with the largest unit that keeps the value at or above
// one, using precision decimal places.
func FormatBytes(n int64, precision int) string {
	precision = max(precision, 0)

	sign := ""
	v := float64(n)
	if n < 0 {
		sign, v = "-", -v
	}

	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		precision = 0
	}
	return sign + strconv.FormatFloat(v, 'f', precision, 64) + " " + sizeUnits[i]
}

// ParseBytes reads sizes such as "25MB", "1.5 gb" or "4096". A missing unit
// means bytes. Results that overflow int64 are rejected.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty size")
	}

	split := strings.IndexFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsSpace(r) })
	num, unit := s, ""
	if split >= 0 {
		num, unit = s[:split], strings.ToUpper(strings.TrimSpace(s[split:]))
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	exp := 0
	if unit != "" {
		exp = -1
		for i, u := range sizeUnits {
			if u == unit {
				exp = i
				break
			}
		}
		if exp < 0 {
			return 0, fmt.Errorf("unknown size unit %q", unit)
		}
	}

	total := v * math.Pow(1024, float64(exp))
	if total >= math.MaxInt64 {
		return 0, fmt.Errorf("size %q overflows", s)
	}
	return int64(total), nil
}
