package salary

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts above this are treated as corrupted data, not real salaries.
var maxAmount = decimal.NewFromInt(100_000_000)

// Seasons outside this window are rejected as implausible.
const (
	minSeason = 1900
	maxSeason = 2100
)

// ParseAmount turns free-text salary cell content into an exact decimal.
// Everything except digits and decimal points is stripped. When more than
// one point survives, the first is kept as the separator and the remaining
// fragments are concatenated as fractional digits ("1.234.56" -> "1.23456"),
// collapsing stray formatting separators instead of erroring. Returns false
// for empty, unparsable, negative-looking, non-positive, or implausibly
// large values.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	// A leading minus marks the value negative; salaries must be positive,
	// so reject before the sign would be stripped away.
	if strings.HasPrefix(strings.TrimSpace(raw), "-") {
		return decimal.Decimal{}, false
	}

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteByte(byte(r))
		}
	}
	s := b.String()
	if s == "" {
		return decimal.Decimal{}, false
	}

	if strings.Count(s, ".") > 1 {
		head, tail, _ := strings.Cut(s, ".")
		s = head + "." + strings.ReplaceAll(tail, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if !d.IsPositive() || d.GreaterThan(maxAmount) {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseSeason turns free-text season cell content into a four-digit year.
// Non-digit characters are stripped and the remaining digit groups
// concatenated, so punctuation inside a year is ignored rather than treated
// as a separator. Returns false outside [1900, 2100].
func ParseSeason(raw string) (int, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	s := b.String()
	if s == "" {
		return 0, false
	}

	yr, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if yr < minSeason || yr > maxSeason {
		return 0, false
	}
	return yr, true
}
