// Package normalize converts pt-BR formatted currency text into decimals and
// back.
//
// Report amounts use a period as the thousands separator and a comma as the
// decimal separator, prefixed by the "R$" marker: "R$ 217.387,81".
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const CurrencyMarker = "R$"

var (
	markedAmount = regexp.MustCompile(`R\$\s*(\d[\d.]*(?:,\d+)?)`)
	bareZero     = regexp.MustCompile(`(?:^|\s)0(?:,0+)?\s*$`)

	// groupedNumber is report convention with thousands groups: "38.000",
	// "1.038.000,50". A leading zero group ("0.125") stays canonical.
	groupedNumber = regexp.MustCompile(`^-?[1-9]\d{0,2}(?:\.\d{3})+(?:,\d+)?$`)
	commaNumber   = regexp.MustCompile(`^-?\d+,\d+$`)
)

var ErrNotANumber = errors.New("not a number")

// Amount returns the amount carried by a report line, or zero when the line
// has none. It never fails.
func Amount(line string) decimal.Decimal {
	d, _ := Parse(line)
	return d
}

// Parse is Amount, additionally reporting whether the line carried a
// recognisable amount (currency-marked or a bare zero).
func Parse(line string) (decimal.Decimal, bool) {
	if m := markedAmount.FindStringSubmatch(line); m != nil {
		d, err := decimal.NewFromString(canonical(m[1]))
		if err == nil {
			return d, true
		}
	}
	if bareZero.MatchString(line) {
		return decimal.Zero, true
	}
	return decimal.Zero, false
}

// Decimal parses a caller supplied number written either canonically
// ("38000.50") or in report convention ("38.000,50", "38.000", optionally with
// the currency marker). Dot groups of exactly three digits after a non-zero
// lead are thousands separators, so "1.500" is fifteen hundred.
func Decimal(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), CurrencyMarker))
	if v == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrNotANumber)
	}
	switch {
	case groupedNumber.MatchString(v), commaNumber.MatchString(v):
		v = canonical(v)
	case strings.Contains(v, ","):
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return d, nil
}

// Format renders d in report convention. Every fractional digit of d is kept
// (at least two are always shown), so Amount(Format(d)) equals d for d >= 0.
func Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	intPart, frac, _ := strings.Cut(d.Abs().String(), ".")
	for len(frac) < 2 {
		frac += "0"
	}
	return CurrencyMarker + " " + sign + group(intPart) + "," + frac
}

func canonical(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	return strings.Replace(s, ",", ".", 1)
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
