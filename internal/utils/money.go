package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundTZS rounds an unrounded settlement amount to TZS minor-unit
// precision. Only call this at the persistence boundary; the share
// waterfall itself never rounds.
func RoundTZS(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatTZS renders an amount with thousand separators for logs and
// receipts, e.g. "TZS 1,500,000".
func FormatTZS(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	frac := d.Sub(whole)

	out := fmt.Sprintf("%sTZS %s", sign, formatThousand(whole.IntPart()))
	if !frac.IsZero() {
		cents := frac.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		out += fmt.Sprintf(".%02d", cents)
	}
	return out
}

// ParseAmount parses user-entered amounts like "1,500,000" or "TZS 1500".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "tzs")
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("invalid amount")
	}
	return decimal.NewFromString(s)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
