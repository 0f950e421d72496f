package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SafeParse parses a string into a decimal, returning zero for invalid or
// empty input. "No data" reads as "no balance", never as an error.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ConvertRawToReadable scales a raw fixed-point integer by 10^-precisionExp.
// Sign is preserved. Absent, zero, or unparseable input converts to zero.
func ConvertRawToReadable(raw string, precisionExp int32) decimal.Decimal {
	d := SafeParse(raw)
	if d.IsZero() {
		return decimal.Zero
	}
	return d.Shift(-precisionExp)
}

// FormatUSD renders a value as a dollar string with two fixed decimals and
// thousands separators, e.g. "$2,469.00". Negative values keep the sign
// before the dollar sign: "-$78.75".
func FormatUSD(value decimal.Decimal) string {
	sign := ""
	if value.Sign() < 0 {
		sign = "-"
		value = value.Neg()
	}
	fixed := value.StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(intPart) + "." + fracPart
}

// ParseUSD reads a numeric value back out of a FormatUSD string.
// Invalid input parses as zero.
func ParseUSD(value string) decimal.Decimal {
	v := strings.ReplaceAll(value, ",", "")
	neg := strings.HasPrefix(v, "-")
	v = strings.TrimPrefix(v, "-")
	v = strings.TrimPrefix(v, "$")
	d := SafeParse(v)
	if neg {
		return d.Neg()
	}
	return d
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
