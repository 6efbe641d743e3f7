package format

import "strings"

// FormatNumberString inserts thousand separators into a decimal
// number string, preserving a leading sign. The input is assumed to be
// a plain integer in base 10.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// DigitCount returns the number of significant digits of a decimal
// number string, ignoring any sign.
func DigitCount(s string) int {
	if s == "" {
		return 0
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	return len(s)
}

// Preview abbreviates a long decimal string for display, keeping the
// first and last few digits: "1234...7890 (1234567 digits)". Strings
// at or below the limit are returned unchanged.
func Preview(s string, limit int) string {
	if len(s) <= limit || limit < 10 {
		return s
	}
	keep := (limit - 3) / 2
	var b strings.Builder
	b.WriteString(s[:keep])
	b.WriteString("...")
	b.WriteString(s[len(s)-keep:])
	return b.String()
}
