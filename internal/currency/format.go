package currency

import (
	"fmt"
	"strings"
)

// Formatter renders cent amounts as localized currency strings.
// The zero value formats as a bare number with Western grouping.
type Formatter struct {
	symbol         string
	indianGrouping bool
}

// NewFormatter creates a formatter for the given ISO currency code.
// INR uses the Indian numbering system (₹1,23,456.78); other currencies use
// Western thousands grouping. Unknown codes fall back to "CODE " as prefix.
func NewFormatter(code string) Formatter {
	switch strings.ToUpper(code) {
	case "INR":
		return Formatter{symbol: "₹", indianGrouping: true}
	case "USD":
		return Formatter{symbol: "$"}
	case "EUR":
		return Formatter{symbol: "€"}
	case "GBP":
		return Formatter{symbol: "£"}
	default:
		return Formatter{symbol: strings.ToUpper(code) + " "}
	}
}

// Format renders a cent amount, e.g. 5319 -> "₹53.19".
func (f Formatter) Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	grouped := groupWestern(whole)
	if f.indianGrouping {
		grouped = groupIndian(whole)
	}

	return fmt.Sprintf("%s%s%s.%02d", sign, f.symbol, grouped, frac)
}

// groupWestern inserts a separator every three digits: 1234567 -> "1,234,567".
func groupWestern(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// groupIndian groups the last three digits, then pairs: 1234567 -> "12,34,567".
func groupIndian(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	head := s[:len(s)-3]
	tail := s[len(s)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
