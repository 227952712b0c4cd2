package output

import (
	"strings"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a refund result in one output format
type Formatter interface {
	Name() string
	Format(result *domain.RefundResult) ([]byte, error)
}

// GetFormatterByName returns the formatter for name, or nil if unknown
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(name) {
	case "console", "table", "":
		return &ConsoleFormatter{}
	case "console-verbose", "verbose":
		return ConsoleVerboseFormatter{}
	case "html":
		return HTMLFormatter{}
	case "json":
		return &JSONFormatter{Pretty: true}
	case "json-compact":
		return &JSONFormatter{}
	case "csv":
		return &CSVFormatter{}
	case "yaml", "yml":
		return &YAMLFormatter{}
	default:
		return nil
	}
}

// FormatterNames lists the accepted format names
func FormatterNames() []string {
	return []string{"console", "console-verbose", "html", "json", "json-compact", "csv", "yaml"}
}

// FormatYen formats a whole-yen amount with a yen sign and thousands separators
func FormatYen(amount decimal.Decimal) string {
	s := amount.Abs().Floor().StringFixed(0)

	var sb strings.Builder
	if amount.IsNegative() {
		sb.WriteByte('-')
	}
	sb.WriteString("¥")
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// FormatPercent formats a rate such as 0.1 as "10%"
func FormatPercent(rate decimal.Decimal) string {
	pct := rate.Mul(decimal.NewFromInt(100))
	if pct.Equal(pct.Truncate(0)) {
		return pct.StringFixed(0) + "%"
	}
	return pct.StringFixed(1) + "%"
}
