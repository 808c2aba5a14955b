package utils

import (
	"strings"

	"github.com/Cristiano-Arias/Portal-Proposta/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ParseBRL converts a pt-BR formatted monetary string ("R$ 1.234,56",
// "1.234,56") into an exact decimal. Bare decimal-point values ("1234.56")
// from clients that post JSON numbers are accepted too: without a comma, a
// final dot followed by one or two digits is the decimal point, while a dot
// followed by three digits is a thousands separator.
//
// Empty or unparsable input yields zero. The anomaly is logged for audit and
// never surfaces to the caller, so totals computation and document
// generation always proceed.
func ParseBRL(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	s = strings.ReplaceAll(s, " ", "")

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if i := strings.LastIndex(s, "."); i >= 0 {
		if len(s)-i-1 <= 2 {
			// decimal point: strip any earlier grouping dots
			s = strings.ReplaceAll(s[:i], ".", "") + s[i:]
		} else {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		config.Logger.Warn("Unparsable monetary value absorbed as zero",
			zap.String("raw", raw),
			zap.Error(err),
		)
		return decimal.Zero
	}
	return d
}

// ParsePercent converts a percentage string ("5,5", "5.5", "5,5%") into a
// decimal, absorbing anomalies as zero like ParseBRL.
func ParsePercent(raw string) decimal.Decimal {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if s == "" {
		return decimal.Zero
	}
	s = strings.Replace(s, ",", ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		config.Logger.Warn("Unparsable percentage absorbed as zero",
			zap.String("raw", raw),
			zap.Error(err),
		)
		return decimal.Zero
	}
	return d
}

// FormatBRL renders a decimal as "R$ 1.234,56": always two fraction digits,
// dot-grouped thousands, comma decimal separator.
// ParseBRL(FormatBRL(x)) == x for every value with at most two decimals.
func FormatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(ch)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return "R$ " + sign + grouped.String() + "," + fracPart
}
