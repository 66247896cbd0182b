package composer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders money amounts as localized currency strings, e.g. "R$ 1.234,50" for pt-BR.
// Digits come from the decimal itself; only the separators are taken from the locale, grouped
// by thousands.
type Formatter struct {
	symbol   string
	group    string
	fraction string
}

// NewFormatter creates a formatter for a BCP 47 locale and a currency symbol
func NewFormatter(locale, symbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return newFormatter(tag, symbol), nil
}

// DefaultFormatter formats Brazilian reais
func DefaultFormatter() *Formatter {
	return newFormatter(language.BrazilianPortuguese, "R$")
}

func newFormatter(tag language.Tag, symbol string) *Formatter {
	// A known number reveals the locale's separators, e.g. "1.000,5" for pt-BR
	sample := message.NewPrinter(tag).Sprintf("%.1f", 1000.5)
	separators := strings.TrimSuffix(strings.TrimPrefix(sample, "1"), "5")
	group, fraction, _ := strings.Cut(separators, "000")

	return &Formatter{
		symbol:   symbol,
		group:    group,
		fraction: fraction,
	}
}

// Format renders the amount with two fraction digits
func (f *Formatter) Format(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, cents, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(digit)
	}
	b.WriteString(f.fraction)
	b.WriteString(cents)

	if f.symbol == "" {
		return b.String()
	}
	return f.symbol + " " + b.String()
}
