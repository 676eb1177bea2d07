package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the display currency used when none is configured.
const DefaultCurrency = "UGX"

var currencySymbol = DefaultCurrency

// SetCurrency overrides the display currency symbol. Called once at startup;
// raw amounts are always exact decimal strings regardless of this setting.
func SetCurrency(symbol string) {
	if symbol != "" {
		currencySymbol = symbol
	}
}

// FormatAmount renders an amount for display, e.g. "UGX 1,234.00".
// The result is a presentation concern only, never authoritative.
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-3:]

	var b strings.Builder
	b.WriteString(currencySymbol)
	b.WriteByte(' ')
	if negative {
		b.WriteByte('-')
	}

	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteString(fracPart)

	return b.String()
}
