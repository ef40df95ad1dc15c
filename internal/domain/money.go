package domain

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const defaultCurrencyScale = 2

// Money is an amount in minor units of an ISO 4217 currency.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// NewMoney normalises the currency code and returns the amount.
func NewMoney(amount int64, code string) Money {
	return Money{Amount: amount, Currency: NormalizeCurrency(code)}
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCurrency reports whether code is a recognised ISO 4217 currency.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(NormalizeCurrency(code))
	return err == nil
}

// Equal reports whether both values carry the same amount and currency.
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && sameCurrency(m.Currency, other.Currency)
}

// Mul multiplies the amount by n.
func (m Money) Mul(n int64) Money {
	return Money{Amount: m.Amount * n, Currency: NormalizeCurrency(m.Currency)}
}

// Scale returns the number of minor-unit digits for the currency.
func (m Money) Scale() int {
	unit, err := currency.ParseISO(NormalizeCurrency(m.Currency))
	if err != nil {
		return defaultCurrencyScale
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

// Format renders the amount with the currency symbol, grouping and decimal separator of the given
// language. Digits are derived from the integer amount.
func (m Money) Format(tag language.Tag) string {
	unit, err := currency.ParseISO(NormalizeCurrency(m.Currency))
	if err != nil {
		return m.String()
	}
	p := message.NewPrinter(tag)
	neg, major, minor := m.split()
	digits := p.Sprintf("%d", major)
	if minor != "" {
		digits += decimalSeparator(p) + minor
	}
	if neg {
		digits = "-" + digits
	}
	return p.Sprint(currency.Symbol(unit)) + " " + digits
}

// String implements fmt.Stringer.
func (m Money) String() string {
	neg, major, minor := m.split()
	digits := strconv.FormatUint(major, 10)
	if minor != "" {
		digits += "." + minor
	}
	if neg {
		digits = "-" + digits
	}
	return digits + " " + NormalizeCurrency(m.Currency)
}

// split breaks the amount into its sign, major units and zero-padded minor digits.
func (m Money) split() (neg bool, major uint64, minor string) {
	abs := uint64(m.Amount)
	if m.Amount < 0 {
		neg = true
		abs = uint64(-(m.Amount + 1)) + 1
	}
	scale := m.Scale()
	if scale <= 0 {
		return neg, abs, ""
	}
	divisor := uint64(1)
	for i := 0; i < scale; i++ {
		divisor *= 10
	}
	return neg, abs / divisor, fmt.Sprintf("%0*d", scale, abs%divisor)
}

// decimalSeparator reads the language's decimal separator off a formatted sample.
func decimalSeparator(p *message.Printer) string {
	sample := p.Sprintf("%.1f", 1.5)
	sep := strings.TrimSuffix(strings.TrimPrefix(sample, "1"), "5")
	if sep == "" || sep == sample {
		return "."
	}
	return sep
}

func sameCurrency(a, b string) bool {
	return NormalizeCurrency(a) == NormalizeCurrency(b)
}
