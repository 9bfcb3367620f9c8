package valueobjects

import "fmt"

// DefaultCurrency is used when callers do not specify one.
const DefaultCurrency = "ZAR"

// Money is an integer cent amount with a currency code. Arithmetic never
// touches floating point.
type Money struct {
	amountInCents int64
	currency      string
}

func NewMoney(amountInCents int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{
		amountInCents: amountInCents,
		currency:      currency,
	}
}

func Zero(currency string) Money {
	return NewMoney(0, currency)
}

func (m Money) AmountInCents() int64 {
	return m.amountInCents
}

func (m Money) Currency() string {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

func (m Money) Equals(other Money) bool {
	return m.amountInCents == other.amountInCents && m.Currency() == other.Currency()
}

func (m Money) IsPositive() bool {
	return m.amountInCents > 0
}

func (m Money) IsZero() bool {
	return m.amountInCents == 0
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency() != other.Currency() {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency(), other.Currency())
	}
	return NewMoney(m.amountInCents+other.amountInCents, m.Currency()), nil
}

func (m Money) Sub(other Money) (Money, error) {
	if m.Currency() != other.Currency() {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency(), other.Currency())
	}
	return NewMoney(m.amountInCents-other.amountInCents, m.Currency()), nil
}

func (m Money) GreaterThan(other Money) bool {
	return m.amountInCents > other.amountInCents
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.amountInCents/100, abs(m.amountInCents%100), m.Currency())
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
