package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// Rounded returns the amount rounded to two decimal places,
// which is how monetary values are presented to clients.
func (m Money) Rounded() decimal.Decimal {
	return m.Amount.Round(2)
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) Mul(factor int32) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt32(factor)),
		Currency: m.Currency,
	}
}
