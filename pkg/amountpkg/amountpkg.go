// Package amountpkg provides binding helpers for monetary amounts.
package amountpkg

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidAmount validates that a bound decimal amount is strictly positive.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if amount, ok := fl.Field().Interface().(decimal.Decimal); ok {
		return amount.IsPositive()
	}

	return false
}
