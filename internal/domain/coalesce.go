package domain

import "github.com/shopspring/decimal"

// DecimalFromPtrWithDefault returns the first non-nil *decimal value, or the fallback.
func DecimalFromPtrWithDefault(fallback decimal.Decimal, ptrs ...*decimal.Decimal) decimal.Decimal {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
