package service

import (
	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
)

// rentalDays returns the inclusive day count of a booking period. A rental
// picked up and returned on the same date is one billable day.
func rentalDays(period domain.DateRange) int32 {
	return int32(period.End.Sub(period.Start).Hours()/24) + 1
}

// QuoteBaseCost prices a booking period at the category's daily rate.
func QuoteBaseCost(dailyRate decimal.Decimal, period domain.DateRange) (decimal.Decimal, int32) {
	days := rentalDays(period)
	return dailyRate.Mul(decimal.NewFromInt32(days)), days
}
