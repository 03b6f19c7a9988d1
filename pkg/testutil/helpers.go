// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

// FixtureSpecification is the 200,000 over 25 years at 5.25% loan used across
// tests; Calculate gives 1198.50 monthly and 359550.00 in total.
func FixtureSpecification(repaymentType mortgage.RepaymentType) mortgage.LoanSpecification {
	return mortgage.LoanSpecification{
		Amount:            200000,
		TermYears:         25,
		AnnualRatePercent: 5.25,
		Type:              repaymentType,
	}
}

// FindPayment finds a payment by date (YYYY-MM) in a schedule.
// Returns a pointer to the payment if found, nil otherwise.
func FindPayment(schedule []mortgage.Payment, date string) *mortgage.Payment {
	for i := range schedule {
		if schedule[i].Date == date {
			return &schedule[i]
		}
	}
	return nil
}
