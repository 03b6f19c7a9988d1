package mortgage

import (
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// CalculateMonthlyPayment calculates the unrounded monthly payment for a
// repayment loan using the standard amortization formula.
func CalculateMonthlyPayment(amount, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}

	monthlyRate := mathutil.PercentToRate(annualRatePercent) / constants.MonthsPerYear
	if monthlyRate == 0 {
		// For zero interest, simply divide the amount by term
		return amount / float64(termMonths)
	}

	// growth-1 via Expm1 stays non-zero for rates too small to change 1+rate.
	excess := math.Expm1(float64(termMonths) * math.Log1p(monthlyRate))
	if math.IsInf(excess, 1) {
		// growth/(growth-1) tends to 1, leaving the interest-only payment.
		return amount * monthlyRate
	}
	return amount * monthlyRate * (1 + excess) / excess
}

// CalculateInterestPayment calculates the interest accrued on a balance over one month.
func CalculateInterestPayment(balance, annualRatePercent float64) float64 {
	return balance * mathutil.PercentToRate(annualRatePercent) / constants.MonthsPerYear
}

// Calculate derives the monthly and total repayment for spec. Both figures are
// rounded half-up to whole pence, and the total is the rounded monthly payment
// multiplied by the number of months.
func Calculate(spec LoanSpecification) RepaymentResult {
	var monthly float64
	switch spec.Type {
	case InterestOnly:
		monthly = CalculateInterestPayment(spec.Amount, spec.AnnualRatePercent)
	default:
		monthly = CalculateMonthlyPayment(spec.Amount, spec.AnnualRatePercent, spec.TotalMonths())
	}

	monthly = mathutil.Round(monthly)
	return RepaymentResult{
		MonthlyPayment: monthly,
		TotalRepayment: mathutil.Round(monthly * float64(spec.TotalMonths())),
		Source:         spec,
	}
}
