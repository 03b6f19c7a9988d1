// Package mortgage provides the repayment calculator and amortization
// schedule for a single mortgage.
package mortgage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// ErrInvalidSpecification is returned by LoanSpecification.Validate.
var ErrInvalidSpecification = errors.New("invalid loan specification")

// RepaymentType selects how the monthly payment is derived.
type RepaymentType string

const (
	// Repayment loans pay principal and interest and fully amortize over the term.
	Repayment RepaymentType = constants.RepaymentTypeRepayment
	// InterestOnly loans pay interest only; the principal remains outstanding.
	InterestOnly RepaymentType = constants.RepaymentTypeInterestOnly
)

// ParseRepaymentType converts a submitted type identifier into a RepaymentType.
func ParseRepaymentType(value string) (RepaymentType, error) {
	t := RepaymentType(strings.TrimSpace(value))
	if !t.Valid() {
		return "", fmt.Errorf("unknown repayment type %q, expected %s or %s",
			value, Repayment, InterestOnly)
	}
	return t, nil
}

// Valid reports whether t is one of the supported repayment types.
func (t RepaymentType) Valid() bool {
	return t == Repayment || t == InterestOnly
}

// Label is the human-readable name shown next to a result.
func (t RepaymentType) Label() string {
	if t == InterestOnly {
		return "interest only"
	}
	return "repayment"
}

// LoanSpecification is a validated calculator input.
type LoanSpecification struct {
	Amount            float64       `json:"amount" yaml:"amount"`
	TermYears         int           `json:"termYears" yaml:"termYears"`
	AnnualRatePercent float64       `json:"annualRatePercent" yaml:"annualRatePercent"`
	Type              RepaymentType `json:"type" yaml:"type"`
}

// Validate checks the ranges the calculator relies on. Within them
// Calculate always yields finite figures.
func (s LoanSpecification) Validate() error {
	switch {
	case !mathutil.IsFinite(s.Amount) || s.Amount <= 0:
		return fmt.Errorf("%w: amount must be greater than 0, got %v", ErrInvalidSpecification, s.Amount)
	case s.Amount > constants.MaxLoanAmount:
		return fmt.Errorf("%w: amount must not exceed %.0f, got %v", ErrInvalidSpecification, constants.MaxLoanAmount, s.Amount)
	case s.TermYears <= 0:
		return fmt.Errorf("%w: term must be greater than 0 years, got %d", ErrInvalidSpecification, s.TermYears)
	case s.TermYears > constants.MaxTermYears:
		return fmt.Errorf("%w: term must not exceed %d years, got %d", ErrInvalidSpecification, constants.MaxTermYears, s.TermYears)
	case !mathutil.IsFinite(s.AnnualRatePercent) || s.AnnualRatePercent < 0:
		return fmt.Errorf("%w: interest rate must not be negative, got %v", ErrInvalidSpecification, s.AnnualRatePercent)
	case s.AnnualRatePercent > constants.MaxAnnualRatePercent:
		return fmt.Errorf("%w: interest rate must not exceed %v%%, got %v", ErrInvalidSpecification, constants.MaxAnnualRatePercent, s.AnnualRatePercent)
	case !s.Type.Valid():
		return fmt.Errorf("%w: unknown repayment type %q", ErrInvalidSpecification, s.Type)
	}
	return nil
}

// TotalMonths is the number of monthly payments over the term.
func (s LoanSpecification) TotalMonths() int {
	return s.TermYears * constants.MonthsPerYear
}

// MonthlyRate is the periodic interest rate as a fraction.
func (s LoanSpecification) MonthlyRate() float64 {
	return mathutil.PercentToRate(s.AnnualRatePercent) / constants.MonthsPerYear
}

// RepaymentResult holds the rounded figures derived from a LoanSpecification.
type RepaymentResult struct {
	MonthlyPayment float64           `json:"monthlyPayment" yaml:"monthlyPayment"`
	TotalRepayment float64           `json:"totalRepayment" yaml:"totalRepayment"`
	Source         LoanSpecification `json:"source" yaml:"source"`
}
