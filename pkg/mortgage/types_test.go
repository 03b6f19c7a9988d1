package mortgage

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

func TestParseRepaymentType(t *testing.T) {
	tests := []struct {
		input     string
		expected  RepaymentType
		expectErr bool
	}{
		{"repayment", Repayment, false},
		{"interestOnly", InterestOnly, false},
		{"  repayment ", Repayment, false},
		{"interest-only", "", true},
		{"Repayment", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRepaymentType(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseRepaymentType(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepaymentType(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseRepaymentType(%q) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRepaymentTypeLabel(t *testing.T) {
	if got := Repayment.Label(); got != "repayment" {
		t.Errorf("Repayment.Label() = %q", got)
	}
	if got := InterestOnly.Label(); got != "interest only" {
		t.Errorf("InterestOnly.Label() = %q", got)
	}
}

func TestLoanSpecificationValidate(t *testing.T) {
	valid := LoanSpecification{Amount: 200000, TermYears: 25, AnnualRatePercent: 5.25, Type: Repayment}

	tests := []struct {
		name      string
		mutate    func(s *LoanSpecification)
		expectErr bool
	}{
		{"Valid repayment", func(s *LoanSpecification) {}, false},
		{"Valid zero rate", func(s *LoanSpecification) { s.AnnualRatePercent = 0 }, false},
		{"Valid interest only", func(s *LoanSpecification) { s.Type = InterestOnly }, false},
		{"Zero amount", func(s *LoanSpecification) { s.Amount = 0 }, true},
		{"Negative amount", func(s *LoanSpecification) { s.Amount = -1 }, true},
		{"NaN amount", func(s *LoanSpecification) { s.Amount = math.NaN() }, true},
		{"Zero term", func(s *LoanSpecification) { s.TermYears = 0 }, true},
		{"Negative rate", func(s *LoanSpecification) { s.AnnualRatePercent = -0.5 }, true},
		{"Infinite rate", func(s *LoanSpecification) { s.AnnualRatePercent = math.Inf(1) }, true},
		{"Unknown type", func(s *LoanSpecification) { s.Type = "balloon" }, true},
		{"Largest amount", func(s *LoanSpecification) { s.Amount = constants.MaxLoanAmount }, false},
		{"Amount over maximum", func(s *LoanSpecification) { s.Amount = 1e308 }, true},
		{"Longest term", func(s *LoanSpecification) { s.TermYears = constants.MaxTermYears }, false},
		{"Term over maximum", func(s *LoanSpecification) { s.TermYears = constants.MaxTermYears + 1 }, true},
		{"Term overflowing months", func(s *LoanSpecification) { s.TermYears = math.MaxInt/constants.MonthsPerYear + 1 }, true},
		{"Highest rate", func(s *LoanSpecification) { s.AnnualRatePercent = constants.MaxAnnualRatePercent }, false},
		{"Rate over maximum", func(s *LoanSpecification) { s.AnnualRatePercent = 1e308 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := valid
			tt.mutate(&spec)
			err := spec.Validate()
			if tt.expectErr {
				if !errors.Is(err, ErrInvalidSpecification) {
					t.Errorf("Validate() = %v, expected ErrInvalidSpecification", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestLoanSpecificationDerivedValues(t *testing.T) {
	spec := LoanSpecification{Amount: 200000, TermYears: 25, AnnualRatePercent: 5.25, Type: Repayment}

	if spec.TotalMonths() != 300 {
		t.Errorf("TotalMonths() = %d, expected 300", spec.TotalMonths())
	}
	if math.Abs(spec.MonthlyRate()-0.004375) > 1e-12 {
		t.Errorf("MonthlyRate() = %v, expected 0.004375", spec.MonthlyRate())
	}
}
