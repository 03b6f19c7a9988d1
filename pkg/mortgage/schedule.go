package mortgage

import (
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given month of the schedule.
type Payment struct {
	Month              int     `json:"month" yaml:"month"`
	Date               string  `json:"date" yaml:"date"`
	Payment            float64 `json:"payment" yaml:"payment"`
	Principal          float64 `json:"principal" yaml:"principal"`
	Interest           float64 `json:"interest" yaml:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal" yaml:"remainingPrincipal"`
}

// ScheduleGenerator provides utilities for generating amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger, now: time.Now}
}

// GenerateSchedule creates the month-by-month schedule for spec starting at
// startDate (YYYY-MM); an empty startDate means the current month.
//
// Repayment loans pay the rounded monthly payment until the final month, whose
// payment absorbs the accumulated rounding so the balance ends at exactly zero.
// Interest-only loans pay interest every month and keep the full principal
// outstanding.
func (g *ScheduleGenerator) GenerateSchedule(spec LoanSpecification, startDate string) ([]Payment, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if startDate == "" {
		startDate = datetime.CurrentMonth(g.now())
	}
	dates, err := datetime.MonthSequence(startDate, spec.TotalMonths())
	if err != nil {
		return nil, err
	}

	result := Calculate(spec)
	if spec.Type == InterestOnly {
		return g.interestOnlySchedule(spec, result, dates), nil
	}
	return g.repaymentSchedule(spec, result, dates), nil
}

func (g *ScheduleGenerator) repaymentSchedule(spec LoanSpecification, result RepaymentResult, dates []string) []Payment {
	schedule := make([]Payment, 0, len(dates))
	balance := spec.Amount

	for i, date := range dates {
		month := i + 1
		current := Payment{Month: month, Date: date}
		current.Interest = mathutil.Round(CalculateInterestPayment(balance, spec.AnnualRatePercent))
		current.Principal = mathutil.Round(result.MonthlyPayment - current.Interest)

		if month == len(dates) || !mathutil.IsPositive(mathutil.Round(balance-current.Principal)) {
			// Settle the remaining balance; we would get machine error otherwise.
			current.Principal = mathutil.Round(balance)
			current.Payment = mathutil.Round(current.Principal + current.Interest)
			current.RemainingPrincipal = 0
			schedule = append(schedule, current)
			if month < len(dates) {
				g.logger.Debug(fmt.Sprintf("%s: balance settled in month %d of %d", date, month, len(dates)),
					zap.String("op", "mortgage.GenerateSchedule"),
				)
			}
			break
		}

		current.Payment = result.MonthlyPayment
		balance = mathutil.Round(balance - current.Principal)
		current.RemainingPrincipal = balance
		schedule = append(schedule, current)
	}

	return schedule
}

func (g *ScheduleGenerator) interestOnlySchedule(spec LoanSpecification, result RepaymentResult, dates []string) []Payment {
	schedule := make([]Payment, len(dates))
	for i, date := range dates {
		schedule[i] = Payment{
			Month:              i + 1,
			Date:               date,
			Payment:            result.MonthlyPayment,
			Interest:           result.MonthlyPayment,
			RemainingPrincipal: spec.Amount,
		}
	}

	g.logger.Debug(fmt.Sprintf("interest-only schedule leaves %.2f outstanding after %d months", spec.Amount, len(dates)),
		zap.String("op", "mortgage.GenerateSchedule"),
	)
	return schedule
}

// Summarize totals a schedule's payments and interest.
func Summarize(schedule []Payment) (totalPaid, totalInterest float64) {
	for _, p := range schedule {
		totalPaid += p.Payment
		totalInterest += p.Interest
	}
	return mathutil.Round(totalPaid), mathutil.Round(totalInterest)
}
