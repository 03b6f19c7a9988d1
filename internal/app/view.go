// Package app holds the top-level calculator view: the input form plus the
// single current result, and the Empty/Populated transitions between them.
package app

import (
	"github.com/iwvelando/mortgage-calculator/internal/form"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

// State is the display state of a View.
type State int

const (
	// Empty shows the placeholder; no result is held.
	Empty State = iota
	// Populated shows the current result.
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// View owns the input collector and the current result. It is not safe for
// concurrent use.
type View struct {
	logger    *zap.Logger
	collector *form.Collector
	result    *mortgage.RepaymentResult
}

// NewView returns a View in the Empty state.
func NewView(logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &View{logger: logger}
	v.collector = form.NewCollector(logger, v.calculate)
	return v
}

// Restore returns a View showing a previously computed result; a nil result
// yields an Empty view.
func Restore(logger *zap.Logger, result *mortgage.RepaymentResult) *View {
	v := NewView(logger)
	if result != nil {
		r := *result
		v.result = &r
	}
	return v
}

func (v *View) calculate(spec mortgage.LoanSpecification) {
	result := mortgage.Calculate(spec)
	v.result = &result
	v.logger.Debug("repayment calculated",
		zap.String("op", "app.calculate"),
		zap.String("type", string(spec.Type)),
		zap.Float64("monthlyPayment", result.MonthlyPayment),
		zap.Float64("totalRepayment", result.TotalRepayment),
	)
}

// Submit feeds values through the form. A valid submission replaces the
// result; an invalid one returns form.ValidationErrors and leaves the state
// unchanged.
func (v *View) Submit(values form.Values) error {
	v.collector.Fill(values)
	return v.collector.Submit()
}

// Reset clears the form and discards the result.
func (v *View) Reset() {
	v.collector.Reset()
	v.result = nil
}

// State reports whether a result is held.
func (v *View) State() State {
	if v.result == nil {
		return Empty
	}
	return Populated
}

// Result returns the current result, or nil in the Empty state.
func (v *View) Result() *mortgage.RepaymentResult {
	if v.result == nil {
		return nil
	}
	r := *v.result
	return &r
}

// Values returns the form's current field values.
func (v *View) Values() form.Values {
	return v.collector.Values()
}

// Errors returns the field errors of the last rejected submission.
func (v *View) Errors() form.ValidationErrors {
	return v.collector.Errors()
}
