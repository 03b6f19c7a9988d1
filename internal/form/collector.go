package form

import (
	"errors"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

// Collector holds the current field values of the form. A valid Submit hands
// the specification to the submission callback and then clears the fields;
// an invalid Submit keeps the values and records the errors.
//
// A Collector is not safe for concurrent use.
type Collector struct {
	logger    *zap.Logger
	validator *Validator
	onSubmit  func(mortgage.LoanSpecification)
	values    Values
	errors    ValidationErrors
}

// NewCollector returns an empty collector that passes valid submissions to onSubmit.
func NewCollector(logger *zap.Logger, onSubmit func(mortgage.LoanSpecification)) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{logger: logger, validator: defaultValidator, onSubmit: onSubmit}
}

// Set updates a single field.
func (c *Collector) Set(f Field, value string) error {
	return c.values.Set(f, value)
}

// Fill replaces every field at once.
func (c *Collector) Fill(values Values) {
	c.values = values
}

// Values returns the current field values.
func (c *Collector) Values() Values {
	return c.values
}

// Errors returns the errors of the last rejected submission.
func (c *Collector) Errors() ValidationErrors {
	return c.errors
}

// Submit validates the current values. It returns ValidationErrors when the
// submission is rejected, in which case the callback is not invoked.
func (c *Collector) Submit() error {
	spec, err := c.validator.Validate(c.values)
	if err != nil {
		var ve ValidationErrors
		if errors.As(err, &ve) {
			c.errors = ve
			c.logger.Debug("form submission rejected",
				zap.String("op", "form.Submit"),
				zap.Int("fieldErrors", len(ve)),
			)
		}
		return err
	}

	c.errors = nil
	if c.onSubmit != nil {
		c.onSubmit(spec)
	}
	c.Reset()
	return nil
}

// Reset clears every field and any recorded errors.
func (c *Collector) Reset() {
	c.values = Values{}
	c.errors = nil
}
