package form

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

const requiredMessage = "This field is required"

// rangeRules are the validator tags applied to each field once it has parsed.
var rangeRules = map[Field]string{
	FieldAmount: fmt.Sprintf("gt=0,lte=%.0f", constants.MaxLoanAmount),
	FieldTerm:   fmt.Sprintf("gt=0,lte=%d", constants.MaxTermYears),
	FieldRate:   fmt.Sprintf("gte=0,lte=%.0f", constants.MaxAnnualRatePercent),
	FieldType:   "repaymentType",
}

var rangeMessages = map[Field]string{
	FieldAmount: "Amount must be greater than 0",
	FieldTerm:   "Term must be at least 1 year",
	FieldRate:   "Interest rate cannot be negative",
	FieldType:   "Choose repayment or interest only",
}

// limitMessages are used when a value fails the upper (lte) bound.
var limitMessages = map[Field]string{
	FieldAmount: "Amount cannot exceed 1,000,000,000,000",
	FieldTerm:   fmt.Sprintf("Term cannot exceed %d years", constants.MaxTermYears),
	FieldRate:   fmt.Sprintf("Interest rate cannot exceed %.0f%%", constants.MaxAnnualRatePercent),
}

// Validator turns raw form values into a loan specification.
type Validator struct{ v *validator.Validate }

// NewValidator builds a Validator that reports fields by their form names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("repaymentType", func(fl validator.FieldLevel) bool {
		_, err := mortgage.ParseRepaymentType(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

var defaultValidator = NewValidator()

// Validate checks values with the package default Validator.
func Validate(values Values) (mortgage.LoanSpecification, error) {
	return defaultValidator.Validate(values)
}

// Validate returns the specification described by values, or
// ValidationErrors naming every rejected field. A blank field is reported
// only as MissingField.
func (fv *Validator) Validate(values Values) (mortgage.LoanSpecification, error) {
	trimmed := Values{
		Amount: strings.TrimSpace(values.Amount),
		Term:   strings.TrimSpace(values.Term),
		Rate:   strings.TrimSpace(values.Rate),
		Type:   strings.TrimSpace(values.Type),
	}

	presence := struct {
		Amount string `form:"amount" validate:"required"`
		Term   string `form:"term" validate:"required"`
		Rate   string `form:"rate" validate:"required"`
		Type   string `form:"type" validate:"required"`
	}(trimmed)

	missing := make(map[Field]bool)
	if err := fv.v.Struct(presence); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return mortgage.LoanSpecification{}, err
		}
		for _, fe := range ve {
			missing[Field(fe.Field())] = true
		}
	}

	var (
		spec  mortgage.LoanSpecification
		found = make(map[Field]FieldError)
	)
	reject := func(f Field, kind ErrorKind, msg string) {
		found[f] = FieldError{Field: f, Kind: kind, Message: msg}
	}

	for f := range missing {
		reject(f, MissingField, requiredMessage)
	}

	if !missing[FieldAmount] {
		amount, err := parseDecimal(trimmed.Amount, constants.DefaultCurrencySymbol, "")
		if err != nil {
			reject(FieldAmount, InvalidNumber, "Amount must be a number")
		} else if msg, ok := fv.checkRange(FieldAmount, amount); !ok {
			reject(FieldAmount, OutOfRange, msg)
		}
		spec.Amount = amount
	}

	if !missing[FieldTerm] {
		term, err := strconv.Atoi(strings.ReplaceAll(trimmed.Term, ",", ""))
		if err != nil {
			reject(FieldTerm, InvalidNumber, "Term must be a whole number of years")
		} else if msg, ok := fv.checkRange(FieldTerm, term); !ok {
			reject(FieldTerm, OutOfRange, msg)
		}
		spec.TermYears = term
	}

	if !missing[FieldRate] {
		rate, err := parseDecimal(trimmed.Rate, "", "%")
		if err != nil {
			reject(FieldRate, InvalidNumber, "Interest rate must be a number")
		} else if msg, ok := fv.checkRange(FieldRate, rate); !ok {
			reject(FieldRate, OutOfRange, msg)
		}
		spec.AnnualRatePercent = rate
	}

	if !missing[FieldType] {
		if fv.v.Var(trimmed.Type, rangeRules[FieldType]) != nil {
			reject(FieldType, UnknownType, rangeMessages[FieldType])
		} else {
			spec.Type, _ = mortgage.ParseRepaymentType(trimmed.Type)
		}
	}

	if len(found) > 0 {
		errs := make(ValidationErrors, 0, len(found))
		for _, f := range Fields {
			if fe, ok := found[f]; ok {
				errs = append(errs, fe)
			}
		}
		return mortgage.LoanSpecification{}, errs
	}

	return spec, nil
}

// checkRange applies the field's range rule, returning the message to show
// when value falls outside it.
func (fv *Validator) checkRange(f Field, value interface{}) (string, bool) {
	err := fv.v.Var(value, rangeRules[f])
	if err == nil {
		return "", true
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 && ve[0].Tag() == "lte" {
		return limitMessages[f], false
	}
	return rangeMessages[f], false
}

// parseDecimal parses a decimal number, tolerating grouping commas, inner
// spaces, an optional prefix and an optional suffix.
func parseDecimal(raw, prefix, suffix string) (float64, error) {
	s := raw
	if prefix != "" {
		s = strings.TrimPrefix(s, prefix)
	}
	if suffix != "" {
		s = strings.TrimSuffix(s, suffix)
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !mathutil.IsFinite(value) {
		return 0, strconv.ErrRange
	}
	return value, nil
}
