package form

import (
	"errors"
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

func validValues() Values {
	return Values{Amount: "200000", Term: "25", Rate: "5.25", Type: "repayment"}
}

func TestValidateSuccess(t *testing.T) {
	tests := []struct {
		name     string
		values   Values
		expected mortgage.LoanSpecification
	}{
		{
			name:     "Plain values",
			values:   validValues(),
			expected: mortgage.LoanSpecification{Amount: 200000, TermYears: 25, AnnualRatePercent: 5.25, Type: mortgage.Repayment},
		},
		{
			name:     "Grouped amount with symbol and percent sign",
			values:   Values{Amount: " £200,000.50 ", Term: " 30 ", Rate: "4.5%", Type: "interestOnly"},
			expected: mortgage.LoanSpecification{Amount: 200000.50, TermYears: 30, AnnualRatePercent: 4.5, Type: mortgage.InterestOnly},
		},
		{
			name:     "Zero interest rate",
			values:   Values{Amount: "1000", Term: "1", Rate: "0", Type: "repayment"},
			expected: mortgage.LoanSpecification{Amount: 1000, TermYears: 1, AnnualRatePercent: 0, Type: mortgage.Repayment},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Validate(tt.values)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if spec != tt.expected {
				t.Errorf("Validate() = %+v, expected %+v", spec, tt.expected)
			}
		})
	}
}

func TestValidateMissingSingleField(t *testing.T) {
	for _, field := range Fields {
		t.Run(string(field), func(t *testing.T) {
			values := validValues()
			if err := values.Set(field, ""); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			spec, err := Validate(values)
			var ve ValidationErrors
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if len(ve) != 1 {
				t.Fatalf("expected exactly one error, got %v", ve)
			}
			if ve[0].Field != field || ve[0].Kind != MissingField {
				t.Errorf("got %+v, expected MissingField for %s", ve[0], field)
			}
			if ve[0].Message != "This field is required" {
				t.Errorf("unexpected message %q", ve[0].Message)
			}
			if spec != (mortgage.LoanSpecification{}) {
				t.Errorf("expected no specification, got %+v", spec)
			}
		})
	}
}

func TestValidateWhitespaceIsMissing(t *testing.T) {
	values := validValues()
	values.Rate = "   "

	_, err := Validate(values)
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if fe, ok := ve.For(FieldRate); !ok || fe.Kind != MissingField {
		t.Errorf("expected MissingField for rate, got %v", ve)
	}
}

func TestValidateAllMissingInDisplayOrder(t *testing.T) {
	_, err := Validate(Values{})
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(ve) != len(Fields) {
		t.Fatalf("expected %d errors, got %d", len(Fields), len(ve))
	}
	for i, field := range Fields {
		if ve[i].Field != field || ve[i].Kind != MissingField {
			t.Errorf("error %d = %+v, expected MissingField for %s", i, ve[i], field)
		}
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value string
		kind  ErrorKind
	}{
		{"Amount not a number", FieldAmount, "lots", InvalidNumber},
		{"Amount NaN", FieldAmount, "NaN", InvalidNumber},
		{"Amount infinite", FieldAmount, "Inf", InvalidNumber},
		{"Amount zero", FieldAmount, "0", OutOfRange},
		{"Amount negative", FieldAmount, "-5000", OutOfRange},
		{"Amount over maximum", FieldAmount, "1000000000000.01", OutOfRange},
		{"Amount huge", FieldAmount, "1e308", OutOfRange},
		{"Term fractional", FieldTerm, "25.5", InvalidNumber},
		{"Term text", FieldTerm, "twenty", InvalidNumber},
		{"Term zero", FieldTerm, "0", OutOfRange},
		{"Term negative", FieldTerm, "-3", OutOfRange},
		{"Term over maximum", FieldTerm, "101", OutOfRange},
		{"Term overflowing months", FieldTerm, "768614336404564652", OutOfRange},
		{"Rate text", FieldRate, "five", InvalidNumber},
		{"Rate negative", FieldRate, "-0.25", OutOfRange},
		{"Rate over maximum", FieldRate, "100.5%", OutOfRange},
		{"Rate huge", FieldRate, "1e308", OutOfRange},
		{"Type unknown", FieldType, "balloon", UnknownType},
		{"Type wrong case", FieldType, "Repayment", UnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validValues()
			if err := values.Set(tt.field, tt.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			_, err := Validate(values)
			var ve ValidationErrors
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if len(ve) != 1 {
				t.Fatalf("expected one error, got %v", ve)
			}
			if ve[0].Field != tt.field || ve[0].Kind != tt.kind {
				t.Errorf("got %+v, expected %s for %s", ve[0], tt.kind, tt.field)
			}
		})
	}
}

func TestValidateUpperBounds(t *testing.T) {
	t.Run("Largest values accepted", func(t *testing.T) {
		spec, err := Validate(Values{Amount: "£1,000,000,000,000", Term: "100", Rate: "100%", Type: "interestOnly"})
		if err != nil {
			t.Fatalf("Validate() unexpected error: %v", err)
		}
		if spec.Amount != 1e12 || spec.TermYears != 100 || spec.AnnualRatePercent != 100 {
			t.Errorf("unexpected specification %+v", spec)
		}
	})

	t.Run("Messages name the limit", func(t *testing.T) {
		_, err := Validate(Values{Amount: "2000000000000", Term: "200000", Rate: "250", Type: "repayment"})
		var ve ValidationErrors
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationErrors, got %v", err)
		}
		want := map[string]string{
			"amount": "Amount cannot exceed 1,000,000,000,000",
			"term":   "Term cannot exceed 100 years",
			"rate":   "Interest rate cannot exceed 100%",
		}
		got := ve.Messages()
		for field, msg := range want {
			if got[field] != msg {
				t.Errorf("message for %s = %q, want %q", field, got[field], msg)
			}
		}
		for _, fe := range ve {
			if fe.Kind != OutOfRange {
				t.Errorf("%s kind = %s, want %s", fe.Field, fe.Kind, OutOfRange)
			}
		}
	})
}

func TestValidationErrorsHelpers(t *testing.T) {
	ve := ValidationErrors{
		{Field: FieldAmount, Kind: MissingField, Message: "This field is required"},
		{Field: FieldRate, Kind: OutOfRange, Message: "Interest rate cannot be negative"},
	}

	if _, ok := ve.For(FieldTerm); ok {
		t.Error("For(term) should not find an error")
	}
	messages := ve.Messages()
	if messages["amount"] != "This field is required" || messages["rate"] != "Interest rate cannot be negative" {
		t.Errorf("unexpected messages %v", messages)
	}
	if ve.Error() != "invalid form submission: amount: This field is required; rate: Interest rate cannot be negative" {
		t.Errorf("unexpected Error() %q", ve.Error())
	}
	if (ValidationErrors{}).Messages() != nil {
		t.Error("empty errors should have nil messages")
	}
}
