// Package form implements the mortgage input form: four text fields that are
// validated into a mortgage.LoanSpecification or a set of per-field errors.
package form

import "fmt"

// Field names a form input.
type Field string

// Form inputs, in display order.
const (
	FieldAmount Field = "amount"
	FieldTerm   Field = "term"
	FieldRate   Field = "rate"
	FieldType   Field = "type"
)

// Fields lists every input in display order.
var Fields = []Field{FieldAmount, FieldTerm, FieldRate, FieldType}

// Values holds the raw text of each input as entered.
type Values struct {
	Amount string `json:"amount" form:"amount"`
	Term   string `json:"term" form:"term"`
	Rate   string `json:"rate" form:"rate"`
	Type   string `json:"type" form:"type"`
}

// Get returns the raw value of f.
func (v Values) Get(f Field) string {
	switch f {
	case FieldAmount:
		return v.Amount
	case FieldTerm:
		return v.Term
	case FieldRate:
		return v.Rate
	case FieldType:
		return v.Type
	}
	return ""
}

// Set stores value into f.
func (v *Values) Set(f Field, value string) error {
	switch f {
	case FieldAmount:
		v.Amount = value
	case FieldTerm:
		v.Term = value
	case FieldRate:
		v.Rate = value
	case FieldType:
		v.Type = value
	default:
		return fmt.Errorf("unknown form field %q", f)
	}
	return nil
}

// IsEmpty reports whether every field is blank.
func (v Values) IsEmpty() bool {
	return v == Values{}
}
