package form

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a field error.
type ErrorKind string

const (
	// MissingField is raised for a blank field.
	MissingField ErrorKind = "missingField"
	// InvalidNumber is raised when a numeric field does not parse.
	InvalidNumber ErrorKind = "invalidNumber"
	// OutOfRange is raised for a value outside the accepted bounds, such as a
	// zero amount, a negative rate or a term over the maximum.
	OutOfRange ErrorKind = "outOfRange"
	// UnknownType is raised when the repayment type is not recognised.
	UnknownType ErrorKind = "unknownType"
)

// FieldError describes why a single field was rejected.
type FieldError struct {
	Field   Field     `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationErrors is returned when a submission is rejected. It holds at most
// one error per field, in display order.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "invalid form submission: " + strings.Join(parts, "; ")
}

// For returns the error recorded against f, if any.
func (e ValidationErrors) For(f Field) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == f {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Messages maps field names to their error message for inline display.
func (e ValidationErrors) Messages() map[string]string {
	if len(e) == 0 {
		return nil
	}
	messages := make(map[string]string, len(e))
	for _, fe := range e {
		messages[string(fe.Field)] = fe.Message
	}
	return messages
}
