package loan

import (
	"errors"
)

// Kind classifies why an application could not be scored.
type Kind int

const (
	KindUnexpectedFailure Kind = iota
	KindEmptySubmission
	KindInvalidNumericInput
	KindMissingCategoricalField
)

func (k Kind) String() string {
	switch k {
	case KindEmptySubmission:
		return "EmptySubmission"
	case KindInvalidNumericInput:
		return "InvalidNumericInput"
	case KindMissingCategoricalField:
		return "MissingCategoricalField"
	default:
		return "UnexpectedFailure"
	}
}

const (
	msgNoData         = "No data submitted"
	msgInvalidNumeric = "Please enter valid numeric values for income, amount, rate, length, age, and percentage."
	msgMissingFields  = "Please fill out all categorical fields. Missing: "
)

// Error is returned by Normalize and Service.Evaluate. Message is meant to be
// shown to the applicant as is.
type Error struct {
	Kind    Kind
	Message string
	// Fields lists the offending form fields, in form order.
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried by err, or KindUnexpectedFailure.
func KindOf(err error) Kind {
	var loanErr *Error
	if errors.As(err, &loanErr) {
		return loanErr.Kind
	}
	return KindUnexpectedFailure
}

func unexpected(err error) *Error {
	var loanErr *Error
	if errors.As(err, &loanErr) {
		return loanErr
	}
	return &Error{Kind: KindUnexpectedFailure, Message: err.Error(), Err: err}
}
