package validation

import "fmt"

type Code string

const (
	CodeRequiredFieldMissing Code = "REQUIRED_FIELD_MISSING"
	CodeInvalidFormat        Code = "INVALID_FORMAT"
	CodeEmptyCollection      Code = "EMPTY_COLLECTION"
	CodeDuplicateKey         Code = "DUPLICATE_KEY"
	CodeInvalidReference     Code = "INVALID_REFERENCE"
	CodeDanglingReference    Code = "DANGLING_REFERENCE"
)

// Error is a rejected write. It carries the offending field so handlers
// can surface it without leaking anything else.
type Error struct {
	Code    Code   `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Required(field string) *Error {
	return &Error{
		Code:    CodeRequiredFieldMissing,
		Field:   field,
		Message: field + " is required",
	}
}

func InvalidFormat(field, message string) *Error {
	return &Error{
		Code:    CodeInvalidFormat,
		Field:   field,
		Message: message,
	}
}

func EmptyCollection(field string) *Error {
	return &Error{
		Code:    CodeEmptyCollection,
		Field:   field,
		Message: field + " must contain at least one entry",
	}
}

func InvalidReference(field, message string) *Error {
	return &Error{
		Code:    CodeInvalidReference,
		Field:   field,
		Message: message,
	}
}

func DanglingReference(field, message string) *Error {
	return &Error{
		Code:    CodeDanglingReference,
		Field:   field,
		Message: message,
	}
}
