package service

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidTaskID = errors.New("invalid task id")
	ErrUsernameTaken = errors.New("username already exists")
	ErrWrongPassword = errors.New("wrong password")
	ErrForbidden     = errors.New("task belongs to another user")

	ErrTokenMissing   = errors.New("missing token")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenExpired   = errors.New("expired token")
)

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// ValidationError collects every failed rule for a request. The error
// message is the first failing rule; the full list goes into the
// response body.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

func newValidationError(fields []FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
