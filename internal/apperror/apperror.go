// Package apperror holds the failure types shared by the request
// pipelines and the HTTP boundary. Pipelines return these unmodified;
// translation to a wire shape happens in one place, the handler layer.
package apperror

import (
	"fmt"
	"strings"
)

// FieldError names the offending column of a storage-level constraint
// violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StorageValidation is raised when the database rejects a write:
// unique violations and NOT NULL failures. The boundary renders it as
// 400 with one {field, message} object per violated constraint.
type StorageValidation struct {
	Fields []FieldError
}

func (e *StorageValidation) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation error: " + strings.Join(parts, ", ")
}

// RequestValidation is raised when a request payload fails schema
// validation, one message per failed rule. The boundary renders it as
// 400 with plain string errors. The string shape differs from
// StorageValidation's objects; both are part of the wire contract.
type RequestValidation struct {
	Messages []string
}

func (e *RequestValidation) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}

// Authentication covers both login failure branches: unknown email and
// wrong password. The reason differs, the boundary class (401) does
// not.
type Authentication struct {
	Reason string
}

func (e *Authentication) Error() string {
	return e.Reason
}

// BadRequest marks environment or runtime failures (unresolvable
// hashing cost, bcrypt failure) that the boundary reports as 400 with
// the error's own message.
type BadRequest struct {
	Msg string
	Err error
}

func (e *BadRequest) Error() string {
	return e.Msg
}

func (e *BadRequest) Unwrap() error {
	return e.Err
}

// NewBadRequest wraps err into a BadRequest with a formatted message.
func NewBadRequest(err error, format string, args ...any) *BadRequest {
	return &BadRequest{Msg: fmt.Sprintf(format, args...), Err: err}
}
