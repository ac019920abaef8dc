package usecase

import (
	"fmt"
	"strings"
	"time"
)

// DomainError is an expected business outcome the caller can act on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure fault. Its detail is logged
// server-side only; clients get a generic message.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// ValidationError names one violated field constraint.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors carries every violated constraint so the caller gets
// complete feedback in one round trip.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Error())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func AsValidationErrors(err error) (ValidationErrors, bool) {
	v, ok := err.(ValidationErrors)
	return v, ok
}

// RateLimitError signals the caller exceeded an endpoint quota.
type RateLimitError struct {
	Window time.Duration
}

func (e *RateLimitError) Error() string {
	return "too many requests"
}

func IsRateLimitError(err error) bool {
	_, ok := err.(*RateLimitError)
	return ok
}

// ConflictError is a semantically expected duplicate (vote dedup,
// re-subscribe), surfaced with a specific client message.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func IsConflictError(err error) bool {
	_, ok := err.(*ConflictError)
	return ok
}
