package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingIdentity    = errors.New("no authenticated user")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrBadRequest         = errors.New("bad request")
	ErrNetwork            = errors.New("network failure")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

// LoadError means a required fetch failed and nothing usable came back.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Op, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// LookupFailure is a secondary fetch that failed and was replaced by a sentinel.
type LookupFailure struct {
	Resource string
	ID       string
	Err      error
}

func (e *LookupFailure) Error() string {
	return fmt.Sprintf("lookup %s %s: %v", e.Resource, e.ID, e.Err)
}
func (e *LookupFailure) Unwrap() error { return e.Err }

// ValidationError is input rejected either locally or by a backend.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := "invalid input"
	if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}
func (e *ValidationError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsLoad(err error) bool {
	var l *LoadError
	return errors.As(err, &l)
}
