// Package errors provides shared error types for the TM1 REST client.
package errors

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a TM1 object does not exist on the server.
type NotFoundError struct {
	ObjectType string // "dimension", "hierarchy", "subset", "process", "cube"
	Name       string
}

func (e *NotFoundError) Error() string {
	if e.ObjectType != "" {
		return fmt.Sprintf("%s not found: %s", e.ObjectType, e.Name)
	}
	return fmt.Sprintf("not found: %s", e.Name)
}

// NewNotFoundError creates a NotFoundError for the given object.
func NewNotFoundError(objectType, name string) *NotFoundError {
	return &NotFoundError{ObjectType: objectType, Name: name}
}

// AlreadyExistsError indicates a create collided with an existing TM1 object.
type AlreadyExistsError struct {
	ObjectType string
	Name       string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.ObjectType, e.Name)
}

// NewAlreadyExistsError creates an AlreadyExistsError for the given object.
func NewAlreadyExistsError(objectType, name string) *AlreadyExistsError {
	return &AlreadyExistsError{ObjectType: objectType, Name: name}
}

// APIError carries a non-2xx response from the TM1 REST API.
type APIError struct {
	StatusCode int
	Message    string // response body, truncated by the transport
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("TM1 API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("TM1 API error %d", e.StatusCode)
}

// NewAPIError creates an APIError from a status code and response body.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// CompensationError reports a partial failure whose compensating action
// also failed. Err is the failure that triggered the rollback;
// CompensationErr is the rollback's own failure. Neither is swallowed.
type CompensationError struct {
	Op              string // operation that was being compensated, e.g. "create dimension 'Region'"
	Err             error
	CompensationErr error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("%s failed: %v (compensating delete also failed: %v)", e.Op, e.Err, e.CompensationErr)
}

// Unwrap returns the original failure so errors.Is/As see through the wrapper.
func (e *CompensationError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAlreadyExists returns true if the error is an AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var ae *AlreadyExistsError
	return errors.As(err, &ae)
}
