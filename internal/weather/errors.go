package weather

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every not-found error the directory returns.
var ErrNotFound = errors.New("not found")

// NotFoundError names the record kind and station id a singular lookup missed.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// IntegrityError reports seed data that cannot form a consistent directory.
type IntegrityError struct {
	Message string
	Err     error
}

func (e *IntegrityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog integrity: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("catalog integrity: %s", e.Message)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func NewIntegrityError(message string, err error) *IntegrityError {
	return &IntegrityError{
		Message: message,
		Err:     err,
	}
}
