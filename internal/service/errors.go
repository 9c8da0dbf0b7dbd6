package service

import (
	"errors"
	"fmt"

	"go-inventory-history/pkg/validator"
)

var (
	ErrDuplicateName   = errors.New("product name already exists")
	ErrProductNotFound = errors.New("product not found")
)

// ValidationError reports the first field that failed validation. Message,
// when set, replaces the generated text.
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", e.Field, e.Tag)
}

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// classify keeps domain errors as they are and wraps anything else, such as
// a failed BEGIN or COMMIT, as a StorageError.
func classify(op string, err error) error {
	var vErr *ValidationError
	var sErr *StorageError
	switch {
	case errors.Is(err, ErrDuplicateName), errors.Is(err, ErrProductNotFound):
		return err
	case errors.As(err, &vErr), errors.As(err, &sErr):
		return err
	default:
		return storageErr(op, err)
	}
}

func validateInput(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}
	return nil
}
