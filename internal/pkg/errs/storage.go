package errs

import (
	"errors"
	"fmt"
)

// ErrStorage marks failures of the persistence boundary. The original driver
// error is kept in Cause and is not interpreted.
var ErrStorage = errors.New("storage error")

type StorageError struct {
	Operation string
	Cause     error
}

func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrStorage, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrStorage, e.Operation)
}

func (e *StorageError) Unwrap() error {
	return ErrStorage
}
