package errs

import (
	"errors"
	"fmt"
)

// ErrConcurrentModification is returned when a compare-and-set write finds that
// another writer committed first. Callers reload and retry; nothing retries for them.
var ErrConcurrentModification = errors.New("concurrent modification")

type ConcurrentModificationError struct {
	ParamName string
	ID        any
	Expected  int64
	Actual    int64
}

func NewConcurrentModificationError(paramName string, id any, expected, actual int64) *ConcurrentModificationError {
	return &ConcurrentModificationError{
		ParamName: paramName,
		ID:        id,
		Expected:  expected,
		Actual:    actual,
	}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %v, expected version %d, actual version %d",
		ErrConcurrentModification, e.ParamName, e.ID, e.Expected, e.Actual)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
