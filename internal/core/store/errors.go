package store

import (
	"errors"
	"fmt"
)

// ErrMissingID is the sentinel wrapped by InvalidRecordError.
var ErrMissingID = errors.New("record has no id")

// InvalidRecordError reports records rejected because they carry no valid ID.
type InvalidRecordError struct {
	Store string
	Count int
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("%s store: rejected %d record(s): %v", e.Store, e.Count, ErrMissingID)
}

// Unwrap exposes ErrMissingID to errors.Is.
func (e *InvalidRecordError) Unwrap() error {
	return ErrMissingID
}
