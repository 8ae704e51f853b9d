package validate

import (
	"encoding/json"
	"errors"
)

// FieldErrors represents a set of field validation failures keyed by the
// JSON name of the field.
type FieldErrors map[string]string

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	d, err := json.Marshal(map[string]string(fe))
	if err != nil {
		return err.Error()
	}
	return string(d)
}

// IsFieldErrors checks if an error of type FieldErrors exists.
func IsFieldErrors(err error) bool {
	var fe FieldErrors
	return errors.As(err, &fe)
}

// GetFieldErrors returns the FieldErrors held by the error, if any.
func GetFieldErrors(err error) FieldErrors {
	var fe FieldErrors
	if !errors.As(err, &fe) {
		return nil
	}
	return fe
}
