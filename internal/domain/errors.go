package domain

import (
	"errors"
	"fmt"
)

// Lookup errors
var (
	ErrNotFound = errors.New("digimon not found")
)

// NotFoundError carries the raw query that produced no acceptable
// match, for diagnostics. It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("digimon not found: %q", e.Query)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
