package repositories

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrOrderNotFound is returned when a completion targets an order number
	// with no header row.
	ErrOrderNotFound = errors.New("order not found")

	// ErrMenuItemNotFound is returned when an availability toggle matches no
	// menu row.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrOrderNumberConflict is returned when two submissions race to the
	// same order number and the retry also collides. Callers should surface
	// this as a retryable conflict rather than a generic failure.
	ErrOrderNumberConflict = errors.New("order number conflict")
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
