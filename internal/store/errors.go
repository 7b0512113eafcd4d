package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound reports that no client exists with the requested id.
	ErrNotFound = errors.New("client not found")
	// ErrEmailTaken reports that another client already owns the email.
	ErrEmailTaken = errors.New("email already exists")
)

// isUniqueViolation recognizes a unique-index failure from the sqlite driver.
// The index on email backstops the application-level check under concurrency.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
