package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicate is returned when a create violates a uniqueness constraint.
// The constraint is the authoritative serialization point for the
// check-then-create races on (student, assignment), (student, course)
// submission/review/enrollment pairs; callers translate this into the same
// conflict error as the pre-check.
var ErrDuplicate = errors.New("duplicate record")

func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	// The sqlite driver used in tests does not map constraint errors onto
	// gorm.ErrDuplicatedKey.
	message := err.Error()
	if strings.Contains(message, "UNIQUE constraint failed") ||
		strings.Contains(message, "duplicate key value") {
		return ErrDuplicate
	}
	return err
}
