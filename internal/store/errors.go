package store

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrAlreadyTracked is returned by Create when the entity is already
	// attached to the unit of work.
	ErrAlreadyTracked = errors.New("store: entity is already tracked")

	// ErrNotImplemented marks operations the API exposes but does not back
	// yet. Handlers map it to 503.
	ErrNotImplemented = errors.New("store: not implemented")
)

// IsConstraintViolation reports whether err is a database integrity error
// (unique, foreign key, not-null, check). These surface unchanged out of the
// unit of work; callers decide how to present them.
func IsConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code.Class() == "23"
}

// IsTransient reports whether err is worth retrying under a fresh
// transaction: serialization failures, deadlocks, dropped connections and
// pool exhaustion. Everything else is terminal.
func IsTransient(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "40001", "40P01", "57P01", "53300":
		return true
	}
	return pqErr.Code.Class() == "08"
}
