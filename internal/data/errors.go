package data

import (
	"errors"

	"github.com/google/uuid"

	apperrors "github.com/target/jokeboard/internal/errors"
)

var (
	// ErrNilDB is returned by constructors given no database handle.
	ErrNilDB = errors.New("database handle is required")
	// ErrNilCache is returned when a cache decorator is built without a cache.
	ErrNilCache = errors.New("cache is required")
)

// validID reports whether id can be a primary key. Lookups with anything else
// are answered as not-found without a round trip.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// mapNotFound maps a repository error and replaces the generic not-found
// message with one naming the entity.
func mapNotFound(err error, message string) error {
	mapped := apperrors.MapDBError(err)
	if apperrors.IsNotFound(mapped) {
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, message)
	}
	return mapped
}
