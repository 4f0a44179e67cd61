package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or is not owned by
	// the requesting user. The two cases are deliberately indistinguishable so
	// callers cannot probe for foreign record ids.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a store-level uniqueness constraint rejects
	// a write.
	ErrConflict = errors.New("record already exists")
)
