package repository

import "errors"

// Stores translate their driver errors into these so callers never depend on a driver.
var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate key")
	ErrForeignKey = errors.New("foreign key violation")
)

// ReferenceError is returned when a note write points at a folder or tag
// that does not exist. It matches ErrForeignKey.
type ReferenceError struct {
	Entity string // "folder" or "tag"
}

func (e *ReferenceError) Error() string { return ErrForeignKey.Error() + ": missing " + e.Entity }

func (e *ReferenceError) Is(target error) bool { return target == ErrForeignKey }
