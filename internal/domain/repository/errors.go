package repository

import "errors"

// Absence and uniqueness are reported with these sentinels so services can
// tell them apart from infrastructure failures.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
