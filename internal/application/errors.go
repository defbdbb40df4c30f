package application

import (
	"errors"
	"fmt"
)

// Error taxonomy. The HTTP layer maps these to status codes with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnavailable     = errors.New("unavailable")
)

var (
	ErrEmailTaken         = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrTodoNotFound       = fmt.Errorf("%w: todo not found", ErrNotFound)
	ErrNotOwner           = fmt.Errorf("%w: not your todo", ErrForbidden)
	ErrAttachmentsOff     = fmt.Errorf("%w: attachments are not configured", ErrUnavailable)
)
