package util

import (
	"errors"
	"fmt"
)

// Error kinds. Domain errors wrap one of these so controllers can map
// them to a status code with errors.Is without inspecting the detail.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("permission denied")
	ErrNotFound     = errors.New("not found")
	ErrPersistence  = errors.New("persistence failure")
)

var (
	ErrEmailRegistered    = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCourseNotFound     = fmt.Errorf("%w: course", ErrNotFound)
	ErrQuizNotFound       = fmt.Errorf("%w: quiz", ErrNotFound)
	ErrAttemptNotFound    = fmt.Errorf("%w: attempt", ErrNotFound)
	ErrDraftNotFound      = fmt.Errorf("%w: quiz draft", ErrNotFound)
	ErrQuizNotPublished   = fmt.Errorf("%w: quiz not published", ErrNotFound)
	ErrNotEnrolled        = fmt.Errorf("%w: not enrolled in course", ErrUnauthorized)
	ErrNotCourseOwner     = fmt.Errorf("%w: not the course owner", ErrUnauthorized)
	ErrNotQuizAuthor      = fmt.Errorf("%w: not the quiz author", ErrUnauthorized)
	ErrQuizHasAttempts    = fmt.Errorf("%w: quiz already has attempts", ErrValidation)
	ErrAlreadyEnrolled    = fmt.Errorf("%w: already enrolled", ErrValidation)
)

// Validationf builds a ValidationError with a formatted detail.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
