package errs

import "errors"

var (
	// ErrUserNotFound indicates that no user exists for the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword indicates that the supplied password does not match.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrDuplicateEmail indicates a registration attempt with an email that is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidRole indicates a registration attempt with an unknown role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrTestNotFound indicates that a test was not found.
	ErrTestNotFound = errors.New("test not found")
	// ErrSubmissionNotFound indicates that a submission was not found.
	ErrSubmissionNotFound = errors.New("result not found")
	// ErrForbidden indicates that the caller is not allowed to access the resource.
	ErrForbidden = errors.New("forbidden")
)
