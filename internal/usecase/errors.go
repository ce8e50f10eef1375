package usecase

import "errors"

var (
	// ErrInvalidCredentials covers both unknown-email and wrong-password
	// sign-in failures so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailExists indicates the email is already registered.
	ErrEmailExists = errors.New("email already registered")
	// ErrUnauthenticated indicates the request carries no usable identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden indicates the actor's role does not permit the operation.
	ErrForbidden = errors.New("operation not permitted")
	// ErrAlreadyCR indicates a grant targeting a user who already holds CR.
	ErrAlreadyCR = errors.New("user already holds the CR role")
	// ErrNotCR indicates a revocation targeting a user who is not a CR.
	ErrNotCR = errors.New("user does not hold the CR role")
	// ErrInvalidRoleTransition indicates the target's current role does not
	// admit the requested transition, or it changed concurrently.
	ErrInvalidRoleTransition = errors.New("role transition not applicable")
	// ErrCohortMismatch indicates a cohort disagreement: a course from
	// another department, or a CR grant whose declared cohort does not match
	// the target's record.
	ErrCohortMismatch = errors.New("cohort mismatch")
	// ErrCourseNotFound indicates an unknown course code.
	ErrCourseNotFound = errors.New("course not found")
	// ErrSemesterNotFound indicates an unknown semester name.
	ErrSemesterNotFound = errors.New("semester not found")
)
