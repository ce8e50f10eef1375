package repository

import "errors"

// ErrNotFound is returned by repositories when the requested row does not
// exist or a conditional write matched nothing.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict is returned when an insert violates a uniqueness constraint,
// e.g. two concurrent registrations racing on the same email.
var ErrConflict = errors.New("repository: conflict")
