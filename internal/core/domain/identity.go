package domain

import (
	"fmt"
	"strings"
)

// StudentDomainSuffix is the institutional mail domain every student account uses.
const StudentDomainSuffix = "@student.cuet.ac.bd"

// studentLocalMarker prefixes the digit run in the local part, e.g. u2204015.
const studentLocalMarker = "u"

// StudentIdentity is the cohort identity derived from an institutional email.
// Batch and Department are zero-padded two-digit codes; StudentID is the
// remaining digit run (at least three digits).
type StudentIdentity struct {
	Batch      string
	Department string
	StudentID  string
}

// Cohort returns the (batch, department) pair used as the content scoping key.
func (s StudentIdentity) Cohort() Cohort {
	return Cohort{Batch: s.Batch, Department: s.Department}
}

// FullStudentID returns the concatenated roll number, e.g. "2204015".
func (s StudentIdentity) FullStudentID() string {
	return s.Batch + s.Department + s.StudentID
}

// Cohort identifies an enrollment group. Two users are cohort-mates iff both
// fields match exactly.
type Cohort struct {
	Batch      string
	Department string
}

// Equals reports whether both cohort fields match exactly (case-sensitive).
func (c Cohort) Equals(other Cohort) bool {
	return c.Batch == other.Batch && c.Department == other.Department
}

// InvalidIdentityError reports an email that does not match the institutional
// student-address shape. Account creation must abort on this error.
type InvalidIdentityError struct {
	Email  string
	Reason string
}

func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("invalid student email %q: %s", e.Email, e.Reason)
}

// ParseStudentEmail derives the cohort identity from an institutional student
// email of the form u<batch:2><dept:2><id:3+>@student.cuet.ac.bd.
//
// The function is pure and performs no range validation beyond digit-run
// length: any digit string in the right position is accepted, which tolerates
// future department-code growth.
func ParseStudentEmail(email string) (StudentIdentity, error) {
	if !strings.HasSuffix(email, StudentDomainSuffix) {
		return StudentIdentity{}, &InvalidIdentityError{Email: email, Reason: "must end with " + StudentDomainSuffix}
	}

	local := strings.TrimSuffix(email, StudentDomainSuffix)
	if !strings.HasPrefix(local, studentLocalMarker) {
		return StudentIdentity{}, &InvalidIdentityError{Email: email, Reason: "local part must start with '" + studentLocalMarker + "'"}
	}

	digits := strings.TrimPrefix(local, studentLocalMarker)
	if len(digits) < 7 {
		return StudentIdentity{}, &InvalidIdentityError{Email: email, Reason: "local part needs at least 7 digits after the marker"}
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return StudentIdentity{}, &InvalidIdentityError{Email: email, Reason: "local part must be digits after the marker"}
		}
	}

	return StudentIdentity{
		Batch:      digits[:2],
		Department: digits[2:4],
		StudentID:  digits[4:],
	}, nil
}
