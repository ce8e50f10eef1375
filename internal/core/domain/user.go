package domain

import "time"

// Role enumerates the three mutually exclusive account roles.
type Role string

const (
	RoleStudent     Role = "STUDENT"
	RoleCR          Role = "CR"
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
)

// Valid reports whether the role is one of the three known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCR, RoleSystemAdmin:
		return true
	}
	return false
}

// CanAuthorContent reports whether the role may create notices and resources
// for its own cohort. CR and SYSTEM_ADMIN are equal in this dimension.
func (r Role) CanAuthorContent() bool {
	return r == RoleCR || r == RoleSystemAdmin
}

// CanBypassScope reports whether the role reads across all cohorts.
func (r Role) CanBypassScope() bool {
	return r == RoleSystemAdmin
}

// CanAdminister reports whether the role may grant and revoke the CR role.
func (r Role) CanAdminister() bool {
	return r == RoleSystemAdmin
}

// User mirrors the persisted representation in the users table.
//
// Batch, Department, and StudentID are derived from Email exactly once at
// account creation and are never independently edited afterwards.
type User struct {
	ID              string
	FullName        string
	Email           string
	PasswordHash    string
	Hall            *string
	Bio             *string
	Batch           string
	Department      string
	StudentID       string
	Role            Role
	IsActive        bool
	ProfileImage    *string
	BackgroundImage *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Cohort returns the user's (batch, department) scoping key.
func (u User) Cohort() Cohort {
	return Cohort{Batch: u.Batch, Department: u.Department}
}

// IsCR reports whether the user currently holds the CR role.
func (u User) IsCR() bool {
	return u.Role == RoleCR
}
