package domain

import "time"

// UserRegisteredEvent announces a new account with its derived cohort.
type UserRegisteredEvent struct {
	EventID      string
	UserID       string
	Email        string
	FullName     string
	Batch        string
	Department   string
	Role         Role
	RegisteredAt time.Time
}

// NoticeCreatedEvent feeds the real-time delivery collaborator; consumers
// fan the notice out to the owning cohort.
type NoticeCreatedEvent struct {
	EventID    string
	NoticeID   string
	Batch      string
	Department string
	Title      string
	NoticeType NoticeType
	SenderID   string
	CreatedAt  time.Time
}

// RoleChangedEvent records a CR grant or revocation.
type RoleChangedEvent struct {
	EventID    string
	UserID     string
	Email      string
	Batch      string
	Department string
	OldRole    Role
	NewRole    Role
	ChangedBy  string
	ChangedAt  time.Time
}
