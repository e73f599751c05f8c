package domain

import "time"

// Role determines which dashboard and capability set apply to an identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// UserStatus represents lifecycle states for an identity.
type UserStatus string

const (
	UserStatusPendingVerification UserStatus = "PENDING_VERIFICATION"
	UserStatusActive              UserStatus = "ACTIVE"
)

// User is the domain model for a registered identity.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	Headline     string
	Bio          string
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
