package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity. Mirrors the uid of the user's
// identity-provider account.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is an owner-scoped staff account (manager or employee).
type User struct {
	ID        UserID
	OwnerID   OwnerID
	Name      string
	Email     string
	Role      Role // RoleManager or RoleEmployee, never RoleOwner
	CreatedAt time.Time
}
