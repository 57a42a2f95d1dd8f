package domain

import (
	"time"

	"github.com/google/uuid"
)

// OwnerID is a value object for owner identity. The same uuid doubles as the
// uid of the owner's identity-provider account.
type OwnerID struct{ uuid.UUID }

// NewOwnerID creates a new OwnerID from uuid.
func NewOwnerID(id uuid.UUID) OwnerID { return OwnerID{UUID: id} }

// String returns the canonical string form.
func (o OwnerID) String() string { return o.UUID.String() }

// Owner is a top-level tenant account.
type Owner struct {
	ID        OwnerID
	Name      string
	Email     string
	Role      Role // always RoleOwner
	CreatedAt time.Time
}
