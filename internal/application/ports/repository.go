package ports

import (
	"context"

	"github.com/rosterhq/roster/internal/domain"
)

// OwnerRepository defines persistence for owner accounts.
// Get methods return (nil, nil) when no row matches.
type OwnerRepository interface {
	Create(ctx context.Context, owner *domain.Owner) error
	GetByID(ctx context.Context, id domain.OwnerID) (*domain.Owner, error)
	GetByEmail(ctx context.Context, email string) (*domain.Owner, error)
	Delete(ctx context.Context, id domain.OwnerID) error
}

// UserRepository defines persistence for owner-scoped user accounts.
// Get methods return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByOwner(ctx context.Context, ownerID domain.OwnerID) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id domain.UserID, role domain.Role) error
	Delete(ctx context.Context, id domain.UserID) error
}
