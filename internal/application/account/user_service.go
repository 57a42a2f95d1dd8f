package account

import (
	"context"

	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/domain"
	domerrors "github.com/rosterhq/roster/internal/domain/errors"
)

// UserService is the account service for owner-scoped user records.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create persists the user. Fails with Conflict if the email is taken by any
// user, regardless of owner.
func (s *UserService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.Conflict("a user with this email already exists")
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID fails with NotFound if no user has the id.
func (s *UserService) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.NotFound("user %s not found", id)
	}
	return user, nil
}

// ListByOwner returns the owner's users, empty slice if none. Ordering is
// stable per call (created_at, id) but otherwise unspecified.
func (s *UserService) ListByOwner(ctx context.Context, ownerID domain.OwnerID) ([]*domain.User, error) {
	return s.users.ListByOwner(ctx, ownerID)
}

// UpdateRole sets the role and returns the updated record. Setting the
// current role again is an allowed no-op.
func (s *UserService) UpdateRole(ctx context.Context, id domain.UserID, role domain.Role) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.NotFound("user %s not found", id)
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// Delete removes the user record. Fails with NotFound if the id is absent.
// No side effects beyond the account store.
func (s *UserService) Delete(ctx context.Context, id domain.UserID) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domerrors.NotFound("user %s not found", id)
	}
	return s.users.Delete(ctx, id)
}
