package account

import (
	"context"

	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/domain"
	domerrors "github.com/rosterhq/roster/internal/domain/errors"
)

// OwnerService is the account service for owner records. It enforces email
// uniqueness and existence; it never talks to the identity provider.
type OwnerService struct {
	owners ports.OwnerRepository
}

func NewOwnerService(owners ports.OwnerRepository) *OwnerService {
	return &OwnerService{owners: owners}
}

// Create persists the owner. Fails with Conflict if the email is taken.
func (s *OwnerService) Create(ctx context.Context, owner *domain.Owner) (*domain.Owner, error) {
	existing, err := s.owners.GetByEmail(ctx, owner.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.Conflict("an owner with this email already exists")
	}
	if err := s.owners.Create(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

// GetByID fails with NotFound if no owner has the id.
func (s *OwnerService) GetByID(ctx context.Context, id domain.OwnerID) (*domain.Owner, error) {
	owner, err := s.owners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domerrors.NotFound("owner %s not found", id)
	}
	return owner, nil
}

// Delete removes the owner record. Fails with NotFound if the id is absent.
// No side effects beyond the account store.
func (s *OwnerService) Delete(ctx context.Context, id domain.OwnerID) error {
	owner, err := s.owners.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if owner == nil {
		return domerrors.NotFound("owner %s not found", id)
	}
	return s.owners.Delete(ctx, id)
}
