package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/domain"
	domerrors "github.com/rosterhq/roster/internal/domain/errors"
	"github.com/rosterhq/roster/internal/infrastructure/persistence/db"
)

type UserRepository struct {
	q *db.Queries
}

func NewUserRepository(q *db.Queries) *UserRepository {
	return &UserRepository{q: q}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.q.CreateUser(ctx, db.CreateUserParams{
		ID:        user.ID.UUID,
		OwnerID:   user.OwnerID.UUID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	})
	if isUniqueViolation(err) {
		return domerrors.Conflict("a user with this email already exists")
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := r.q.GetUserByID(ctx, id.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) ListByOwner(ctx context.Context, ownerID domain.OwnerID) ([]*domain.User, error) {
	rows, err := r.q.ListUsersByOwnerID(ctx, ownerID.UUID)
	if err != nil {
		return nil, err
	}
	list := make([]*domain.User, 0, len(rows))
	for _, u := range rows {
		list = append(list, dbUserToDomain(u))
	}
	return list, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id domain.UserID, role domain.Role) error {
	return r.q.UpdateUserRole(ctx, db.UpdateUserRoleParams{ID: id.UUID, Role: role.String()})
}

func (r *UserRepository) Delete(ctx context.Context, id domain.UserID) error {
	return r.q.DeleteUser(ctx, id.UUID)
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:        domain.NewUserID(u.ID),
		OwnerID:   domain.NewOwnerID(u.OwnerID),
		Name:      u.Name,
		Email:     u.Email,
		Role:      domain.Role(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
