package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/domain"
	domerrors "github.com/rosterhq/roster/internal/domain/errors"
	"github.com/rosterhq/roster/internal/infrastructure/persistence/db"
)

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation.
// Concurrent creates racing on one email are resolved here: the loser gets
// Conflict before any identity-provider call is attempted.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type OwnerRepository struct {
	q *db.Queries
}

func NewOwnerRepository(q *db.Queries) *OwnerRepository {
	return &OwnerRepository{q: q}
}

func (r *OwnerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	_, err := r.q.CreateOwner(ctx, db.CreateOwnerParams{
		ID:        owner.ID.UUID,
		Name:      owner.Name,
		Email:     owner.Email,
		Role:      owner.Role.String(),
		CreatedAt: owner.CreatedAt,
	})
	if isUniqueViolation(err) {
		return domerrors.Conflict("an owner with this email already exists")
	}
	return err
}

func (r *OwnerRepository) GetByID(ctx context.Context, id domain.OwnerID) (*domain.Owner, error) {
	o, err := r.q.GetOwnerByID(ctx, id.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbOwnerToDomain(o), nil
}

func (r *OwnerRepository) GetByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	o, err := r.q.GetOwnerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbOwnerToDomain(o), nil
}

func (r *OwnerRepository) Delete(ctx context.Context, id domain.OwnerID) error {
	return r.q.DeleteOwner(ctx, id.UUID)
}

func dbOwnerToDomain(o db.Owner) *domain.Owner {
	return &domain.Owner{
		ID:        domain.NewOwnerID(o.ID),
		Name:      o.Name,
		Email:     o.Email,
		Role:      domain.Role(o.Role),
		CreatedAt: o.CreatedAt,
	}
}

// Ensure OwnerRepository implements ports.OwnerRepository.
var _ ports.OwnerRepository = (*OwnerRepository)(nil)
