package account

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster/internal/domain"
	domerrors "github.com/rosterhq/roster/internal/domain/errors"
)

func TestOwnerServiceGetByIDNotFound(t *testing.T) {
	svc := NewOwnerService(newMemOwnerRepo())

	_, err := svc.GetByID(context.Background(), domain.NewOwnerID(uuid.New()))
	require.Error(t, err)
	assert.Equal(t, domerrors.KindNotFound, domerrors.KindOf(err))
}

func TestUserServiceListByOwnerEmpty(t *testing.T) {
	svc := NewUserService(newMemUserRepo())

	users, err := svc.ListByOwner(context.Background(), domain.NewOwnerID(uuid.New()))
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserServiceListByOwnerStableOrder(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo)
	ownerID := domain.NewOwnerID(uuid.New())
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		u := &domain.User{
			ID:        domain.NewUserID(uuid.New()),
			OwnerID:   ownerID,
			Name:      "u",
			Email:     uuid.NewString() + "@example.com",
			Role:      domain.RoleEmployee,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		_, err := svc.Create(context.Background(), u)
		require.NoError(t, err)
	}

	first, err := svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	second, err := svc.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, first, 5)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestUserServiceDeleteNotFound(t *testing.T) {
	svc := NewUserService(newMemUserRepo())

	err := svc.Delete(context.Background(), domain.NewUserID(uuid.New()))
	require.Error(t, err)
	assert.Equal(t, domerrors.KindNotFound, domerrors.KindOf(err))
}
