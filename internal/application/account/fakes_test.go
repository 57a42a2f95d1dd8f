package account

import (
	"context"
	"sort"

	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/domain"
)

// memOwnerRepo is an in-memory ports.OwnerRepository with fault injection.
type memOwnerRepo struct {
	owners      map[string]domain.Owner
	createErr   error
	deleteErr   error
	createCalls int
	deleteCalls int
}

func newMemOwnerRepo() *memOwnerRepo {
	return &memOwnerRepo{owners: make(map[string]domain.Owner)}
}

func (r *memOwnerRepo) Create(ctx context.Context, owner *domain.Owner) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	r.owners[owner.ID.String()] = *owner
	return nil
}

func (r *memOwnerRepo) GetByID(ctx context.Context, id domain.OwnerID) (*domain.Owner, error) {
	if o, ok := r.owners[id.String()]; ok {
		cp := o
		return &cp, nil
	}
	return nil, nil
}

func (r *memOwnerRepo) GetByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	for _, o := range r.owners {
		if o.Email == email {
			cp := o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memOwnerRepo) Delete(ctx context.Context, id domain.OwnerID) error {
	r.deleteCalls++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.owners, id.String())
	return nil
}

// memUserRepo is an in-memory ports.UserRepository with fault injection.
type memUserRepo struct {
	users       map[string]domain.User
	createErr   error
	deleteErr   error
	createCalls int
	deleteCalls int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	r.users[user.ID.String()] = *user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	if u, ok := r.users[id.String()]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ListByOwner(ctx context.Context, ownerID domain.OwnerID) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.OwnerID == ownerID {
			cp := u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if out == nil {
		out = []*domain.User{}
	}
	return out, nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, id domain.UserID, role domain.Role) error {
	u, ok := r.users[id.String()]
	if !ok {
		return nil
	}
	u.Role = role
	r.users[id.String()] = u
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id domain.UserID) error {
	r.deleteCalls++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.users, id.String())
	return nil
}

// fakeIdentityProvider records calls and injects failures per operation.
type fakeIdentityProvider struct {
	createCalls int
	deleteCalls int
	claimsCalls int
	createErr   error
	deleteErr   error
	claimsErr   error
	identities  map[string]ports.IdentityParams
}

func newFakeIdentityProvider() *fakeIdentityProvider {
	return &fakeIdentityProvider{identities: make(map[string]ports.IdentityParams)}
}

func (p *fakeIdentityProvider) CreateIdentity(ctx context.Context, params ports.IdentityParams) error {
	p.createCalls++
	if p.createErr != nil {
		return p.createErr
	}
	p.identities[params.UID] = params
	return nil
}

func (p *fakeIdentityProvider) DeleteIdentity(ctx context.Context, uid string) error {
	p.deleteCalls++
	if p.deleteErr != nil {
		return p.deleteErr
	}
	delete(p.identities, uid)
	return nil
}

func (p *fakeIdentityProvider) SetCustomClaims(ctx context.Context, uid string, role domain.Role) error {
	p.claimsCalls++
	if p.claimsErr != nil {
		return p.claimsErr
	}
	return nil
}
