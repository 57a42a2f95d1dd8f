package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/domain"
)

type record struct {
	email        string
	passwordHash string
	displayName  string
	role         string
}

// MemoryProvider is an in-memory IdentityProvider for dev mode and tests.
// Credentials are hashed with the injected hasher so a dev instance never
// holds plaintext passwords. Suitable for single-instance deployment only.
type MemoryProvider struct {
	mu     sync.RWMutex
	data   map[string]*record
	hasher ports.PasswordHasher
}

// NewMemoryProvider returns an empty in-memory provider.
func NewMemoryProvider(hasher ports.PasswordHasher) *MemoryProvider {
	return &MemoryProvider{data: make(map[string]*record), hasher: hasher}
}

func (p *MemoryProvider) CreateIdentity(ctx context.Context, params ports.IdentityParams) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.data[params.UID]; ok {
		return fmt.Errorf("identity %s already exists", params.UID)
	}
	for _, r := range p.data {
		if r.email == params.Email {
			return fmt.Errorf("email %s already registered", params.Email)
		}
	}
	hash, err := p.hasher.Hash(params.Password)
	if err != nil {
		return err
	}
	p.data[params.UID] = &record{
		email:        params.Email,
		passwordHash: hash,
		displayName:  params.DisplayName,
	}
	return nil
}

func (p *MemoryProvider) DeleteIdentity(ctx context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.data[uid]; !ok {
		return fmt.Errorf("identity %s does not exist", uid)
	}
	delete(p.data, uid)
	return nil
}

func (p *MemoryProvider) SetCustomClaims(ctx context.Context, uid string, role domain.Role) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.data[uid]
	if !ok {
		return fmt.Errorf("identity %s does not exist", uid)
	}
	r.role = role.String()
	return nil
}

// Has reports whether an identity exists for uid.
func (p *MemoryProvider) Has(uid string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.data[uid]
	return ok
}

// VerifyPassword checks a credential pair against the stored hash.
func (p *MemoryProvider) VerifyPassword(uid, password string) bool {
	p.mu.RLock()
	r, ok := p.data[uid]
	p.mu.RUnlock()
	if !ok {
		return false
	}
	return p.hasher.Verify(password, r.passwordHash)
}

var _ ports.IdentityProvider = (*MemoryProvider)(nil)
