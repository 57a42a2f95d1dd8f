package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster/internal/application/account"
	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/domain"
	httprouter "github.com/rosterhq/roster/internal/infrastructure/http"
	"github.com/rosterhq/roster/internal/infrastructure/http/handlers"
	"github.com/rosterhq/roster/internal/infrastructure/http/middleware"
	"github.com/rosterhq/roster/internal/infrastructure/queue"
	"github.com/rosterhq/roster/internal/infrastructure/webhook"
)

// stubVerifier treats the raw bearer token as the subject id. Tests
// authenticate as an owner by sending "Bearer <ownerID>".
type stubVerifier struct{}

func (stubVerifier) Verify(tokenString string) (string, error) {
	return tokenString, nil
}

type memOwnerRepo struct {
	owners map[string]domain.Owner
}

func (r *memOwnerRepo) Create(ctx context.Context, owner *domain.Owner) error {
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
	delete(r.owners, id.String())
	return nil
}

type memUserRepo struct {
	users map[string]domain.User
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
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
	out := []*domain.User{}
	for _, u := range r.users {
		if u.OwnerID == ownerID {
			cp := u
			out = append(out, &cp)
		}
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
	delete(r.users, id.String())
	return nil
}

// countingProvider records identity provider traffic per operation.
type countingProvider struct {
	createCalls int
	deleteCalls int
	claimsCalls int
	identities  map[string]ports.IdentityParams
}

func (p *countingProvider) CreateIdentity(ctx context.Context, params ports.IdentityParams) error {
	p.createCalls++
	p.identities[params.UID] = params
	return nil
}

func (p *countingProvider) DeleteIdentity(ctx context.Context, uid string) error {
	p.deleteCalls++
	delete(p.identities, uid)
	return nil
}

func (p *countingProvider) SetCustomClaims(ctx context.Context, uid string, role domain.Role) error {
	p.claimsCalls++
	return nil
}

type apiEnv struct {
	server    http.Handler
	ownerRepo *memOwnerRepo
	userRepo  *memUserRepo
	provider  *countingProvider
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	ownerRepo := &memOwnerRepo{owners: make(map[string]domain.Owner)}
	userRepo := &memUserRepo{users: make(map[string]domain.User)}
	provider := &countingProvider{identities: make(map[string]ports.IdentityParams)}
	log := zerolog.New(os.Stderr).Level(zerolog.Disabled)

	ownerService := account.NewOwnerService(ownerRepo)
	userService := account.NewUserService(userRepo)
	orch := account.NewOrchestrator(ownerService, userService, provider, queue.NewNoopEnqueuer(), log)
	emitter := webhook.NewNoopEmitter()

	router := httprouter.NewRouter(httprouter.RouterConfig{
		OwnersHandler: handlers.NewOwnersHandler(orch, ownerService, emitter, log),
		UsersHandler:  handlers.NewUsersHandler(orch, userService, emitter, log),
		RequireJWT:    middleware.NewAuthValidator(stubVerifier{}).Handler,
		Log:           log,
	})
	return &apiEnv{server: router, ownerRepo: ownerRepo, userRepo: userRepo, provider: provider}
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func (e *apiEnv) registerOwner(t *testing.T, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/owners/register", "", map[string]string{
		"name":     "Avery",
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData(t, rec)["id"].(string)
}

func (e *apiEnv) createUser(t *testing.T, ownerID, email, role string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPost, "/owners/"+ownerID+"/users", ownerID, map[string]string{
		"name":     "Blair",
		"email":    email,
		"password": "hunter2hunter2",
		"role":     role,
	})
}

func TestRegisterOwner(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/owners/register", "", map[string]string{
		"name":     "Avery",
		"email":    "avery@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.Equal(t, "OWNER", data["role"])
	assert.Equal(t, "avery@example.com", data["email"])
	assert.NotEmpty(t, data["id"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword, "response must not carry the password")

	// Both stores hold the account under the same id.
	id := data["id"].(string)
	assert.Contains(t, env.ownerRepo.owners, id)
	assert.Contains(t, env.provider.identities, id)
	assert.Equal(t, 1, env.provider.claimsCalls)
}

func TestCreateUserInvalidOwnerID(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/owners/invalid-id/users", "invalid-id", map[string]string{
		"name":     "Blair",
		"email":    "blair@example.com",
		"password": "hunter2hunter2",
		"role":     "EMPLOYEE",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// Rejected before any store or provider traffic.
	assert.Empty(t, env.userRepo.users)
	assert.Zero(t, env.provider.createCalls)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := newAPIEnv(t)
	ownerID := env.registerOwner(t, "owner@example.com")
	createsAfterOwner := env.provider.createCalls

	rec := env.createUser(t, ownerID, "blair@example.com", "EMPLOYEE")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.createUser(t, ownerID, "blair@example.com", "MANAGER")
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Only the first create reached the identity provider.
	assert.Equal(t, createsAfterOwner+1, env.provider.createCalls)
}

func TestDeleteUserNotFound(t *testing.T) {
	env := newAPIEnv(t)
	ownerID := env.registerOwner(t, "owner@example.com")

	rec := env.do(t, http.MethodDelete, "/users/1b671a64-40d5-491e-99b0-da01ff1f3341", ownerID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	assert.Zero(t, env.provider.deleteCalls)
}

func TestDeleteUser(t *testing.T) {
	env := newAPIEnv(t)
	ownerID := env.registerOwner(t, "owner@example.com")

	rec := env.createUser(t, ownerID, "blair@example.com", "EMPLOYEE")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	userID := decodeData(t, rec)["id"].(string)

	rec = env.do(t, http.MethodDelete, "/users/"+userID, ownerID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.NotContains(t, env.userRepo.users, userID)
	assert.NotContains(t, env.provider.identities, userID)
}

func TestChangeUserRoleRoundTrip(t *testing.T) {
	env := newAPIEnv(t)
	ownerID := env.registerOwner(t, "owner@example.com")

	rec := env.createUser(t, ownerID, "blair@example.com", "EMPLOYEE")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	userID := decodeData(t, rec)["id"].(string)

	rec = env.do(t, http.MethodPatch, "/users/"+userID+"/role", ownerID, map[string]string{"role": "MANAGER"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "MANAGER", decodeData(t, rec)["role"])

	rec = env.do(t, http.MethodPatch, "/users/"+userID+"/role", ownerID, map[string]string{"role": "EMPLOYEE"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "EMPLOYEE", decodeData(t, rec)["role"])

	assert.Equal(t, domain.RoleEmployee, env.userRepo.users[userID].Role)
}

func TestOwnerRoutesRequireAuth(t *testing.T) {
	env := newAPIEnv(t)
	ownerID := env.registerOwner(t, "owner@example.com")

	rec := env.do(t, http.MethodGet, "/owners/"+ownerID, "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body["code"])
}

func TestOwnerRoutesRejectForeignSubject(t *testing.T) {
	env := newAPIEnv(t)
	ownerID := env.registerOwner(t, "owner@example.com")
	otherID := env.registerOwner(t, "other@example.com")

	rec := env.do(t, http.MethodGet, "/owners/"+ownerID, otherID, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListUsers(t *testing.T) {
	env := newAPIEnv(t)
	ownerID := env.registerOwner(t, "owner@example.com")

	rec := env.do(t, http.MethodGet, "/owners/"+ownerID+"/users", ownerID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
	assert.Empty(t, envelope.Data)

	require.Equal(t, http.StatusCreated, env.createUser(t, ownerID, "a@example.com", "EMPLOYEE").Code)
	require.Equal(t, http.StatusCreated, env.createUser(t, ownerID, "b@example.com", "MANAGER").Code)

	rec = env.do(t, http.MethodGet, "/owners/"+ownerID+"/users", ownerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
}

func TestDeleteOwner(t *testing.T) {
	env := newAPIEnv(t)
	ownerID := env.registerOwner(t, "owner@example.com")

	rec := env.do(t, http.MethodDelete, "/owners/"+ownerID, ownerID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Empty(t, env.ownerRepo.owners)
	assert.NotContains(t, env.provider.identities, ownerID)
}
