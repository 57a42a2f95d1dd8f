package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rosterhq/roster/internal/application/account"
	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/domain"
	"github.com/rosterhq/roster/internal/infrastructure/http/middleware"
)

// UsersHandler handles member account endpoints under an owner.
type UsersHandler struct {
	orch     *account.Orchestrator
	users    *account.UserService
	emitter  ports.WebhookEmitter
	validate *validator.Validate
	log      zerolog.Logger
}

func NewUsersHandler(orch *account.Orchestrator, users *account.UserService, emitter ports.WebhookEmitter, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		orch:     orch,
		users:    users,
		emitter:  emitter,
		validate: validator.New(),
		log:      log,
	}
}

type UserResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		OwnerID:   u.OwnerID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /owners/{ownerID}/users. The owner id is validated
// before anything else runs so a malformed id never reaches the stores.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerIDStr := chi.URLParam(r, "ownerID")
	ownerUUID, err := uuid.Parse(ownerIDStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid owner id")
		return
	}
	if middleware.SubjectFromContext(r.Context()) != ownerIDStr {
		writeErr(w, http.StatusForbidden, "", "token subject does not match owner")
		return
	}
	var body struct {
		Name     string `json:"name" validate:"required,max=255"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8,max=128"`
		Role     string `json:"role" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	role, ok := domain.ParseUserRole(body.Role)
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "role must be MANAGER or EMPLOYEE")
		return
	}
	name := SanitizeName(body.Name)
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if name == "" || email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid name, email, or password length")
		return
	}
	ownerID := domain.NewOwnerID(ownerUUID)
	user, err := h.orch.CreateUser(r.Context(), account.CreateUserInput{
		OwnerID:  ownerID,
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.create", ownerIDStr, "", false, err.Error())
		middleware.RecordAccountOp("user.create", outcomeFor(err))
		writeDomainErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.create", ownerIDStr, user.ID.String(), true, "")
	middleware.RecordAccountOp("user.create", "ok")
	writeData(w, http.StatusCreated, userToResponse(user))
}

// List handles GET /owners/{ownerID}/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerIDStr := chi.URLParam(r, "ownerID")
	ownerUUID, err := uuid.Parse(ownerIDStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid owner id")
		return
	}
	if middleware.SubjectFromContext(r.Context()) != ownerIDStr {
		writeErr(w, http.StatusForbidden, "", "token subject does not match owner")
		return
	}
	users, err := h.users.ListByOwner(r.Context(), domain.NewOwnerID(ownerUUID))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	writeData(w, http.StatusOK, out)
}

// Get handles GET /users/{userID}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authorizedUser(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, userToResponse(user))
}

// UpdateRole handles PATCH /users/{userID}/role.
func (h *UsersHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authorizedUser(w, r)
	if !ok {
		return
	}
	var body struct {
		Role string `json:"role" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	role, ok := domain.ParseUserRole(body.Role)
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "role must be MANAGER or EMPLOYEE")
		return
	}
	updated, err := h.orch.ChangeUserRole(r.Context(), user.ID, role)
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.role_change", user.OwnerID.String(), user.ID.String(), false, err.Error())
		middleware.RecordAccountOp("user.role_change", outcomeFor(err))
		writeDomainErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.role_change", user.OwnerID.String(), user.ID.String(), true, "")
	middleware.RecordAccountOp("user.role_change", "ok")
	writeData(w, http.StatusOK, userToResponse(updated))
}

// Delete handles DELETE /users/{userID}: the delete-with-identity workflow.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "userID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid user id")
		return
	}
	userID := domain.NewUserID(id)
	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if middleware.SubjectFromContext(r.Context()) != user.OwnerID.String() {
		writeErr(w, http.StatusForbidden, "", "token subject does not own this account")
		return
	}
	if err := h.orch.DeleteUser(r.Context(), userID); err != nil {
		event := "user.delete"
		if outcomeFor(err) == "inconsistent" {
			event = "account.inconsistent"
		}
		AuditEmit(h.log, r, h.emitter, event, user.OwnerID.String(), idStr, false, err.Error())
		middleware.RecordAccountOp("user.delete", outcomeFor(err))
		writeDomainErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.delete", user.OwnerID.String(), idStr, true, "")
	middleware.RecordAccountOp("user.delete", "ok")
	w.WriteHeader(http.StatusNoContent)
}

// authorizedUser parses {userID}, loads the record, and verifies the token
// subject owns it.
func (h *UsersHandler) authorizedUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	idStr := chi.URLParam(r, "userID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid user id")
		return nil, false
	}
	user, err := h.users.GetByID(r.Context(), domain.NewUserID(id))
	if err != nil {
		writeDomainErr(w, err)
		return nil, false
	}
	if middleware.SubjectFromContext(r.Context()) != user.OwnerID.String() {
		writeErr(w, http.StatusForbidden, "", "token subject does not own this account")
		return nil, false
	}
	return user, true
}
