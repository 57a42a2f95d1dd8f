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
	domerrors "github.com/rosterhq/roster/internal/domain/errors"
	"github.com/rosterhq/roster/internal/infrastructure/http/middleware"
)

// OwnersHandler handles owner registration and owner resource endpoints.
type OwnersHandler struct {
	orch     *account.Orchestrator
	owners   *account.OwnerService
	emitter  ports.WebhookEmitter
	validate *validator.Validate
	log      zerolog.Logger
}

func NewOwnersHandler(orch *account.Orchestrator, owners *account.OwnerService, emitter ports.WebhookEmitter, log zerolog.Logger) *OwnersHandler {
	return &OwnersHandler{
		orch:     orch,
		owners:   owners,
		emitter:  emitter,
		validate: validator.New(),
		log:      log,
	}
}

// OwnerResponse is the JSON shape for owner records. Never carries a password.
type OwnerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func ownerToResponse(o *domain.Owner) OwnerResponse {
	return OwnerResponse{
		ID:        o.ID.String(),
		Name:      o.Name,
		Email:     o.Email,
		Role:      o.Role.String(),
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}

// Register handles POST /owners/register.
func (h *OwnersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name" validate:"required,max=255"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	name := SanitizeName(body.Name)
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if name == "" || email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid name, email, or password length")
		return
	}
	owner, err := h.orch.RegisterOwner(r.Context(), account.RegisterOwnerInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "owner.register", "", "", false, err.Error())
		middleware.RecordAccountOp("owner.register", outcomeFor(err))
		writeDomainErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "owner.register", owner.ID.String(), owner.ID.String(), true, "")
	middleware.RecordAccountOp("owner.register", "ok")
	writeData(w, http.StatusCreated, ownerToResponse(owner))
}

// Get handles GET /owners/{ownerID}. The token subject must be the owner.
func (h *OwnersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownedBySubject(w, r)
	if !ok {
		return
	}
	owner, err := h.owners.GetByID(r.Context(), ownerID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeData(w, http.StatusOK, ownerToResponse(owner))
}

// Delete handles DELETE /owners/{ownerID}: the delete-with-identity workflow.
func (h *OwnersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownedBySubject(w, r)
	if !ok {
		return
	}
	if err := h.orch.DeleteOwner(r.Context(), ownerID); err != nil {
		event := "owner.delete"
		if domerrors.IsKind(err, domerrors.KindInconsistency) {
			event = "account.inconsistent"
		}
		AuditEmit(h.log, r, h.emitter, event, ownerID.String(), ownerID.String(), false, err.Error())
		middleware.RecordAccountOp("owner.delete", outcomeFor(err))
		writeDomainErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "owner.delete", ownerID.String(), ownerID.String(), true, "")
	middleware.RecordAccountOp("owner.delete", "ok")
	w.WriteHeader(http.StatusNoContent)
}

// ownedBySubject parses {ownerID} and checks it against the token subject.
func (h *OwnersHandler) ownedBySubject(w http.ResponseWriter, r *http.Request) (domain.OwnerID, bool) {
	idStr := chi.URLParam(r, "ownerID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid owner id")
		return domain.OwnerID{}, false
	}
	if middleware.SubjectFromContext(r.Context()) != idStr {
		writeErr(w, http.StatusForbidden, "", "token subject does not match owner")
		return domain.OwnerID{}, false
	}
	return domain.NewOwnerID(id), true
}

// outcomeFor maps an error to a metrics outcome label.
func outcomeFor(err error) string {
	switch domerrors.KindOf(err) {
	case domerrors.KindNotFound:
		return "not_found"
	case domerrors.KindConflict:
		return "conflict"
	case domerrors.KindValidation:
		return "invalid"
	case domerrors.KindInconsistency:
		return "inconsistent"
	default:
		return "failed"
	}
}
