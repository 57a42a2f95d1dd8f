package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/domain"
	domerrors "github.com/rosterhq/roster/internal/domain/errors"
)

// sagaState names every transition of the create- and delete-with-identity
// workflows, so each branch (success, compensated failure, unresolved
// inconsistency) is an explicit, logged state rather than an implicit catch.
type sagaState int

const (
	stateStart sagaState = iota
	stateLocalCreated
	stateIdentityCreated
	stateRolledBack
	stateLocalDeleted
	stateIdentityDeleted
	stateRestored
	stateInconsistent
)

func (s sagaState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateLocalCreated:
		return "local_created"
	case stateIdentityCreated:
		return "identity_created"
	case stateRolledBack:
		return "rolled_back"
	case stateLocalDeleted:
		return "local_deleted"
	case stateIdentityDeleted:
		return "identity_deleted"
	case stateRestored:
		return "restored"
	case stateInconsistent:
		return "inconsistent"
	default:
		return "unknown"
	}
}

const (
	msgCreateFailed = "failed to create account"
	msgDeleteFailed = "failed to delete account"
	msgInconsistent = "account stores are inconsistent; manual intervention required"
)

// Orchestrator coordinates the account services and the identity provider so
// that a local record and its provider identity are created and deleted
// together. There is no transaction spanning both stores: correctness is
// approximated by an ordered sequence plus one best-effort compensating
// action per workflow, never retried.
type Orchestrator struct {
	owners *OwnerService
	users  *UserService
	idp    ports.IdentityProvider
	tasks  ports.TaskEnqueuer
	log    zerolog.Logger
}

func NewOrchestrator(owners *OwnerService, users *UserService, idp ports.IdentityProvider, tasks ports.TaskEnqueuer, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{owners: owners, users: users, idp: idp, tasks: tasks, log: log}
}

func (o *Orchestrator) transition(saga, id string, s sagaState) {
	o.log.Debug().Str("saga", saga).Str("id", id).Stringer("state", s).Msg("saga transition")
}

type RegisterOwnerInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterOwner runs the create saga for an owner: local record first, then
// the provider identity under the same uid. The generated id is the only
// link between the two stores and is fixed before any side effect.
func (o *Orchestrator) RegisterOwner(ctx context.Context, input RegisterOwnerInput) (*domain.Owner, error) {
	id := domain.NewOwnerID(uuid.New())
	owner := &domain.Owner{
		ID:        id,
		Name:      input.Name,
		Email:     input.Email,
		Role:      domain.RoleOwner,
		CreatedAt: time.Now().UTC(),
	}

	o.transition("owner.create", id.String(), stateStart)
	created, err := o.owners.Create(ctx, owner)
	if err != nil {
		// Nothing to roll back; Conflict etc. propagate unchanged.
		return nil, err
	}
	o.transition("owner.create", id.String(), stateLocalCreated)

	if err := o.createIdentity(ctx, id.String(), input.Email, input.Password, input.Name, domain.RoleOwner); err != nil {
		o.log.Warn().Err(err).Str("owner_id", id.String()).Msg("identity creation failed; rolling back local owner record")
		if delErr := o.owners.Delete(ctx, id); delErr != nil {
			// Single compensation attempt only; the window stays open.
			o.log.Error().Err(delErr).Str("owner_id", id.String()).Msg("rollback of local owner record failed")
		}
		o.transition("owner.create", id.String(), stateRolledBack)
		return nil, domerrors.Orchestration(msgCreateFailed, err)
	}
	o.transition("owner.create", id.String(), stateIdentityCreated)

	if o.tasks != nil {
		_ = o.tasks.EnqueueSendWelcomeEmail(ctx, id.String(), created.Email, created.Name)
	}
	return created, nil
}

type CreateUserInput struct {
	OwnerID  domain.OwnerID
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// CreateUser runs the create saga for a user under an existing owner.
func (o *Orchestrator) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	// The owning owner must exist; NotFound propagates before any side effect.
	if _, err := o.owners.GetByID(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	id := domain.NewUserID(uuid.New())
	user := &domain.User{
		ID:        id,
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: time.Now().UTC(),
	}

	o.transition("user.create", id.String(), stateStart)
	created, err := o.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	o.transition("user.create", id.String(), stateLocalCreated)

	if err := o.createIdentity(ctx, id.String(), input.Email, input.Password, input.Name, input.Role); err != nil {
		o.log.Warn().Err(err).Str("user_id", id.String()).Msg("identity creation failed; rolling back local user record")
		if delErr := o.users.Delete(ctx, id); delErr != nil {
			o.log.Error().Err(delErr).Str("user_id", id.String()).Msg("rollback of local user record failed")
		}
		o.transition("user.create", id.String(), stateRolledBack)
		return nil, domerrors.Orchestration(msgCreateFailed, err)
	}
	o.transition("user.create", id.String(), stateIdentityCreated)
	return created, nil
}

// createIdentity creates the provider identity and attaches the role claim.
// A claims failure tears the identity back down so the caller's local-record
// rollback leaves no orphan on the provider side.
func (o *Orchestrator) createIdentity(ctx context.Context, uid, email, password, displayName string, role domain.Role) error {
	if err := o.idp.CreateIdentity(ctx, ports.IdentityParams{
		UID:         uid,
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}); err != nil {
		return err
	}
	if err := o.idp.SetCustomClaims(ctx, uid, role); err != nil {
		if delErr := o.idp.DeleteIdentity(ctx, uid); delErr != nil {
			o.log.Error().Err(delErr).Str("uid", uid).Msg("identity cleanup after claims failure also failed")
		}
		return err
	}
	return nil
}

// DeleteOwner runs the delete saga: snapshot, local delete, identity delete,
// with a compensating recreate from the snapshot if the identity side fails.
// The local record goes first; this ordering mirrors the original system and
// is preserved deliberately.
func (o *Orchestrator) DeleteOwner(ctx context.Context, id domain.OwnerID) error {
	snapshot, err := o.owners.GetByID(ctx, id)
	if err != nil {
		return err
	}

	o.transition("owner.delete", id.String(), stateStart)
	if err := o.owners.Delete(ctx, id); err != nil {
		return err
	}
	o.transition("owner.delete", id.String(), stateLocalDeleted)

	if err := o.idp.DeleteIdentity(ctx, id.String()); err != nil {
		if _, recErr := o.owners.Create(ctx, snapshot); recErr != nil {
			o.transition("owner.delete", id.String(), stateInconsistent)
			o.log.Error().Err(recErr).Str("owner_id", id.String()).Msg("compensating recreate of owner failed; stores inconsistent")
			return domerrors.Inconsistency(msgInconsistent, err)
		}
		o.transition("owner.delete", id.String(), stateRestored)
		o.log.Warn().Err(err).Str("owner_id", id.String()).Msg("identity deletion failed; local owner record restored")
		return domerrors.Orchestration(msgDeleteFailed, err)
	}
	o.transition("owner.delete", id.String(), stateIdentityDeleted)

	if o.tasks != nil {
		_ = o.tasks.EnqueueSendOffboardingNotice(ctx, id.String(), snapshot.Email)
	}
	return nil
}

// DeleteUser runs the delete saga for a user.
func (o *Orchestrator) DeleteUser(ctx context.Context, id domain.UserID) error {
	snapshot, err := o.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	o.transition("user.delete", id.String(), stateStart)
	if err := o.users.Delete(ctx, id); err != nil {
		return err
	}
	o.transition("user.delete", id.String(), stateLocalDeleted)

	if err := o.idp.DeleteIdentity(ctx, id.String()); err != nil {
		if _, recErr := o.users.Create(ctx, snapshot); recErr != nil {
			o.transition("user.delete", id.String(), stateInconsistent)
			o.log.Error().Err(recErr).Str("user_id", id.String()).Msg("compensating recreate of user failed; stores inconsistent")
			return domerrors.Inconsistency(msgInconsistent, err)
		}
		o.transition("user.delete", id.String(), stateRestored)
		o.log.Warn().Err(err).Str("user_id", id.String()).Msg("identity deletion failed; local user record restored")
		return domerrors.Orchestration(msgDeleteFailed, err)
	}
	o.transition("user.delete", id.String(), stateIdentityDeleted)

	if o.tasks != nil {
		_ = o.tasks.EnqueueSendOffboardingNotice(ctx, snapshot.OwnerID.String(), snapshot.Email)
	}
	return nil
}

// ChangeUserRole updates the stored role, then re-syncs the provider's role
// claim. The local update is authoritative: a claims failure surfaces as a
// provider error without undoing the role change.
func (o *Orchestrator) ChangeUserRole(ctx context.Context, id domain.UserID, role domain.Role) (*domain.User, error) {
	user, err := o.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	if err := o.idp.SetCustomClaims(ctx, id.String(), role); err != nil {
		o.log.Error().Err(err).Str("user_id", id.String()).Msg("role claim sync failed")
		return nil, domerrors.Provider(err)
	}
	return user, nil
}
