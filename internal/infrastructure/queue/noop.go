package queue

import (
	"context"

	"github.com/rosterhq/roster/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueSendWelcomeEmail(ctx context.Context, ownerID, email, name string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueSendOffboardingNotice(ctx context.Context, ownerID, email string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueWebhook(ctx context.Context, event string, payload interface{}) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
