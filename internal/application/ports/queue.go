package ports

import "context"

// TaskEnqueuer enqueues async tasks (email, webhook).
type TaskEnqueuer interface {
	EnqueueSendWelcomeEmail(ctx context.Context, ownerID, email, name string) error
	EnqueueSendOffboardingNotice(ctx context.Context, ownerID, email string) error
	EnqueueWebhook(ctx context.Context, event string, payload interface{}) error
}
