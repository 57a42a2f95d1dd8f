package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/rosterhq/roster/internal/application/ports"
)

const (
	TypeSendWelcomeEmail      = "email:welcome"
	TypeSendOffboardingNotice = "email:offboarding"
	TypeWebhook               = "webhook:emit"
)

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueSendWelcomeEmail(ctx context.Context, ownerID, email, name string) error {
	payload, _ := json.Marshal(map[string]string{
		"owner_id": ownerID,
		"email":    email,
		"name":     name,
	})
	task := asynq.NewTask(TypeSendWelcomeEmail, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue welcome email failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueSendOffboardingNotice(ctx context.Context, ownerID, email string) error {
	payload, _ := json.Marshal(map[string]string{
		"owner_id": ownerID,
		"email":    email,
	})
	task := asynq.NewTask(TypeSendOffboardingNotice, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue offboarding notice failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueWebhook(ctx context.Context, event string, payload interface{}) error {
	body, _ := json.Marshal(struct {
		Event   string      `json:"event"`
		Payload interface{} `json:"payload"`
	}{Event: event, Payload: payload})
	task := asynq.NewTask(TypeWebhook, body)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("event", event).Msg("enqueue webhook failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
