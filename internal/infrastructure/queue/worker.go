package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// welcomePayload matches the JSON enqueued by TaskEnqueuer.EnqueueSendWelcomeEmail.
type welcomePayload struct {
	OwnerID string `json:"owner_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// offboardingPayload matches the JSON enqueued by TaskEnqueuer.EnqueueSendOffboardingNotice.
type offboardingPayload struct {
	OwnerID string `json:"owner_id"`
	Email   string `json:"email"`
}

// Worker runs Asynq task handlers (welcome email, offboarding notice).
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, log: log}
	mux.HandleFunc(TypeSendWelcomeEmail, w.handleSendWelcomeEmail)
	mux.HandleFunc(TypeSendOffboardingNotice, w.handleSendOffboardingNotice)
	mux.HandleFunc(TypeWebhook, w.handleWebhook)
	return w
}

func (w *Worker) handleSendWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var p welcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("welcome email task payload invalid")
		return err
	}
	// Dev: log the email; production would send via SMTP/sendgrid etc.
	w.log.Info().
		Str("owner_id", p.OwnerID).
		Str("email", p.Email).
		Str("name", p.Name).
		Msg("welcome email (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleSendOffboardingNotice(ctx context.Context, t *asynq.Task) error {
	var p offboardingPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("offboarding notice task payload invalid")
		return err
	}
	w.log.Info().
		Str("owner_id", p.OwnerID).
		Str("email", p.Email).
		Msg("offboarding notice (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleWebhook(ctx context.Context, t *asynq.Task) error {
	w.log.Debug().Str("payload", string(t.Payload())).Msg("webhook task (noop)")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
