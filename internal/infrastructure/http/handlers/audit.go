package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rosterhq/roster/internal/application/ports"
)

// AuditLog logs account events (owner_id, account_id, IP).
func AuditLog(log zerolog.Logger, r *http.Request, event string, ownerID, accountID string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("owner_id", ownerID).
		Str("account_id", accountID).
		Str("ip", getClientIP(r)).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("account_audit")
}

// AuditEmit logs the event and, if emitter is non-nil, sends it to the
// webhook endpoint.
func AuditEmit(log zerolog.Logger, r *http.Request, emitter ports.WebhookEmitter, event, ownerID, accountID string, success bool, errMsg string) {
	AuditLog(log, r, event, ownerID, accountID, success, errMsg)
	if emitter != nil {
		_ = emitter.Emit(r.Context(), ports.AuditEvent{
			Event:     event,
			OwnerID:   ownerID,
			AccountID: accountID,
			IP:        getClientIP(r),
			Success:   success,
			Err:       errMsg,
		})
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
