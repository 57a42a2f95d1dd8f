package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rosterhq/roster/internal/application/ports"
)

// AuthValidator verifies the bearer token and sets the subject id in context
// (see SubjectFromContext). Token mechanics are opaque: verify, get subject.
type AuthValidator struct {
	verifier ports.TokenVerifier
}

func NewAuthValidator(verifier ports.TokenVerifier) *AuthValidator {
	return &AuthValidator{verifier: verifier}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeAuthErr(w, "missing or invalid authorization")
			return
		}
		subject, err := m.verifier.Verify(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			writeAuthErr(w, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
	})
}

func writeAuthErr(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"})
}
