package handlers

import (
	"encoding/json"
	"net/http"

	domerrors "github.com/rosterhq/roster/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is
// empty, a default is derived from the HTTP status.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusInternalServerError:
		return ErrCodeInternal
	default:
		return ErrCodeInternal
	}
}

// writeDomainErr maps an account error kind to its HTTP status:
// NotFound->404, Conflict->409, Validation->400, everything raised by the
// orchestrator ->500 (DataInconsistency keeps its own stable code so
// operators can alert on it).
func writeDomainErr(w http.ResponseWriter, err error) {
	switch domerrors.KindOf(err) {
	case domerrors.KindNotFound:
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case domerrors.KindConflict:
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case domerrors.KindValidation:
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case domerrors.KindInconsistency:
		writeErr(w, http.StatusInternalServerError, ErrCodeInconsistent, err.Error())
	case domerrors.KindOrchestration, domerrors.KindProvider:
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

// writeData sends JSON { "data": v }.
func writeData(w http.ResponseWriter, code int, v interface{}) {
	writeJSON(w, code, map[string]interface{}{"data": v})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
