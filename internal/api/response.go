package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/store"
)

// responder writes JSON responses and logs what it cannot report to the
// client. Handlers embed it.
type responder struct {
	log *zap.Logger
}

// jsonResponse writes a JSON response with the given status code.
func (rs responder) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			rs.log.Warn("encoding response", zap.Error(err))
		}
	}
}

// jsonError writes a JSON error response.
func (rs responder) jsonError(w http.ResponseWriter, status int, message string) {
	rs.jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// persistWarning is reported with a successful response whose change could
// not be saved.
const persistWarning = "change applied but not saved"

// writeError maps a service error to its HTTP status.
func (rs responder) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, logistics.ErrUnauthenticated):
		rs.jsonError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, store.ErrNotAuthorized):
		rs.jsonError(w, http.StatusUnauthorized, logistics.LoginDeniedMessage)
	case errors.Is(err, logistics.ErrForbidden):
		rs.jsonError(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, store.ErrNotFound):
		rs.jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateEmail), errors.Is(err, store.ErrInsufficientStock):
		rs.jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrConfirmationRequired):
		rs.jsonError(w, http.StatusPreconditionRequired, "confirmation required: repeat with confirm=true")
	case errors.Is(err, store.ErrMissingField),
		errors.Is(err, store.ErrInvalidRole),
		errors.Is(err, model.ErrInvalidItem),
		errors.Is(err, logistics.ErrInvalidPage):
		rs.jsonError(w, http.StatusBadRequest, err.Error())
	default:
		rs.log.Error("unhandled error", zap.Error(err))
		rs.jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeMutation answers a mutation. A persistence failure still counts as
// success, since the change is live, and is flagged through "warning".
func (rs responder) writeMutation(w http.ResponseWriter, status int, key string, value any, err error) {
	if err != nil && !errors.Is(err, store.ErrPersist) {
		rs.writeError(w, err)
		return
	}
	body := map[string]any{key: value}
	if err != nil {
		body["warning"] = persistWarning
	}
	rs.jsonResponse(w, status, body)
}
