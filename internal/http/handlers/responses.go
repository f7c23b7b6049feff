package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fitcoach/fitcoach-be/internal/http/respond"
	"github.com/fitcoach/fitcoach-be/internal/session"
)

// decodeJSON parses a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// queryInt reads an integer query parameter, falling back on absence or junk.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

// writeSessionError maps a session failure to its HTTP response, keeping the
// internal-error branch in one place.
func writeSessionError(w http.ResponseWriter, err error, status int, message string) {
	var ierr *session.InternalError
	if errors.As(err, &ierr) {
		respond.Internal(w, ierr.CorrelationID)
		return
	}
	respond.Error(w, status, message)
}
