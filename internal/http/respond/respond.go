package respond

import (
	"encoding/json"
	"net/http"

	"github.com/fitcoach/fitcoach-be/internal/logging"
)

// JSON writes a payload as application/json.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorw("respond: encode payload failed", "error", err)
	}
}

// Error writes an error message in the shared {"detail": ...} shape.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"detail": message})
}

// Internal writes an opaque internal-error response carrying only the
// correlation id for operator diagnosis.
func Internal(w http.ResponseWriter, correlationID string) {
	JSON(w, http.StatusInternalServerError, map[string]string{
		"detail":         "internal server error",
		"correlation_id": correlationID,
	})
}
