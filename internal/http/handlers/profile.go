package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fitcoach/fitcoach-be/internal/http/respond"
	"github.com/fitcoach/fitcoach-be/internal/middleware"
	"github.com/fitcoach/fitcoach-be/internal/models/dto"
	"github.com/fitcoach/fitcoach-be/internal/session"
	"github.com/fitcoach/fitcoach-be/internal/storage"
)

// ProfileHandler owns the profile and stats endpoints for the authenticated
// user.
type ProfileHandler struct {
	sessions *session.Service
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(sessions *session.Service) *ProfileHandler {
	return &ProfileHandler{sessions: sessions}
}

func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	user, err := h.sessions.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		writeSessionError(w, err, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateProfileUpdate(req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.sessions.UpdateProfile(r.Context(), userID, storage.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Goals:     req.Goals,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		writeSessionError(w, err, http.StatusInternalServerError, "failed to update profile")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *ProfileHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	stats, err := h.sessions.Stats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		writeSessionError(w, err, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}

func validateProfileUpdate(req dto.UpdateProfileRequest) error {
	for _, name := range []*string{req.FirstName, req.LastName} {
		if name == nil {
			continue
		}
		if trimmed := strings.TrimSpace(*name); trimmed == "" || len(trimmed) > maxNameLen {
			return fmt.Errorf("names must be 1-%d characters", maxNameLen)
		}
	}
	if req.Goals != nil && len(*req.Goals) > maxGoalsLen {
		return fmt.Errorf("fitness goals must be at most %d characters", maxGoalsLen)
	}
	return nil
}
