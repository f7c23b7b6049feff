package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/fitcoach/fitcoach-be/internal/http/respond"
	"github.com/fitcoach/fitcoach-be/internal/models/dto"
	"github.com/fitcoach/fitcoach-be/internal/session"
	"github.com/fitcoach/fitcoach-be/internal/storage"
)

// Field bounds enforced at the transport layer; the core components have no
// length constraints of their own.
const (
	minPasswordLen = 8
	maxPasswordLen = 100
	maxNameLen     = 50
	maxGoalsLen    = 500
)

// AuthHandler owns the register/login/logout endpoints.
type AuthHandler struct {
	sessions *session.Service
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(sessions *session.Service) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateRegistration(req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	creds, err := h.sessions.Register(r.Context(),
		strings.TrimSpace(req.Email), req.Password,
		strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), req.Goals)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusConflict, "user with this email already exists")
			return
		}
		writeSessionError(w, err, http.StatusInternalServerError, "failed to register user")
		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse(creds))
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	creds, err := h.sessions.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeSessionError(w, err, http.StatusInternalServerError, "failed to log in")
		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse(creds))
}

// HandleLogout denylists the presented token until its natural expiry. The
// route sits behind the auth middleware, so the token has already verified.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if err := h.sessions.Logout(r.Context(), token); err != nil {
		writeSessionError(w, err, http.StatusUnauthorized, "invalid authentication credentials")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"detail": "logged out"})
}

func tokenResponse(creds session.Credentials) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken: creds.Token,
		TokenType:   "bearer",
		ExpiresIn:   creds.ExpiresIn,
		UserID:      creds.UserID,
	}
}

func validateRegistration(req dto.RegisterRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	for _, name := range []string{strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)} {
		if name == "" || len(name) > maxNameLen {
			return fmt.Errorf("first and last name must be 1-%d characters", maxNameLen)
		}
	}
	if len(req.Goals) > maxGoalsLen {
		return fmt.Errorf("fitness goals must be at most %d characters", maxGoalsLen)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return fmt.Errorf("password must be %d-%d characters", minPasswordLen, maxPasswordLen)
	}
	var hasDigit, hasLetter bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if !hasDigit || !hasLetter {
		return errors.New("password must contain at least one letter and one digit")
	}
	return nil
}
