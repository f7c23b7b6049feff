// Package session composes the credential hasher, token service, and stores
// into the operations the transport layer invokes.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitcoach/fitcoach-be/internal/auth"
	"github.com/fitcoach/fitcoach-be/internal/coach"
	"github.com/fitcoach/fitcoach-be/internal/logging"
	"github.com/fitcoach/fitcoach-be/internal/models"
	"github.com/fitcoach/fitcoach-be/internal/storage"
	"github.com/google/uuid"
)

// Credentials is the outcome of a successful register or login.
type Credentials struct {
	Token     string
	UserID    string
	ExpiresIn int // seconds
}

// Service is the session façade. All state lives in the injected stores; the
// service itself is safe for concurrent use.
type Service struct {
	users         storage.UserStore
	conversations storage.ConversationStore
	hasher        auth.Hasher
	tokens        *auth.TokenManager
	denylist      auth.Denylist
	generator     coach.Generator
	now           func() time.Time
}

// NewService wires the façade from its collaborators.
func NewService(
	users storage.UserStore,
	conversations storage.ConversationStore,
	hasher auth.Hasher,
	tokens *auth.TokenManager,
	denylist auth.Denylist,
	generator coach.Generator,
) *Service {
	return &Service{
		users:         users,
		conversations: conversations,
		hasher:        hasher,
		tokens:        tokens,
		denylist:      denylist,
		generator:     generator,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a new user and issues a token for it. A duplicate email
// yields storage.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName, goals string) (Credentials, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return Credentials{}, s.internal(fmt.Errorf("hash password: %w", err))
	}

	user, err := s.users.CreateUser(ctx, models.UserRecord{
		Email:        email,
		PasswordHash: digest,
		FirstName:    firstName,
		LastName:     lastName,
		Goals:        goals,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return Credentials{}, err
		}
		return Credentials{}, s.internal(fmt.Errorf("create user: %w", err))
	}

	logging.Infow("user registered", "user_id", user.ID, "email", user.Email)
	return s.issue(user)
}

// Login verifies credentials and issues a fresh token. An unknown email and a
// wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (Credentials, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Credentials{}, ErrInvalidCredentials
		}
		return Credentials{}, s.internal(fmt.Errorf("fetch user by email: %w", err))
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return Credentials{}, ErrInvalidCredentials
	}

	if err := s.users.Touch(ctx, user.ID); err != nil {
		return Credentials{}, s.internal(fmt.Errorf("touch user: %w", err))
	}

	logging.Infow("user logged in", "user_id", user.ID)
	return s.issue(user)
}

// Authenticate verifies a bearer token and returns the bound user id. It
// never mutates store state; repeated calls with the same unexpired token
// return the same id. Failures are the token service's typed errors, or
// auth.ErrTokenRevoked for a denylisted token.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", s.internal(fmt.Errorf("check denylist: %w", err))
	}
	if revoked {
		return "", auth.ErrTokenRevoked
	}
	return claims.UserID, nil
}

// Logout denylists the token until its natural expiry. Expiry remains the
// only termination mechanism the tokens themselves know about; the denylist
// is layered outside the issue/verify contract.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return s.internal(fmt.Errorf("revoke token: %w", err))
	}
	logging.Infow("user logged out", "user_id", claims.UserID)
	return nil
}

// RecordTurn generates a response for the message, appends the exchange to
// the user's history, and refreshes the user's activity timestamp. A missing
// conversation id is generated.
func (s *Service) RecordTurn(ctx context.Context, userID, message, conversationID string, msgContext map[string]any) (models.ConversationTurn, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	started := s.now()
	response, tokensUsed, err := s.generator.Generate(ctx, message, msgContext)
	if err != nil {
		return models.ConversationTurn{}, s.internal(fmt.Errorf("generate response: %w", err))
	}
	elapsedMs := s.now().Sub(started).Milliseconds()

	turn, err := s.conversations.Append(ctx, userID, models.ConversationTurn{
		ConversationID: conversationID,
		UserMessage:    message,
		Response:       response,
		TokensUsed:     tokensUsed,
		ResponseTimeMs: elapsedMs,
		Context:        msgContext,
	})
	if err != nil {
		return models.ConversationTurn{}, s.internal(fmt.Errorf("append turn: %w", err))
	}

	if err := s.users.Touch(ctx, userID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.ConversationTurn{}, s.internal(fmt.Errorf("touch user: %w", err))
	}

	logging.Infow("chat turn recorded",
		"user_id", userID, "conversation_id", conversationID,
		"tokens_used", tokensUsed, "response_time_ms", elapsedMs)
	return turn, nil
}

// History returns a page of the target user's turns. A user may read only
// their own history; any other requester gets ErrForbidden.
func (s *Service) History(ctx context.Context, requesterID, targetUserID string, limit, offset int) ([]models.ConversationTurn, int, error) {
	if requesterID != targetUserID {
		return nil, 0, ErrForbidden
	}
	turns, total, err := s.conversations.List(ctx, targetUserID, limit, offset)
	if err != nil {
		return nil, 0, s.internal(fmt.Errorf("list turns: %w", err))
	}
	return turns, total, nil
}

// Stats aggregates the user's conversation activity with the record's
// membership timestamps.
func (s *Service) Stats(ctx context.Context, userID string) (models.UserStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.UserStats{}, err
		}
		return models.UserStats{}, s.internal(fmt.Errorf("fetch user: %w", err))
	}

	turnCount, daysActive, err := s.conversations.Stats(ctx, userID)
	if err != nil {
		return models.UserStats{}, s.internal(fmt.Errorf("conversation stats: %w", err))
	}

	return models.UserStats{
		UserID:      user.ID,
		TurnCount:   turnCount,
		DaysActive:  daysActive,
		MemberSince: user.CreatedAt,
		LastActive:  user.LastActive,
	}, nil
}

// Profile returns the user's record.
func (s *Service) Profile(ctx context.Context, userID string) (models.UserRecord, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.UserRecord{}, s.internal(fmt.Errorf("fetch user: %w", err))
	}
	return user, err
}

// UpdateProfile applies a partial update and returns the refreshed record.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update storage.ProfileUpdate) (models.UserRecord, error) {
	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.UserRecord{}, err
		}
		return models.UserRecord{}, s.internal(fmt.Errorf("update profile: %w", err))
	}
	logging.Infow("profile updated", "user_id", userID)
	return user, nil
}

func (s *Service) issue(user models.UserRecord) (Credentials, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return Credentials{}, s.internal(fmt.Errorf("issue token: %w", err))
	}
	return Credentials{
		Token:     token,
		UserID:    user.ID,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
	}, nil
}

// internal wraps an unexpected fault with a correlation id and logs the cause
// once, here, so the transport only ever exposes the id.
func (s *Service) internal(cause error) *InternalError {
	ierr := newInternalError(cause)
	logging.Errorw("internal session error", "correlation_id", ierr.CorrelationID, "error", cause)
	return ierr
}
