package storage

import (
	"context"
	"errors"

	"github.com/fitcoach/fitcoach-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ProfileUpdate carries the fields of a partial profile update. Nil fields are
// not applied.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Goals     *string
}

// UserStore captures user persistence operations needed by the session layer.
// Implementations must make every operation atomic with respect to the others:
// of two concurrent CreateUser calls with the same email, exactly one succeeds
// and the other observes ErrAlreadyExists.
type UserStore interface {
	// CreateUser assigns a fresh ID and both timestamps, then stores the record.
	CreateUser(ctx context.Context, user models.UserRecord) (models.UserRecord, error)
	GetByID(ctx context.Context, id string) (models.UserRecord, error)
	GetByEmail(ctx context.Context, email string) (models.UserRecord, error)
	// UpdateProfile applies only the provided fields and refreshes LastActive.
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (models.UserRecord, error)
	// Touch moves LastActive to now with no other side effects.
	Touch(ctx context.Context, id string) error
}

// ConversationStore captures conversation persistence operations.
//
// Append does not cross-validate the user id against the UserStore; an unknown
// id starts a new sequence. The session layer only appends for authenticated
// users, so the permissiveness is limited to direct store callers.
//
// Appends for the same user are serialized; List and Stats observe a
// consistent snapshot and never a partially appended turn.
type ConversationStore interface {
	// Append adds a turn to the end of the user's sequence, assigning its
	// timestamp, and creates the sequence on first use.
	Append(ctx context.Context, userID string, turn models.ConversationTurn) (models.ConversationTurn, error)
	// List returns the sub-sequence [offset, offset+limit) in append order and
	// the full stored length. An offset beyond the end or a non-positive limit
	// yields an empty slice, not an error.
	List(ctx context.Context, userID string, limit, offset int) ([]models.ConversationTurn, int, error)
	// Stats returns the turn count and the number of whole days between the
	// earliest turn and now plus one, or zero days for an empty sequence.
	Stats(ctx context.Context, userID string) (turnCount, daysActive int, err error)
}
