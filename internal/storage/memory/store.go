// Package memory provides the default, process-local implementation of the
// storage interfaces: mutex-guarded maps with no external dependencies.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fitcoach/fitcoach-be/internal/models"
	"github.com/fitcoach/fitcoach-be/internal/storage"
	"github.com/google/uuid"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore         = (*Store)(nil)
	_ storage.ConversationStore = (*Store)(nil)
)

// Store holds users and conversation sequences in memory. All methods are safe
// for concurrent use; users and conversations are guarded independently.
type Store struct {
	now func() time.Time

	usersMu sync.RWMutex
	users   map[string]models.UserRecord
	emails  map[string]string // email -> user id

	convMu        sync.RWMutex
	conversations map[string][]models.ConversationTurn
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		now:           func() time.Time { return time.Now().UTC() },
		users:         make(map[string]models.UserRecord),
		emails:        make(map[string]string),
		conversations: make(map[string][]models.ConversationTurn),
	}
}

// CreateUser assigns a fresh ID and timestamps and stores the record. The
// email uniqueness check and the insert happen under one lock, so concurrent
// duplicate registrations cannot both succeed.
func (s *Store) CreateUser(_ context.Context, user models.UserRecord) (models.UserRecord, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return models.UserRecord{}, storage.ErrAlreadyExists
	}

	now := s.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.LastActive = now
	user.Active = true

	s.users[user.ID] = user
	s.emails[user.Email] = user.ID
	return user, nil
}

// GetByID fetches a user by identifier.
func (s *Store) GetByID(_ context.Context, id string) (models.UserRecord, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.UserRecord{}, storage.ErrNotFound
	}
	return user, nil
}

// GetByEmail fetches a user by exact, case-sensitive email match.
func (s *Store) GetByEmail(_ context.Context, email string) (models.UserRecord, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return models.UserRecord{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

// UpdateProfile applies the provided fields, leaves the rest untouched, and
// refreshes LastActive.
func (s *Store) UpdateProfile(_ context.Context, id string, update storage.ProfileUpdate) (models.UserRecord, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.UserRecord{}, storage.ErrNotFound
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Goals != nil {
		user.Goals = *update.Goals
	}
	user.LastActive = s.now()

	s.users[id] = user
	return user, nil
}

// Touch moves the user's LastActive to now.
func (s *Store) Touch(_ context.Context, id string) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.LastActive = s.now()
	s.users[id] = user
	return nil
}

// Append adds a turn to the end of the user's sequence, assigning its
// timestamp under the lock so timestamps never decrease within a sequence.
func (s *Store) Append(_ context.Context, userID string, turn models.ConversationTurn) (models.ConversationTurn, error) {
	s.convMu.Lock()
	defer s.convMu.Unlock()

	turn.Timestamp = s.now()
	if seq := s.conversations[userID]; len(seq) > 0 {
		if last := seq[len(seq)-1].Timestamp; turn.Timestamp.Before(last) {
			turn.Timestamp = last
		}
	}
	s.conversations[userID] = append(s.conversations[userID], turn)
	return turn, nil
}

// List returns a copy of the sub-sequence [offset, offset+limit) and the full
// stored length.
func (s *Store) List(_ context.Context, userID string, limit, offset int) ([]models.ConversationTurn, int, error) {
	s.convMu.RLock()
	defer s.convMu.RUnlock()

	seq := s.conversations[userID]
	total := len(seq)
	if limit <= 0 || offset < 0 || offset >= total {
		return []models.ConversationTurn{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]models.ConversationTurn, end-offset)
	copy(page, seq[offset:end])
	return page, total, nil
}

// Stats returns the turn count and days active for a user. Days active counts
// whole days from the earliest turn to now, inclusive of the current day.
func (s *Store) Stats(_ context.Context, userID string) (int, int, error) {
	s.convMu.RLock()
	defer s.convMu.RUnlock()

	seq := s.conversations[userID]
	if len(seq) == 0 {
		return 0, 0, nil
	}
	earliest := seq[0].Timestamp
	daysActive := int(s.now().Sub(earliest).Hours()/24) + 1
	return len(seq), daysActive, nil
}
