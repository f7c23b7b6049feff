// Package postgres provides durable implementations of the storage interfaces.
// It is selected only when DATABASE_URL is configured; the in-memory store
// remains the default backend.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitcoach/fitcoach-be/internal/models"
	"github.com/fitcoach/fitcoach-be/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore         = (*Store)(nil)
	_ storage.ConversationStore = (*Store)(nil)
)

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for users and conversations.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database and runs migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			goals TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_active TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			active BOOLEAN NOT NULL DEFAULT TRUE
		);`,
		`CREATE TABLE IF NOT EXISTS conversation_turns (
			seq BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			conversation_id TEXT NOT NULL,
			user_message TEXT NOT NULL,
			response TEXT NOT NULL,
			ts TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			tokens_used INT NOT NULL DEFAULT 0,
			response_time_ms BIGINT,
			context JSONB
		);`,
		`CREATE INDEX IF NOT EXISTS conversation_turns_user_idx ON conversation_turns (user_id, seq);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row, assigning a fresh identifier. The unique
// index on email makes concurrent duplicate registrations a conflict for all
// but one caller.
func (s *Store) CreateUser(ctx context.Context, user models.UserRecord) (models.UserRecord, error) {
	const query = `
		INSERT INTO users (id, email, password_hash, first_name, last_name, goals)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, password_hash, first_name, last_name, goals, created_at, last_active, active;`

	row := s.pool.QueryRow(ctx, query,
		uuid.NewString(), user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Goals)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.UserRecord{}, storage.ErrAlreadyExists
		}
		return models.UserRecord{}, err
	}
	return created, nil
}

// GetByID fetches a user by identifier.
func (s *Store) GetByID(ctx context.Context, id string) (models.UserRecord, error) {
	row := s.pool.QueryRow(ctx, selectUser+`WHERE id = $1;`, id)
	return scanUser(row)
}

// GetByEmail fetches a user by exact email match.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.UserRecord, error) {
	row := s.pool.QueryRow(ctx, selectUser+`WHERE email = $1;`, email)
	return scanUser(row)
}

// UpdateProfile applies only the provided fields and refreshes last_active in
// a single statement.
func (s *Store) UpdateProfile(ctx context.Context, id string, update storage.ProfileUpdate) (models.UserRecord, error) {
	sets := []string{"last_active = NOW()"}
	args := []any{id}
	add := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	add("first_name", update.FirstName)
	add("last_name", update.LastName)
	add("goals", update.Goals)

	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE id = $1
		RETURNING id, email, password_hash, first_name, last_name, goals, created_at, last_active, active;`,
		strings.Join(sets, ", "))
	return scanUser(s.pool.QueryRow(ctx, query, args...))
}

// Touch moves last_active to now.
func (s *Store) Touch(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET last_active = NOW() WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Append inserts a turn at the end of the user's sequence. Ordering is carried
// by the seq column, so concurrent appends cannot interleave a sequence.
func (s *Store) Append(ctx context.Context, userID string, turn models.ConversationTurn) (models.ConversationTurn, error) {
	var contextJSON []byte
	if turn.Context != nil {
		data, err := json.Marshal(turn.Context)
		if err != nil {
			return models.ConversationTurn{}, fmt.Errorf("encode turn context: %w", err)
		}
		contextJSON = data
	}

	const query = `
		INSERT INTO conversation_turns (user_id, conversation_id, user_message, response, tokens_used, response_time_ms, context)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0), $7)
		RETURNING ts;`
	err := s.pool.QueryRow(ctx, query,
		userID, turn.ConversationID, turn.UserMessage, turn.Response,
		turn.TokensUsed, turn.ResponseTimeMs, contextJSON).Scan(&turn.Timestamp)
	if err != nil {
		return models.ConversationTurn{}, err
	}
	return turn, nil
}

// List returns the page [offset, offset+limit) of the user's turns in append
// order, plus the full stored count.
func (s *Store) List(ctx context.Context, userID string, limit, offset int) ([]models.ConversationTurn, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversation_turns WHERE user_id = $1;`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 || offset < 0 || offset >= total {
		return []models.ConversationTurn{}, total, nil
	}

	const query = `
		SELECT conversation_id, user_message, response, ts, tokens_used, COALESCE(response_time_ms, 0), context
		FROM conversation_turns
		WHERE user_id = $1
		ORDER BY seq
		LIMIT $2 OFFSET $3;`
	rows, err := s.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	turns := make([]models.ConversationTurn, 0, limit)
	for rows.Next() {
		var turn models.ConversationTurn
		var contextJSON []byte
		if err := rows.Scan(&turn.ConversationID, &turn.UserMessage, &turn.Response,
			&turn.Timestamp, &turn.TokensUsed, &turn.ResponseTimeMs, &contextJSON); err != nil {
			return nil, 0, err
		}
		if len(contextJSON) > 0 {
			if err := json.Unmarshal(contextJSON, &turn.Context); err != nil {
				return nil, 0, fmt.Errorf("decode turn context: %w", err)
			}
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return turns, total, nil
}

// Stats returns the turn count and days active derived from the earliest turn.
func (s *Store) Stats(ctx context.Context, userID string) (int, int, error) {
	var count int
	var earliest *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(ts) FROM conversation_turns WHERE user_id = $1;`, userID).
		Scan(&count, &earliest)
	if err != nil {
		return 0, 0, err
	}
	if count == 0 || earliest == nil {
		return 0, 0, nil
	}
	daysActive := int(time.Now().UTC().Sub(earliest.UTC()).Hours()/24) + 1
	return count, daysActive, nil
}

const selectUser = `
	SELECT id, email, password_hash, first_name, last_name, goals, created_at, last_active, active
	FROM users
	`

func scanUser(row pgx.Row) (models.UserRecord, error) {
	var user models.UserRecord
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName,
		&user.LastName, &user.Goals, &user.CreatedAt, &user.LastActive, &user.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.UserRecord{}, storage.ErrNotFound
		}
		return models.UserRecord{}, err
	}
	return user, nil
}
