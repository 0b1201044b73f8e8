package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rebornlabs/wastelog/internal/models"
)

const usersChannel = "user_profiles_changed"

// UserRepository serves per-user profile documents with create-on-first-read
// fallback: a user who has never saved a profile still gets one, derived
// from their email.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) InitSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS user_profiles (
            uid TEXT PRIMARY KEY,
            email TEXT NOT NULL,
            username TEXT NOT NULL UNIQUE
        )
    `)
	if err != nil {
		return fmt.Errorf("creating user_profiles table: %w", err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, userID, email string) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	err := r.pool.QueryRow(ctx,
		`SELECT uid, email, username FROM user_profiles WHERE uid = $1`, userID,
	).Scan(&profile.UID, &profile.Email, &profile.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return fallbackProfile(userID, email), nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching profile %s: %w", userID, err)
	}
	return profile, nil
}

// Save writes the profile and claims its username in one transaction, so two
// users can never end up sharing a name.
func (r *UserRepository) Save(ctx context.Context, profile *models.UserProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting profile save: %w", err)
	}
	defer tx.Rollback(ctx)

	var holder string
	err = tx.QueryRow(ctx,
		`SELECT uid FROM user_profiles WHERE username = $1`, profile.Username,
	).Scan(&holder)
	if err == nil && holder != profile.UID {
		return fmt.Errorf("username %q is already taken", profile.Username)
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("checking username %q: %w", profile.Username, err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO user_profiles (uid, email, username)
        VALUES ($1, $2, $3)
        ON CONFLICT (uid) DO UPDATE SET email = EXCLUDED.email, username = EXCLUDED.username
    `, profile.UID, profile.Email, profile.Username)
	if err != nil {
		return fmt.Errorf("saving profile %s: %w", profile.UID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing profile save: %w", err)
	}
	_, _ = r.pool.Exec(ctx, "SELECT pg_notify($1, $2)", usersChannel, profile.UID)
	return nil
}

func (r *UserRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	var uid string
	err := r.pool.QueryRow(ctx,
		`SELECT uid FROM user_profiles WHERE username = $1`, username,
	).Scan(&uid)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking username %q: %w", username, err)
	}
	return true, nil
}

// Watch re-delivers the profile whenever it changes remotely, starting with
// the current (possibly fallback) state. The channel closes on ctx cancel.
func (r *UserRepository) Watch(ctx context.Context, userID, email string) (<-chan *models.UserProfile, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+usersChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listening on %s: %w", usersChannel, err)
	}

	profile, err := r.Get(ctx, userID, email)
	if err != nil {
		conn.Release()
		return nil, fmt.Errorf("loading initial profile: %w", err)
	}
	out := make(chan *models.UserProfile, 1)
	out <- profile

	go func() {
		defer close(out)
		defer conn.Release()
		for {
			notification, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				return
			}
			if notification.Payload != userID {
				continue
			}
			profile, err := r.Get(ctx, userID, email)
			if err != nil {
				continue
			}
			select {
			case out <- profile:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// fallbackProfile derives a usable profile from the email local part.
func fallbackProfile(userID, email string) *models.UserProfile {
	username := "user"
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}
	return &models.UserProfile{UID: userID, Email: email, Username: username}
}
