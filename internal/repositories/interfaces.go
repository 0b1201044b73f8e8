package repositories

import (
	"context"

	"github.com/rebornlabs/wastelog/internal/models"
)

// LogRepository is the document-store contract the session core consumes.
// Get returns models.ErrNotFound for a missing id. WatchSummaries delivers
// the full summary list again whenever a record changes remotely; delivery
// order relative to local writes is not guaranteed.
type LogRepository interface {
	Get(ctx context.Context, userID, id string) (*models.LogRecord, error)
	Upsert(ctx context.Context, userID string, record *models.LogRecord) (string, error)
	Delete(ctx context.Context, userID, id string) error
	ListSummaries(ctx context.Context, userID string) ([]models.LogSummary, error)
	WatchSummaries(ctx context.Context, userID string) (<-chan []models.LogSummary, error)
}

// UserRepository serves per-user profile documents. Get falls back to a
// profile synthesized from the email when no document exists yet.
type UserRepository interface {
	Get(ctx context.Context, userID, email string) (*models.UserProfile, error)
	Save(ctx context.Context, profile *models.UserProfile) error
	Watch(ctx context.Context, userID, email string) (<-chan *models.UserProfile, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
}

// BlobStore uploads a local asset and returns its public URL.
type BlobStore interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// Authenticator gates session ownership. Its mechanics live elsewhere; the
// core only needs an identity.
type Authenticator interface {
	IsSignedIn() bool
	CurrentUserID() string
	CurrentEmail() string
}

// EventPublisher receives every committed record. Implementations must not
// block commit completion indefinitely.
type EventPublisher interface {
	PublishCommitted(ctx context.Context, record *models.LogRecord) error
}
