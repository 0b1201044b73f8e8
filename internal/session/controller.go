package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rebornlabs/wastelog/internal/models"
	"github.com/rebornlabs/wastelog/internal/repositories"
)

// State is the lifecycle of one editing session.
type State string

const (
	StateNew        State = "new"
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateCommitting State = "committing"
	StateCommitted  State = "committed"
	StateFailed     State = "failed"
)

// Controller orchestrates one create-or-edit session: load, edit, and the
// upload-then-write commit. One controller per session; it is single-writer
// and not safe for concurrent use, matching the one-form-one-session model.
type Controller struct {
	catalog models.Catalog
	logs    repositories.LogRepository
	blobs   repositories.BlobStore
	events  repositories.EventPublisher // optional
	logger  *slog.Logger

	userID  string
	state   State
	store   *SelectionStore
	scalars ScalarFields

	existingID       string
	existingImageURL string
	stagedAssetPath  string // local photo not yet uploaded

	committedID string
	lastErr     error
	closed      bool
}

// NewController wires a controller for one user session. events may be nil.
func NewController(catalog models.Catalog, logs repositories.LogRepository, blobs repositories.BlobStore, events repositories.EventPublisher, logger *slog.Logger, userID string) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		catalog: catalog,
		logs:    logs,
		blobs:   blobs,
		events:  events,
		logger:  logger,
		userID:  userID,
		state:   StateNew,
	}
}

func (c *Controller) State() State        { return c.state }
func (c *Controller) Err() error          { return c.lastErr }
func (c *Controller) CommittedID() string { return c.committedID }

// Store exposes the session's selection store for editing and rendering.
func (c *Controller) Store() *SelectionStore { return c.store }

func (c *Controller) Scalars() ScalarFields { return c.scalars }

// StartNew begins a fresh session with an empty store and sensible scalar
// defaults, mirroring a blank form.
func (c *Controller) StartNew() {
	c.store = NewSelectionStore(c.catalog)
	c.scalars = ScalarFields{
		Date:     time.Now().UnixMilli(),
		Category: models.CategoryAvoidable,
		Mode:     models.UnitPortion,
	}
	c.existingID = ""
	c.existingImageURL = ""
	c.state = StateReady
}

// StartEdit loads an existing record and reconciles it into editable state.
// A missing record or transport failure parks the session in Failed with the
// cause kept for display.
func (c *Controller) StartEdit(ctx context.Context, id string) error {
	c.state = StateLoading
	record, err := c.logs.Get(ctx, c.userID, id)
	if err != nil {
		c.fail(fmt.Errorf("loading log %s: %w", id, err))
		return c.lastErr
	}
	c.store, c.scalars = ToSelectionStore(record, c.catalog)
	c.existingID = record.ID
	c.existingImageURL = record.ImageURL
	c.stagedAssetPath = ""
	c.state = StateReady
	return nil
}

// SetQuantity forwards to the store while the session is editable.
func (c *Controller) SetQuantity(category models.Category, itemID string, qty float64) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	return c.store.SetQuantity(category, itemID, qty)
}

// SetScalars replaces the session's scalar fields.
func (c *Controller) SetScalars(scalars ScalarFields) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	c.scalars = scalars
	return nil
}

// StageAsset registers a local photo to upload on the next commit. An empty
// path clears the staged photo; the previously persisted one is then kept.
func (c *Controller) StageAsset(localPath string) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	c.stagedAssetPath = localPath
	return nil
}

// TotalWeight is the live derived total for the current selections.
func (c *Controller) TotalWeight() float64 {
	if c.store == nil {
		return 0
	}
	return TotalWeight(c.store, c.scalars.Mode)
}

// Commit persists the session as one unit: upload the staged photo if any,
// then upsert the record. A failed upload writes nothing. A failed write
// keeps the uploaded asset URL so a retry does not re-upload. Re-entrant
// calls while a commit is in flight are rejected.
func (c *Controller) Commit(ctx context.Context) (string, error) {
	if c.state == StateCommitting {
		return "", errors.New("commit already in progress")
	}
	if err := c.requireEditable(); err != nil {
		return "", err
	}
	if c.store == nil {
		// A session that failed during load never built a store; there is
		// nothing to commit, only StartNew or StartEdit can recover it.
		return "", fmt.Errorf("session has no selections loaded, cannot commit")
	}
	if len(CategoriesUsed(c.store)) == 0 {
		return "", models.ErrEmptySession
	}
	c.state = StateCommitting

	var uploadedURL string
	if c.stagedAssetPath != "" {
		if c.blobs == nil {
			c.fail(&models.CommitError{Phase: models.PhaseAssetUpload, Err: errors.New("no blob store configured")})
			return "", c.lastErr
		}
		url, err := c.blobs.Upload(ctx, c.stagedAssetPath)
		if c.closed {
			// The session was abandoned while the upload was in flight.
			return "", errors.New("session closed")
		}
		if err != nil {
			c.fail(&models.CommitError{Phase: models.PhaseAssetUpload, Err: err})
			return "", c.lastErr
		}
		uploadedURL = url
		// The blob exists now regardless of what the write does; remember it
		// so a retry reuses it instead of uploading again.
		c.existingImageURL = url
		c.stagedAssetPath = ""
	}

	record := ToLogRecord(c.store, c.scalars.Mode, c.scalars, c.existingID, c.existingImageURL, uploadedURL)
	id, err := c.logs.Upsert(ctx, c.userID, record)
	if c.closed {
		return "", errors.New("session closed")
	}
	if err != nil {
		c.fail(&models.CommitError{Phase: models.PhaseRecordWrite, Err: err})
		return "", c.lastErr
	}

	if c.events != nil {
		if err := c.events.PublishCommitted(ctx, record); err != nil {
			// The record is durable; a feed hiccup must not fail the commit.
			c.logger.Warn("publish of committed log failed", "id", id, "error", err)
		}
	}

	c.existingID = id
	c.committedID = id
	c.state = StateCommitted
	c.logger.Info("log committed", "id", id, "total_weight", record.TotalWeight, "items", len(record.Items))
	return id, nil
}

// Retry returns a Failed session to Ready with its selections intact.
func (c *Controller) Retry() error {
	if c.state != StateFailed {
		return fmt.Errorf("retry only applies to a failed session, state is %s", c.state)
	}
	if c.store == nil {
		return fmt.Errorf("session has no selections loaded, start over instead of retrying")
	}
	c.state = StateReady
	c.lastErr = nil
	return nil
}

// Close abandons the session. Results of any still-running collaborator call
// are dropped when they arrive.
func (c *Controller) Close() {
	c.closed = true
	c.store = nil
}

func (c *Controller) fail(err error) {
	c.lastErr = err
	c.state = StateFailed
	c.logger.Error("session failed", "error", err)
}

func (c *Controller) requireReady() error {
	if c.state != StateReady {
		return fmt.Errorf("session is %s, not editable", c.state)
	}
	return nil
}

// requireEditable admits Ready and Failed: a failed commit may be retried
// directly without an explicit Retry.
func (c *Controller) requireEditable() error {
	if c.state != StateReady && c.state != StateFailed {
		return fmt.Errorf("session is %s, cannot commit", c.state)
	}
	return nil
}
