package models

import (
	"errors"
	"fmt"
)

// Every error in this taxonomy is recoverable: a failed session keeps its
// selections so the user can retry without re-entering data.
var (
	// ErrInvalidQuantity rejects negative quantities at the selection store
	// boundary; they never reach persistence.
	ErrInvalidQuantity = errors.New("quantity must not be negative")

	// ErrEmptySession rejects a commit with no positive-quantity selection
	// before any I/O happens.
	ErrEmptySession = errors.New("nothing selected, refusing to save an empty log")

	// ErrNotFound is returned by the document store when a record id does
	// not exist.
	ErrNotFound = errors.New("log record not found")
)

// CommitPhase names the step of the two-phase commit that failed.
type CommitPhase string

const (
	PhaseAssetUpload CommitPhase = "asset_upload"
	PhaseRecordWrite CommitPhase = "record_write"
)

// CommitError wraps a collaborator failure during commit with the phase it
// happened in. A record_write failure means the asset, if one was uploaded,
// is retained for the retry.
type CommitError struct {
	Phase CommitPhase
	Err   error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed during %s: %v", e.Phase, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
