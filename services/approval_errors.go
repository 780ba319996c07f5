package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
)

// Outcome taxonomy for approval transitions. Controllers translate these into
// HTTP status codes; nothing in this package writes a response.
var (
	// ErrInvalidVerdict means the caller's verdict string does not belong to
	// either decision family. No store access has happened.
	ErrInvalidVerdict = errors.New("verdict is not a recognized approval or rejection")

	// ErrAmbiguousVerdict means the verdict belongs to a decision family but
	// the module's vocabulary has no token for that family. Guessing a token
	// here would silently invent a status, so the attempt is refused.
	ErrAmbiguousVerdict = errors.New("verdict family has no matching status in the module vocabulary")

	// ErrVocabularyMisconfigured means the module's vocabulary carries no
	// approval-family token at all, so no record in it can ever be locked.
	// This is a configuration fault, not a caller mistake.
	ErrVocabularyMisconfigured = errors.New("module vocabulary has no approval status")

	// ErrUnknownModule means no record adapter is registered for the module.
	ErrUnknownModule = errors.New("unknown approval module")

	// ErrRecordNotFound means the record id does not exist (or is deleted).
	ErrRecordNotFound = errors.New("record not found")

	// ErrAlreadyLocked means the record already carries the approved status;
	// approved records are immutable through the gate.
	ErrAlreadyLocked = errors.New("record is already approved and locked")

	// ErrStoreUnavailable wraps connectivity and timeout failures. The failed
	// attempt had no effect and is safe to retry.
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// classifyStoreError folds transient driver failures into ErrStoreUnavailable
// and passes everything else through unchanged.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
