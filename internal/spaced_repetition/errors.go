package spaced_repetition

import (
	"errors"
	"fmt"
)

// Sentinel errors for review sessions.
// Use errors.Is to check: errors.Is(err, spaced_repetition.ErrSessionNotFound)
var (
	// ErrSessionNotFound means the session id is unknown or the session expired
	ErrSessionNotFound = errors.New("spaced_repetition: session not found")
	// ErrSessionExhausted means a review was attempted past session completion
	ErrSessionExhausted = errors.New("spaced_repetition: no more cards in session")
)

// PersistenceError reports that the card store rejected a scheduling update.
// The session cursor is not advanced for the failed step, so the same card
// can be retried.
type PersistenceError struct {
	CardID int64
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("spaced_repetition: failed to persist state for card %d: %v", e.CardID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
