package spaced_repetition

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/codetrack/internal/logger"
	"github.com/example/codetrack/pkg/models"
)

// DefaultMaxCards is the session size cap used when the caller passes zero
const DefaultMaxCards = 20

// CardStore is the persistence boundary for flashcard scheduling state
type CardStore interface {
	// CardsForUser returns all of a user's cards, optionally filtered by
	// category (empty string means no filter).
	CardsForUser(ctx context.Context, userID int64, category string) ([]models.Flashcard, error)
	// PersistCardState writes the scheduling fields from a review result
	// back to the card identified by result.CardID.
	PersistCardState(ctx context.Context, result ReviewResult, reviewedAt time.Time) error
}

// ReviewSession is the in-memory state of one user's review run. Cards are
// snapshotted at session start and walked in a fixed order.
type ReviewSession struct {
	ID        string
	UserID    int64
	Category  string
	Cards     []models.Flashcard
	Cursor    int
	Log       []ReviewLogEntry
	StartedAt time.Time

	// lastActivity is managed by the SessionStore under its own lock
	lastActivity time.Time
	// mu serializes reviews against the same session id
	mu sync.Mutex
}

// ReviewLogEntry records one completed review within a session
type ReviewLogEntry struct {
	CardID     int64        `json:"card_id"`
	Quality    Quality      `json:"quality"`
	ReviewedAt time.Time    `json:"reviewed_at"`
	Result     ReviewResult `json:"result"`
}

// StartResult is returned by StartSession. When no cards are due,
// NothingDue is set and no session is created.
type StartResult struct {
	SessionID   string             `json:"session_id,omitempty"`
	Cards       []models.Flashcard `json:"cards"`
	TotalCards  int                `json:"total_cards"`
	CurrentCard *models.Flashcard  `json:"current_card,omitempty"`
	Category    string             `json:"category,omitempty"`
	NothingDue  bool               `json:"nothing_due"`
}

// ProgressSnapshot is a read-only view of session progress
type ProgressSnapshot struct {
	SessionID string        `json:"session_id"`
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
	Remaining int           `json:"remaining"`
	Elapsed   time.Duration `json:"elapsed"`
	StartedAt time.Time     `json:"started_at"`
	Category  string        `json:"category,omitempty"`
}

// SessionSummary is produced when the last card of a session is reviewed
type SessionSummary struct {
	SessionID        string        `json:"session_id"`
	CardsReviewed    int           `json:"cards_reviewed"`
	AverageQuality   float64       `json:"average_quality"`
	Duration         time.Duration `json:"duration"`
	QualityBreakdown [5]int        `json:"quality_breakdown"` // counts per quality 0..4
	StartedAt        time.Time     `json:"started_at"`
	EndedAt          time.Time     `json:"ended_at"`
	Category         string        `json:"category,omitempty"`
}

// Review outcome statuses
const (
	StatusContinue  = "continue"
	StatusCompleted = "completed"
)

// ReviewOutcome is returned by ReviewCard: either the next card with
// per-step telemetry, or the completion summary.
type ReviewOutcome struct {
	Status   string            `json:"status"`
	Result   ReviewResult      `json:"result"`
	NextCard *models.Flashcard `json:"next_card,omitempty"`
	Progress *ProgressSnapshot `json:"progress,omitempty"`
	Summary  *SessionSummary   `json:"summary,omitempty"`
}

// Manager orchestrates review sessions: it selects due cards, applies the
// SM-2 scheduler per review, persists results through the card store and
// tracks per-session progress.
type Manager struct {
	// Clock is the time source; overridden in tests
	Clock func() time.Time

	sm2      *SM2
	store    CardStore
	sessions *SessionStore
	maxCards int
	log      *logger.Logger
}

// NewManager creates a session manager over the given card store and
// session store.
func NewManager(store CardStore, sessions *SessionStore, log *logger.Logger) *Manager {
	return &Manager{
		Clock:    time.Now,
		sm2:      NewSM2(),
		store:    store,
		sessions: sessions,
		maxCards: DefaultMaxCards,
		log:      log,
	}
}

// StartSession selects the user's due cards and opens a new session over
// them. maxCards <= 0 falls back to DefaultMaxCards. When nothing is due
// the result has NothingDue set; that is not an error.
func (m *Manager) StartSession(ctx context.Context, userID int64, category string, maxCards int) (*StartResult, error) {
	if maxCards <= 0 {
		maxCards = m.maxCards
	}
	now := m.Clock()

	cards, err := m.store.CardsForUser(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cards for user %d: %w", userID, err)
	}

	due := selectDueCards(cards, now, maxCards)
	if len(due) == 0 {
		return &StartResult{
			Cards:      []models.Flashcard{},
			Category:   category,
			NothingDue: true,
		}, nil
	}

	sess := &ReviewSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Category:  category,
		Cards:     due,
		StartedAt: now,
	}
	m.sessions.Put(sess)

	m.log.Info("started review session",
		"session_id", sess.ID, "user_id", userID, "cards", len(due), "category", category)

	return &StartResult{
		SessionID:   sess.ID,
		Cards:       due,
		TotalCards:  len(due),
		CurrentCard: &due[0],
		Category:    category,
	}, nil
}

// ReviewCard applies a quality rating to the current card of a session.
// The scheduling update is persisted before the session advances, so a
// persistence failure leaves the session retryable at the same card.
func (m *Manager) ReviewCard(ctx context.Context, sessionID string, quality Quality) (*ReviewOutcome, error) {
	sess, ok := m.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Cursor >= len(sess.Cards) {
		return nil, ErrSessionExhausted
	}

	now := m.Clock()
	card := &sess.Cards[sess.Cursor]
	result := m.sm2.Review(card, quality, now)

	if err := m.store.PersistCardState(ctx, result, now); err != nil {
		m.log.Error("failed to persist review",
			"session_id", sessionID, "card_id", card.ID, "error", err)
		return nil, &PersistenceError{CardID: card.ID, Err: err}
	}

	sess.Log = append(sess.Log, ReviewLogEntry{
		CardID:     card.ID,
		Quality:    result.Quality,
		ReviewedAt: now,
		Result:     result,
	})
	sess.Cursor++
	m.sessions.Touch(sessionID)

	if sess.Cursor == len(sess.Cards) {
		summary := m.summarize(sess, now)
		m.sessions.Delete(sess.ID)
		m.log.Info("completed review session",
			"session_id", sess.ID, "cards", summary.CardsReviewed, "avg_quality", summary.AverageQuality)
		return &ReviewOutcome{
			Status:  StatusCompleted,
			Result:  result,
			Summary: summary,
		}, nil
	}

	next := sess.Cards[sess.Cursor]
	return &ReviewOutcome{
		Status:   StatusContinue,
		Result:   result,
		NextCard: &next,
		Progress: m.snapshot(sess, now),
	}, nil
}

// SweepExpiredSessions drops sessions idle past the store TTL and returns
// how many were removed. Called by the background job scheduler.
func (m *Manager) SweepExpiredSessions() int {
	return m.sessions.Sweep()
}

// Progress returns a read-only snapshot of a session's progress
func (m *Manager) Progress(sessionID string) (*ProgressSnapshot, error) {
	sess, ok := m.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return m.snapshot(sess, m.Clock()), nil
}

// DueCount returns how many of the user's cards are currently due
func (m *Manager) DueCount(ctx context.Context, userID int64, category string) (int, error) {
	cards, err := m.store.CardsForUser(ctx, userID, category)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch cards for user %d: %w", userID, err)
	}

	now := m.Clock()
	count := 0
	for i := range cards {
		if cards[i].IsDue(now) {
			count++
		}
	}
	return count, nil
}

func (m *Manager) snapshot(sess *ReviewSession, now time.Time) *ProgressSnapshot {
	return &ProgressSnapshot{
		SessionID: sess.ID,
		Completed: sess.Cursor,
		Total:     len(sess.Cards),
		Remaining: len(sess.Cards) - sess.Cursor,
		Elapsed:   now.Sub(sess.StartedAt),
		StartedAt: sess.StartedAt,
		Category:  sess.Category,
	}
}

func (m *Manager) summarize(sess *ReviewSession, now time.Time) *SessionSummary {
	summary := &SessionSummary{
		SessionID:     sess.ID,
		CardsReviewed: len(sess.Log),
		Duration:      now.Sub(sess.StartedAt),
		StartedAt:     sess.StartedAt,
		EndedAt:       now,
		Category:      sess.Category,
	}

	if len(sess.Log) == 0 {
		return summary
	}

	total := 0
	for _, entry := range sess.Log {
		total += int(entry.Quality)
		if entry.Quality >= 0 && int(entry.Quality) < len(summary.QualityBreakdown) {
			summary.QualityBreakdown[entry.Quality]++
		}
	}
	avg := float64(total) / float64(len(sess.Log))
	summary.AverageQuality = math.Round(avg*100) / 100

	return summary
}

// selectDueCards filters due cards, orders them hardest-first and truncates
// to the session cap. Never-reviewed cards sort ahead of scheduled ones;
// within each group lower ease factors come first. The sort is stable so
// equal cards keep their store order.
func selectDueCards(cards []models.Flashcard, now time.Time, maxCards int) []models.Flashcard {
	var due []models.Flashcard
	for i := range cards {
		if cards[i].IsDue(now) {
			due = append(due, cards[i])
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		ni, nj := due[i].NextReview == nil, due[j].NextReview == nil
		if ni != nj {
			return ni
		}
		return due[i].EaseFactor < due[j].EaseFactor
	})

	if len(due) > maxCards {
		due = due[:maxCards]
	}
	return due
}
