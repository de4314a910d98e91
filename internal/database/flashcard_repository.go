package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/codetrack/internal/spaced_repetition"
	"github.com/example/codetrack/pkg/models"
)

// FlashcardRepository handles database operations for flashcards and their
// scheduling state. It implements spaced_repetition.CardStore.
type FlashcardRepository struct{}

// NewFlashcardRepository creates a new repository instance
func NewFlashcardRepository() *FlashcardRepository {
	return &FlashcardRepository{}
}

// Create inserts a new flashcard with default scheduling state
func (r *FlashcardRepository) Create(ctx context.Context, card *models.Flashcard) error {
	if card.EaseFactor == 0 {
		card.EaseFactor = 2.5
	}
	if card.Interval < 1 {
		card.Interval = 1
	}

	if Dialect() == "postgres" {
		query := `
			INSERT INTO flashcards (
				user_id, topic, question, answer, category, difficulty,
				ease_factor, interval, repetition_count, review_count, is_ai_generated
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, created_at, updated_at
		`
		return DB.QueryRowContext(ctx, query,
			card.UserID, card.Topic, card.Question, card.Answer, card.Category,
			card.Difficulty, card.EaseFactor, card.Interval, card.RepetitionCount,
			card.ReviewCount, card.IsAIGenerated,
		).Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
	}

	result, err := DB.ExecContext(ctx, `
		INSERT INTO flashcards (
			user_id, topic, question, answer, category, difficulty,
			ease_factor, interval, repetition_count, review_count, is_ai_generated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		card.UserID, card.Topic, card.Question, card.Answer, card.Category,
		card.Difficulty, card.EaseFactor, card.Interval, card.RepetitionCount,
		card.ReviewCount, card.IsAIGenerated,
	)
	if err != nil {
		return fmt.Errorf("failed to create flashcard: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	card.ID = id

	return DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM flashcards WHERE id = $1", card.ID,
	).Scan(&card.CreatedAt, &card.UpdatedAt)
}

// GetByID returns a single flashcard
func (r *FlashcardRepository) GetByID(ctx context.Context, id int64) (*models.Flashcard, error) {
	var card models.Flashcard
	err := DB.GetContext(ctx, &card, "SELECT * FROM flashcards WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcard %d: %w", id, err)
	}
	return &card, nil
}

// CardsForUser returns all of a user's flashcards, optionally filtered by
// category. Part of the spaced_repetition.CardStore contract.
func (r *FlashcardRepository) CardsForUser(ctx context.Context, userID int64, category string) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	var err error

	if category != "" {
		err = DB.SelectContext(ctx, &cards, `
			SELECT * FROM flashcards
			WHERE user_id = $1 AND category = $2
			ORDER BY id ASC
		`, userID, category)
	} else {
		err = DB.SelectContext(ctx, &cards, `
			SELECT * FROM flashcards
			WHERE user_id = $1
			ORDER BY id ASC
		`, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcards for user %d: %w", userID, err)
	}
	return cards, nil
}

// PersistCardState writes the scheduling fields of a review result back to
// the card. Part of the spaced_repetition.CardStore contract.
func (r *FlashcardRepository) PersistCardState(ctx context.Context, result spaced_repetition.ReviewResult, reviewedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE flashcards SET
			ease_factor = $1,
			interval = $2,
			repetition_count = $3,
			review_count = $4,
			last_reviewed = $5,
			next_review = $6,
			updated_at = %s
		WHERE id = $7
	`, nowExpr())

	res, err := DB.ExecContext(ctx, query,
		result.NewEaseFactor,
		result.NewInterval,
		result.Repetitions,
		result.ReviewCount,
		reviewedAt,
		result.NextReview,
		result.CardID,
	)
	if err != nil {
		return fmt.Errorf("failed to update flashcard %d: %w", result.CardID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("flashcard %d not found", result.CardID)
	}
	return nil
}

// Delete removes a flashcard
func (r *FlashcardRepository) Delete(ctx context.Context, id int64) error {
	_, err := DB.ExecContext(ctx, "DELETE FROM flashcards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete flashcard %d: %w", id, err)
	}
	return nil
}

// UsersWithDueCards returns ids of users who have at least one due card.
// Used by the reminder job.
func (r *FlashcardRepository) UsersWithDueCards(ctx context.Context) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT user_id FROM flashcards
		WHERE next_review IS NULL OR next_review <= %s
	`, nowExpr())

	var userIDs []int64
	if err := DB.SelectContext(ctx, &userIDs, query); err != nil {
		return nil, fmt.Errorf("failed to get users with due cards: %w", err)
	}
	return userIDs, nil
}

// DueCountForUser returns how many cards a user has due right now
func (r *FlashcardRepository) DueCountForUser(ctx context.Context, userID int64) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM flashcards
		WHERE user_id = $1 AND (next_review IS NULL OR next_review <= %s)
	`, nowExpr())

	var count int
	if err := DB.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count due cards for user %d: %w", userID, err)
	}
	return count, nil
}
