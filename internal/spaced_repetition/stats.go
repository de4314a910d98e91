package spaced_repetition

import (
	"context"
	"fmt"
	"math"
)

// DeckStatistics summarizes a user's flashcard deck
type DeckStatistics struct {
	TotalCards        int            `json:"total_cards"`
	DueCards          int            `json:"due_cards"`
	AverageEaseFactor float64        `json:"average_ease_factor"`
	Categories        map[string]int `json:"categories"`
	Difficulties      map[string]int `json:"difficulties"`
	RecentReviews     int            `json:"recent_reviews_7_days"`
	RetentionRate     float64        `json:"retention_rate"` // percent of cards with ease > 2.0
	StreakDays        int            `json:"streak_days"`
	MasteredCards     int            `json:"mastered_cards"`
}

// DeckStatistics computes review statistics over all of a user's cards
func (m *Manager) DeckStatistics(ctx context.Context, userID int64) (*DeckStatistics, error) {
	cards, err := m.store.CardsForUser(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cards for user %d: %w", userID, err)
	}

	stats := &DeckStatistics{
		TotalCards:   len(cards),
		Categories:   make(map[string]int),
		Difficulties: make(map[string]int),
	}
	if len(cards) == 0 {
		return stats, nil
	}

	now := m.Clock()
	easeSum := 0.0
	easeCount := 0
	retained := 0
	var mostRecent *int // days since the most recent review

	for i := range cards {
		card := &cards[i]

		if card.IsDue(now) {
			stats.DueCards++
		}
		if card.EaseFactor > 0 {
			easeSum += card.EaseFactor
			easeCount++
		}
		if card.EaseFactor > 2.0 {
			retained++
		}
		if m.sm2.IsMastered(card) {
			stats.MasteredCards++
		}

		category := card.Category
		if category == "" {
			category = "Uncategorized"
		}
		stats.Categories[category]++

		difficulty := card.Difficulty
		if difficulty == "" {
			difficulty = "Medium"
		}
		stats.Difficulties[difficulty]++

		if card.LastReviewed != nil {
			days := int(now.Sub(*card.LastReviewed).Hours() / 24)
			if days <= 7 {
				stats.RecentReviews++
			}
			if mostRecent == nil || days < *mostRecent {
				mostRecent = &days
			}
		}
	}

	if easeCount > 0 {
		stats.AverageEaseFactor = math.Round(easeSum/float64(easeCount)*100) / 100
	} else {
		stats.AverageEaseFactor = m.sm2.DefaultEaseFactor
	}
	stats.RetentionRate = math.Round(float64(retained)/float64(len(cards))*100*100) / 100

	// Rough streak estimate: counts down with days since the last review
	if mostRecent != nil {
		if streak := 7 - *mostRecent; streak > 0 {
			stats.StreakDays = streak
		}
	}

	return stats, nil
}
