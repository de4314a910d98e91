package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/codetrack/pkg/models"
)

// Quality is a 0-4 self-assessment of recall during a review
type Quality int

const (
	// QualityAgain - complete blackout, wrong response
	QualityAgain Quality = 0
	// QualityHard - incorrect response, correct one remembered
	QualityHard Quality = 1
	// QualityGood - correct response after hesitation
	QualityGood Quality = 2
	// QualityEasy - perfect response
	QualityEasy Quality = 3
	// QualityPerfect - instant recall
	QualityPerfect Quality = 4
)

// SM2 implements the SM-2 spaced repetition algorithm over flashcard
// scheduling state. All methods are pure; the caller supplies the clock.
type SM2 struct {
	// Minimum and maximum bounds for the ease factor
	MinEaseFactor float64
	MaxEaseFactor float64
	// Ease factor assigned to brand-new cards
	DefaultEaseFactor float64
	// Quality ratings at or above this value count as successful recall
	PassThreshold Quality
	// Floor for the review interval in days
	MinimumInterval int
}

// NewSM2 creates an SM2 instance with the standard parameters
func NewSM2() *SM2 {
	return &SM2{
		MinEaseFactor:     1.3,
		MaxEaseFactor:     4.0,
		DefaultEaseFactor: 2.5,
		PassThreshold:     QualityEasy,
		MinimumInterval:   1,
	}
}

// ReviewResult captures the scheduling change produced by a single review
type ReviewResult struct {
	CardID             int64     `json:"card_id"`
	Quality            Quality   `json:"quality"`
	PreviousInterval   int       `json:"previous_interval"`
	NewInterval        int       `json:"new_interval"`
	PreviousEaseFactor float64   `json:"previous_ease_factor"`
	NewEaseFactor      float64   `json:"new_ease_factor"`
	Repetitions        int       `json:"repetitions"`
	ReviewCount        int       `json:"review_count"`
	NextReview         time.Time `json:"next_review"`
}

// Review computes the new scheduling state for a card given the quality of
// the response. Out-of-range quality ratings are coerced to QualityAgain;
// callers are expected to validate before calling. The card itself is not
// mutated.
func (sm *SM2) Review(card *models.Flashcard, quality Quality, now time.Time) ReviewResult {
	if quality < QualityAgain || quality > QualityPerfect {
		quality = QualityAgain
	}

	ease := card.EaseFactor
	if ease == 0 {
		ease = sm.DefaultEaseFactor
	}
	interval := card.Interval
	if interval < sm.MinimumInterval {
		interval = sm.MinimumInterval
	}
	repetitions := card.RepetitionCount

	prevInterval := interval
	if quality < sm.PassThreshold {
		// Failed recall resets the learning curve completely
		repetitions = 0
		interval = 1
	} else {
		repetitions++
		switch repetitions {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			// Uses the ease factor from before this review
			interval = int(float64(interval) * ease)
		}
	}

	newEase := sm.updateEaseFactor(ease, quality)
	nextReview := now.AddDate(0, 0, interval)

	return ReviewResult{
		CardID:             card.ID,
		Quality:            quality,
		PreviousInterval:   prevInterval,
		NewInterval:        interval,
		PreviousEaseFactor: ease,
		NewEaseFactor:      newEase,
		Repetitions:        repetitions,
		ReviewCount:        card.ReviewCount + 1,
		NextReview:         nextReview,
	}
}

// updateEaseFactor applies the SM-2 ease formula, clamps to the configured
// bounds and rounds to two decimal places.
func (sm *SM2) updateEaseFactor(ease float64, quality Quality) float64 {
	q := float64(quality)
	newEase := ease + (0.1 - (5.0-q)*(0.08+(5.0-q)*0.02))

	if newEase < sm.MinEaseFactor {
		newEase = sm.MinEaseFactor
	}
	if newEase > sm.MaxEaseFactor {
		newEase = sm.MaxEaseFactor
	}

	return math.Round(newEase*100) / 100
}

// IntervalProgression returns the interval sequence a card would follow
// under repeated successful reviews at the given ease factor.
func (sm *SM2) IntervalProgression(ease float64, maxRepetitions int) []int {
	intervals := make([]int, 0, maxRepetitions)
	current := 1
	for i := 0; i < maxRepetitions; i++ {
		intervals = append(intervals, current)
		switch i {
		case 0:
			current = 1
		case 1:
			current = 6
		default:
			current = int(float64(current) * ease)
		}
	}
	return intervals
}

// IsMastered reports whether a card is considered learned: at least five
// consecutive successful reviews and an interval of a month or more.
func (sm *SM2) IsMastered(card *models.Flashcard) bool {
	return card.RepetitionCount >= 5 && card.Interval >= 30
}
