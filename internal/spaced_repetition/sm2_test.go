package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/codetrack/pkg/models"
)

func freshCard() *models.Flashcard {
	return &models.Flashcard{
		ID:         1,
		UserID:     1,
		EaseFactor: 2.5,
		Interval:   1,
	}
}

func TestReviewSuccessfulProgression(t *testing.T) {
	sm := NewSM2()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	card := freshCard()

	// First successful review: interval 1
	res := sm.Review(card, QualityPerfect, now)
	assert.Equal(t, 1, res.NewInterval)
	assert.Equal(t, 1, res.Repetitions)
	assert.Equal(t, 1, res.ReviewCount)
	assert.Equal(t, 2.5, res.NewEaseFactor) // quality 4 leaves ease unchanged
	assert.Equal(t, now.AddDate(0, 0, 1), res.NextReview)

	// Second: interval 6
	applyResult(card, res)
	res = sm.Review(card, QualityPerfect, now)
	assert.Equal(t, 6, res.NewInterval)
	assert.Equal(t, 2, res.Repetitions)

	// Third: floor(6 * 2.5) = 15
	applyResult(card, res)
	res = sm.Review(card, QualityPerfect, now)
	assert.Equal(t, 15, res.NewInterval)
	assert.Equal(t, 3, res.Repetitions)
	assert.Equal(t, 3, res.ReviewCount)

	// Fourth: floor(15 * 2.5) = 37
	applyResult(card, res)
	res = sm.Review(card, QualityPerfect, now)
	assert.Equal(t, 37, res.NewInterval)
}

func TestReviewFailureResets(t *testing.T) {
	sm := NewSM2()
	now := time.Now()

	for _, quality := range []Quality{QualityAgain, QualityHard, QualityGood} {
		card := freshCard()
		card.RepetitionCount = 4
		card.Interval = 30
		card.ReviewCount = 10

		res := sm.Review(card, quality, now)
		assert.Equal(t, 0, res.Repetitions, "quality %d must reset repetitions", quality)
		assert.Equal(t, 1, res.NewInterval, "quality %d must reset interval", quality)
		assert.Equal(t, 11, res.ReviewCount, "review count never resets")
		assert.Equal(t, now.AddDate(0, 0, 1), res.NextReview)
	}
}

func TestReviewEaseFactorUpdate(t *testing.T) {
	sm := NewSM2()
	now := time.Now()

	tests := []struct {
		name     string
		ease     float64
		quality  Quality
		wantEase float64
	}{
		{"perfect keeps ease", 2.5, QualityPerfect, 2.5},
		{"easy decays slightly", 2.5, QualityEasy, 2.36},
		{"good decays", 2.5, QualityGood, 2.18},
		{"hard decays hard", 2.5, QualityHard, 1.96},
		{"again decays most", 2.5, QualityAgain, 1.7},
		{"clamped at minimum", 1.3, QualityAgain, 1.3},
		{"clamped near minimum", 1.5, QualityAgain, 1.3},
		{"maximum is stable", 4.0, QualityPerfect, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := freshCard()
			card.EaseFactor = tt.ease
			res := sm.Review(card, tt.quality, now)
			assert.InDelta(t, tt.wantEase, res.NewEaseFactor, 1e-9)
		})
	}
}

func TestReviewEaseFactorBounds(t *testing.T) {
	sm := NewSM2()
	now := time.Now()

	for ease := 1.3; ease <= 4.0; ease += 0.1 {
		for quality := QualityAgain; quality <= QualityPerfect; quality++ {
			card := freshCard()
			card.EaseFactor = ease
			res := sm.Review(card, quality, now)
			require.GreaterOrEqual(t, res.NewEaseFactor, 1.3,
				"ease %f quality %d", ease, quality)
			require.LessOrEqual(t, res.NewEaseFactor, 4.0,
				"ease %f quality %d", ease, quality)
		}
	}
}

func TestReviewEaseMonotonicInQuality(t *testing.T) {
	sm := NewSM2()
	now := time.Now()

	for ease := 1.3; ease <= 4.0; ease += 0.3 {
		previous := -1.0
		for quality := QualityAgain; quality <= QualityPerfect; quality++ {
			card := freshCard()
			card.EaseFactor = ease
			res := sm.Review(card, quality, now)
			require.GreaterOrEqual(t, res.NewEaseFactor, previous,
				"ease must not decrease with higher quality (ease %f, quality %d)", ease, quality)
			previous = res.NewEaseFactor
		}
	}
}

func TestReviewOutOfRangeQualityCoercedToFailure(t *testing.T) {
	sm := NewSM2()
	now := time.Now()

	for _, quality := range []Quality{-1, 5, 100} {
		card := freshCard()
		card.RepetitionCount = 3
		card.Interval = 15

		res := sm.Review(card, quality, now)
		assert.Equal(t, QualityAgain, res.Quality)
		assert.Equal(t, 0, res.Repetitions)
		assert.Equal(t, 1, res.NewInterval)
	}
}

func TestReviewDefaultsForUninitializedCard(t *testing.T) {
	sm := NewSM2()
	now := time.Now()

	card := &models.Flashcard{ID: 7} // zero ease, zero interval
	res := sm.Review(card, QualityPerfect, now)
	assert.Equal(t, 2.5, res.PreviousEaseFactor)
	assert.Equal(t, 1, res.NewInterval)
}

func TestIntervalProgression(t *testing.T) {
	sm := NewSM2()

	intervals := sm.IntervalProgression(2.5, 5)
	assert.Equal(t, []int{1, 1, 6, 15, 37}, intervals)
}

func TestIsMastered(t *testing.T) {
	sm := NewSM2()

	card := freshCard()
	assert.False(t, sm.IsMastered(card))

	card.RepetitionCount = 5
	card.Interval = 30
	assert.True(t, sm.IsMastered(card))

	card.Interval = 29
	assert.False(t, sm.IsMastered(card))
}

// applyResult copies a review result back onto a card, the way the session
// manager persists state between reviews.
func applyResult(card *models.Flashcard, res ReviewResult) {
	card.EaseFactor = res.NewEaseFactor
	card.Interval = res.NewInterval
	card.RepetitionCount = res.Repetitions
	card.ReviewCount = res.ReviewCount
	next := res.NextReview
	card.NextReview = &next
}
