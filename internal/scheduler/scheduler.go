package scheduler

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/codetrack/internal/database"
	"github.com/example/codetrack/internal/logger"
	"github.com/example/codetrack/internal/spaced_repetition"
)

// Default hour window for due-card reminders
const (
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 22
)

// Notifier delivers due-card reminders. Delivery itself lives outside this
// core; callers plug in their own transport.
type Notifier interface {
	SendDueReminder(userID int64, dueCount int) error
}

// Scheduler manages the background jobs of the spaced repetition core:
// sweeping expired review sessions and sending due-card reminders.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reviews   *spaced_repetition.Manager
	cards     *database.FlashcardRepository
	notifier  Notifier
	log       *logger.Logger
}

// New creates a scheduler instance
func New(reviews *spaced_repetition.Manager, cards *database.FlashcardRepository, notifier Notifier, log *logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		reviews:   reviews,
		cards:     cards,
		notifier:  notifier,
		log:       log,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(15).Minutes().Do(s.sweepSessions)
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// sweepSessions drops review sessions that have been idle past their TTL
func (s *Scheduler) sweepSessions() {
	if removed := s.reviews.SweepExpiredSessions(); removed > 0 {
		s.log.Info("swept expired review sessions", "removed", removed)
	}
}

// checkAndSendReminders notifies users who have cards due, within the
// configured hour window.
func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().Hour()

	startHour := hourFromEnv("NOTIFICATION_START_HOUR", DefaultReminderStartHour)
	endHour := hourFromEnv("NOTIFICATION_END_HOUR", DefaultReminderEndHour)

	if currentHour < startHour || currentHour > endHour {
		s.log.Debug("outside reminder hours, skipping",
			"hour", currentHour, "start", startHour, "end", endHour)
		return
	}

	ctx := context.Background()
	userIDs, err := s.cards.UsersWithDueCards(ctx)
	if err != nil {
		s.log.Error("failed to get users with due cards", "error", err)
		return
	}

	for _, userID := range userIDs {
		count, err := s.cards.DueCountForUser(ctx, userID)
		if err != nil {
			s.log.Error("failed to count due cards", "user_id", userID, "error", err)
			continue
		}
		if count == 0 {
			continue
		}
		if err := s.notifier.SendDueReminder(userID, count); err != nil {
			s.log.Error("failed to send reminder", "user_id", userID, "error", err)
		}
	}
}

// RunManualCheck forces a reminder check for a specific user
func (s *Scheduler) RunManualCheck(ctx context.Context, userID int64) error {
	count, err := s.cards.DueCountForUser(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return s.notifier.SendDueReminder(userID, count)
	}
	return nil
}

// hourFromEnv reads an hour value (0-23) from the environment
func hourFromEnv(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
