package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/codetrack/internal/database"
	"github.com/example/codetrack/internal/excel"
	"github.com/example/codetrack/internal/logger"
	"github.com/example/codetrack/internal/scheduler"
	"github.com/example/codetrack/internal/spaced_repetition"
)

// logNotifier is the default reminder sink when no delivery transport is
// configured: reminders are logged and nothing else happens.
type logNotifier struct {
	log *logger.Logger
}

func (n *logNotifier) SendDueReminder(userID int64, dueCount int) error {
	n.log.Info("cards due for review", "user_id", userID, "due", dueCount)
	return nil
}

func main() {
	importFile := flag.String("import", "", "import a flashcard deck (xlsx/csv) and exit")
	importUser := flag.Int64("user", 0, "owner user id for -import")
	flag.Parse()

	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	appLog, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	if err := database.Connect(); err != nil {
		appLog.Fatal("failed to connect to database", "error", err)
	}
	defer database.Close()

	if *importFile != "" {
		runImport(appLog, *importFile, *importUser)
		return
	}

	cardRepo := database.NewFlashcardRepository()
	sessions := spaced_repetition.NewSessionStore(sessionTTL())
	reviewManager := spaced_repetition.NewManager(cardRepo, sessions, appLog)

	jobs := scheduler.New(reviewManager, cardRepo, &logNotifier{log: appLog}, appLog)
	jobs.Start()
	defer jobs.Stop()

	appLog.Info("codetrack core started",
		"db", database.Dialect(), "session_ttl", sessionTTL().String())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	appLog.Info("shutting down", "signal", sig.String())
}

// runImport loads a flashcard deck file for one user and reports the result
func runImport(appLog *logger.Logger, path string, userID int64) {
	if userID <= 0 {
		appLog.Fatal("-import requires a positive -user id")
	}

	config := excel.DefaultImportConfig()
	config.FilePath = path
	config.UserID = userID

	result, err := excel.ImportDeck(context.Background(), config)
	if err != nil {
		appLog.Fatal("deck import failed", "file", path, "error", err)
	}

	appLog.Info("deck import finished",
		"file", path, "processed", result.TotalProcessed,
		"created", result.Created, "skipped", result.Skipped, "errors", len(result.Errors))
	for _, msg := range result.Errors {
		appLog.Warn("import row error", "detail", msg)
	}
}

// sessionTTL reads the review-session idle timeout from the environment
func sessionTTL() time.Duration {
	if raw := os.Getenv("SESSION_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return spaced_repetition.DefaultSessionTTL
}
