package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// dbType is "sqlite" or "postgres", set by Connect
var dbType string

// Connect establishes the database connection. DB_TYPE selects the driver
// ("sqlite" by default, "postgres" with DATABASE_URL).
func Connect() error {
	dbType = os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var db *sqlx.DB
	var err error

	switch dbType {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_TYPE=postgres")
		}
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}

	case "sqlite":
		path := os.Getenv("DATABASE_PATH")
		if path == "" {
			dataDir := "data"
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			path = filepath.Join(dataDir, "codetrack.db")
		}
		db, err = sqlx.Connect("sqlite3", path)
		if err != nil {
			return fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

	default:
		return fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// Dialect returns the active database type ("sqlite" or "postgres")
func Dialect() string {
	return dbType
}

// idColumn returns the primary-key column definition for the active dialect
func idColumn() string {
	if dbType == "postgres" {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// nowExpr returns the SQL expression for the current timestamp
func nowExpr() string {
	if dbType == "postgres" {
		return "NOW()"
	}
	return "datetime('now')"
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS users (
				id %s,
				username TEXT UNIQUE NOT NULL,
				email TEXT UNIQUE NOT NULL,
				role TEXT NOT NULL DEFAULT 'student',
				first_name TEXT DEFAULT '',
				last_name TEXT DEFAULT '',
				learning_goals TEXT DEFAULT '',
				preferred_schedule TEXT DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`, idColumn()),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS platform_stats (
				id %s,
				user_id INTEGER NOT NULL,
				platform TEXT NOT NULL,
				total_problems INTEGER DEFAULT 0,
				easy_solved INTEGER DEFAULT 0,
				medium_solved INTEGER DEFAULT 0,
				hard_solved INTEGER DEFAULT 0,
				contest_rating INTEGER DEFAULT 0,
				streak INTEGER DEFAULT 0,
				last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id),
				UNIQUE(user_id, platform)
			)
		`, idColumn()),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS flashcards (
				id %s,
				user_id INTEGER NOT NULL,
				topic TEXT NOT NULL,
				question TEXT NOT NULL,
				answer TEXT NOT NULL,
				category TEXT DEFAULT '',
				difficulty TEXT DEFAULT '',
				ease_factor REAL DEFAULT 2.5,
				interval INTEGER DEFAULT 1,
				repetition_count INTEGER DEFAULT 0,
				review_count INTEGER DEFAULT 0,
				last_reviewed TIMESTAMP,
				next_review TIMESTAMP,
				is_ai_generated BOOLEAN DEFAULT FALSE,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id)
			)
		`, idColumn()),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS study_groups (
				id %s,
				name TEXT NOT NULL,
				description TEXT DEFAULT '',
				topic TEXT DEFAULT '',
				skill_level TEXT NOT NULL,
				max_members INTEGER DEFAULT 10,
				created_by INTEGER NOT NULL,
				is_active BOOLEAN DEFAULT TRUE,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (created_by) REFERENCES users(id)
			)
		`, idColumn()),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS study_group_members (
				id %s,
				group_id INTEGER NOT NULL,
				user_id INTEGER NOT NULL,
				role TEXT DEFAULT 'member',
				joined_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (group_id) REFERENCES study_groups(id),
				FOREIGN KEY (user_id) REFERENCES users(id),
				UNIQUE(group_id, user_id)
			)
		`, idColumn()),
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
