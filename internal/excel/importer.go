package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/codetrack/internal/database"
	"github.com/example/codetrack/pkg/models"
)

// ImportConfig defines how a flashcard deck file is read
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	UserID           int64  // Owner of the imported cards
	TopicColumn      string // Column with the topic
	QuestionColumn   string // Column with the question
	AnswerColumn     string // Column with the answer
	CategoryColumn   string // Column with the category
	DifficultyColumn string // Column with the difficulty
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default deck import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		TopicColumn:      "A",
		QuestionColumn:   "B",
		AnswerColumn:     "C",
		CategoryColumn:   "D",
		DifficultyColumn: "E",
		SheetName:        "Sheet1",
		StartRow:         2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportDeck imports flashcards from an Excel or CSV file. Cards are
// created with fresh scheduling state so they are immediately due.
func ImportDeck(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(ctx, config)
	}
	return importFromExcel(ctx, config)
}

// importFromExcel imports flashcards from an Excel file
func importFromExcel(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	cardRepo := database.NewFlashcardRepository()
	result := &ImportResult{Errors: make([]string, 0)}

	columns := map[string]int{
		config.TopicColumn:      columnIndex(config.TopicColumn),
		config.QuestionColumn:   columnIndex(config.QuestionColumn),
		config.AnswerColumn:     columnIndex(config.AnswerColumn),
		config.CategoryColumn:   columnIndex(config.CategoryColumn),
		config.DifficultyColumn: columnIndex(config.DifficultyColumn),
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		card := models.Flashcard{
			UserID:     config.UserID,
			Topic:      cell(row, columns[config.TopicColumn]),
			Question:   cell(row, columns[config.QuestionColumn]),
			Answer:     cell(row, columns[config.AnswerColumn]),
			Category:   cell(row, columns[config.CategoryColumn]),
			Difficulty: cell(row, columns[config.DifficultyColumn]),
		}
		if err := createCard(ctx, cardRepo, card, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports flashcards from a CSV file. Column order follows
// the configured column letters (A = first field).
func importFromCSV(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	cardRepo := database.NewFlashcardRepository()
	result := &ImportResult{Errors: make([]string, 0)}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		card := models.Flashcard{
			UserID:     config.UserID,
			Topic:      cell(row, columnIndex(config.TopicColumn)),
			Question:   cell(row, columnIndex(config.QuestionColumn)),
			Answer:     cell(row, columnIndex(config.AnswerColumn)),
			Category:   cell(row, columnIndex(config.CategoryColumn)),
			Difficulty: cell(row, columnIndex(config.DifficultyColumn)),
		}
		if err := createCard(ctx, cardRepo, card, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// createCard validates a parsed row and stores it
func createCard(ctx context.Context, repo *database.FlashcardRepository, card models.Flashcard, result *ImportResult) error {
	card.Topic = strings.TrimSpace(card.Topic)
	card.Question = strings.TrimSpace(card.Question)
	card.Answer = strings.TrimSpace(card.Answer)
	card.Category = strings.TrimSpace(card.Category)
	card.Difficulty = strings.TrimSpace(card.Difficulty)

	if card.Question == "" || card.Answer == "" {
		result.Skipped++
		return nil
	}
	if card.Topic == "" {
		card.Topic = "General"
	}

	if err := repo.Create(ctx, &card); err != nil {
		return err
	}
	result.Created++
	return nil
}

// columnIndex converts a column letter ("A", "B", ..., "AA") to a
// zero-based index.
func columnIndex(column string) int {
	index := 0
	for _, c := range strings.ToUpper(column) {
		if c < 'A' || c > 'Z' {
			return 0
		}
		index = index*26 + int(c-'A') + 1
	}
	return index - 1
}

// cell returns the trimmed value at the given index, or "" when the row is
// too short.
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
