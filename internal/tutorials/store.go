package tutorials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ziadkadry99/primer/internal/db"
)

// Store manages persistence of tutorials and their chapters.
type Store struct {
	db *db.DB
}

// NewStore creates a new tutorial store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create validates and inserts a tutorial with its chapters in one
// transaction. ID, timestamps and difficulty are filled in when empty and
// text fields are trimmed.
func (s *Store) Create(ctx context.Context, t *Tutorial) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.Author = strings.TrimSpace(t.Author)
	t.Category = strings.TrimSpace(t.Category)
	if t.Difficulty == "" {
		t.Difficulty = Beginner
	}
	if b, ok := t.Body.(ChapteredBody); ok {
		t.TotalChapters = len(b.Chapters)
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid tutorial: %w", err)
	}

	var content sql.NullString
	if b, ok := t.Body.(FlatBody); ok {
		content = sql.NullString{String: b.Content, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tutorials (id, title, description, content, github_url, author, category, difficulty, read_time, total_chapters, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, content, t.GitHubURL, t.Author, t.Category, t.Difficulty,
		nullableMinutes(t.ReadTime), t.TotalChapters, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateURL
		}
		return fmt.Errorf("inserting tutorial: %w", err)
	}

	for _, ch := range t.Chapters() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO chapters (tutorial_id, position, title, content, read_time) VALUES (?, ?, ?, ?, ?)`,
			t.ID, ch.Order, ch.Title, ch.Content, nullableMinutes(ch.ReadTime),
		)
		if err != nil {
			return fmt.Errorf("inserting chapter %d: %w", ch.Order, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tutorial: %w", err)
	}
	return nil
}

// GetByID loads a tutorial with its chapters.
func (s *Store) GetByID(ctx context.Context, id string) (*Tutorial, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var t Tutorial
	var content sql.NullString
	var readTime sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, content, github_url, author, category, difficulty, read_time, total_chapters, created_at, updated_at
		 FROM tutorials WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &t.Description, &content, &t.GitHubURL, &t.Author, &t.Category, &t.Difficulty,
		&readTime, &t.TotalChapters, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting tutorial: %w", err)
	}
	t.ReadTime = int(readTime.Int64)

	chapters, err := s.chapters(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	// Chapters win over flat content when a row somehow has both.
	switch {
	case len(chapters) > 0:
		t.Body = ChapteredBody{Chapters: chapters}
	case content.Valid && content.String != "":
		t.Body = FlatBody{Content: content.String}
	}
	return &t, nil
}

func (s *Store) chapters(ctx context.Context, tutorialID string) ([]Chapter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, title, content, read_time FROM chapters WHERE tutorial_id = ? ORDER BY position`,
		tutorialID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing chapters: %w", err)
	}
	defer rows.Close()

	var chapters []Chapter
	for rows.Next() {
		var ch Chapter
		var readTime sql.NullInt64
		if err := rows.Scan(&ch.Order, &ch.Title, &ch.Content, &readTime); err != nil {
			return nil, fmt.Errorf("scanning chapter: %w", err)
		}
		ch.ReadTime = int(readTime.Int64)
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

const summaryColumns = `id, title, description, author, category, difficulty, read_time, total_chapters, created_at`

func scanSummary(row interface{ Scan(...any) error }) (Summary, error) {
	var sum Summary
	var readTime sql.NullInt64
	err := row.Scan(&sum.ID, &sum.Title, &sum.Description, &sum.Author, &sum.Category, &sum.Difficulty,
		&readTime, &sum.TotalChapters, &sum.CreatedAt)
	sum.ReadTime = int(readTime.Int64)
	return sum, err
}

// List returns all tutorials, newest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+summaryColumns+` FROM tutorials ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing tutorials: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tutorial: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// ListOrEmpty is List under a deadline. When the deadline passes the result
// is an empty list with degraded set, not an error.
func (s *Store) ListOrEmpty(ctx context.Context, timeout time.Duration) (summaries []Summary, degraded bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	summaries, err = s.List(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.WithError(err).WithField("timeout", timeout).Warn("tutorial list timed out, serving empty list")
			return []Summary{}, true, nil
		}
		return nil, false, err
	}
	return summaries, false, nil
}

// FindByURL returns the tutorial imported from githubURL, or nil.
func (s *Store) FindByURL(ctx context.Context, githubURL string) (*Summary, error) {
	sum, err := scanSummary(s.db.QueryRowContext(ctx,
		`SELECT `+summaryColumns+` FROM tutorials WHERE github_url = ?`, githubURL))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding tutorial by url: %w", err)
	}
	return &sum, nil
}

// FindByTitleAuthor returns a tutorial with exactly this title and author,
// or nil.
func (s *Store) FindByTitleAuthor(ctx context.Context, title, author string) (*Summary, error) {
	sum, err := scanSummary(s.db.QueryRowContext(ctx,
		`SELECT `+summaryColumns+` FROM tutorials WHERE title = ? AND author = ? LIMIT 1`, title, author))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding tutorial by title: %w", err)
	}
	return &sum, nil
}

// Delete removes a tutorial and its chapters, returning what was deleted.
func (s *Store) Delete(ctx context.Context, id string) (*Summary, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	sum, err := scanSummary(tx.QueryRowContext(ctx,
		`SELECT `+summaryColumns+` FROM tutorials WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting tutorial: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE tutorial_id = ?`, id); err != nil {
		return nil, fmt.Errorf("deleting chapters: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tutorials WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("deleting tutorial: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing delete: %w", err)
	}
	return &sum, nil
}

// Count returns the number of stored tutorials.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tutorials`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting tutorials: %w", err)
	}
	return n, nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func nullableMinutes(m int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(m), Valid: m > 0}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}
