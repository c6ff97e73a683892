// Package analytics counts public page views in a small SQLite
// database kept separate from the JSON content stores.
package analytics

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dayLayout = "2006-01-02"

// Store wraps the page-view counter database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and ensures the
// schema exists.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the public page record views while a summary query runs;
	// busy_timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS page_views (
    day   TEXT NOT NULL,
    lang  TEXT NOT NULL,
    count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (day, lang)
);
`)
	return err
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record increments today's counter for the given interface language.
func (s *Store) Record(lang string) error {
	day := time.Now().UTC().Format(dayLayout)
	_, err := s.db.Exec(
		`INSERT INTO page_views (day, lang, count) VALUES (?, ?, 1)
		 ON CONFLICT(day, lang) DO UPDATE SET count = count + 1`,
		day, lang)
	return err
}

// DayViews is one day's total across all languages.
type DayViews struct {
	Day   string
	Views int
}

// Summary returns per-day totals for the last n days, newest first.
func (s *Store) Summary(days int) ([]DayViews, error) {
	since := time.Now().UTC().AddDate(0, 0, -days).Format(dayLayout)
	rows, err := s.db.Query(
		`SELECT day, SUM(count) FROM page_views WHERE day >= ? GROUP BY day ORDER BY day DESC`,
		since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayViews
	for rows.Next() {
		var d DayViews
		if err := rows.Scan(&d.Day, &d.Views); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// PurgeBefore deletes counters for days before the given day.
func (s *Store) PurgeBefore(day string) error {
	_, err := s.db.Exec(`DELETE FROM page_views WHERE day < ?`, day)
	return err
}

// StartCleanupScheduler periodically purges counters older than
// retainDays. The returned func stops the scheduler.
func (s *Store) StartCleanupScheduler(retainDays int, every time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().UTC().AddDate(0, 0, -retainDays).Format(dayLayout)
				if err := s.PurgeBefore(cutoff); err != nil {
					log.Printf("analytics: cleanup: %v", err)
				}
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}
