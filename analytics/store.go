package analytics

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for analytics.
type Store struct {
	db *sql.DB
}

// NewStore opens the analytics database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ip_hash TEXT NOT NULL,
    path TEXT NOT NULL,
    referrer TEXT NOT NULL DEFAULT '',
    bot INTEGER NOT NULL DEFAULT 0,
    timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);
CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

// GetSetting returns a settings value, or "" when unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting upserts a settings value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// RecordVisit stores one page view.
func (s *Store) RecordVisit(v Visit) error {
	bot := 0
	if v.Bot {
		bot = 1
	}
	_, err := s.db.Exec(`INSERT INTO visits (ip_hash, path, referrer, bot, timestamp) VALUES (?, ?, ?, ?, ?)`,
		v.IPHash, v.Path, v.Referrer, bot, v.Timestamp.UTC().Format(time.RFC3339))
	return err
}

// Summarize aggregates human page views over the trailing window.
func (s *Store) Summarize(days, topN int) (Summary, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	summary := Summary{}

	err := s.db.QueryRow(`SELECT COUNT(*) FROM visits WHERE bot = 0 AND timestamp >= ?`, cutoff).
		Scan(&summary.TotalViews)
	if err != nil {
		return summary, err
	}

	rows, err := s.db.Query(`SELECT path, COUNT(*) AS n FROM visits WHERE bot = 0 AND timestamp >= ? GROUP BY path ORDER BY n DESC LIMIT ?`, cutoff, topN)
	if err != nil {
		return summary, err
	}
	defer rows.Close()
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return summary, err
		}
		summary.TopPaths = append(summary.TopPaths, pc)
	}
	if err := rows.Err(); err != nil {
		return summary, err
	}

	daily, err := s.db.Query(`SELECT substr(timestamp, 1, 10) AS day, COUNT(*) AS n FROM visits WHERE bot = 0 AND timestamp >= ? GROUP BY day ORDER BY day`, cutoff)
	if err != nil {
		return summary, err
	}
	defer daily.Close()
	for daily.Next() {
		var dc DayCount
		if err := daily.Scan(&dc.Day, &dc.Count); err != nil {
			return summary, err
		}
		summary.Daily = append(summary.Daily, dc)
	}
	return summary, daily.Err()
}

// DeleteOlderThan removes visits older than the retention window.
func (s *Store) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler deletes visits past retentionDays every interval.
// The returned func stops the scheduler.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_, _ = s.DeleteOlderThan(retentionDays)
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}
