package history

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"PriceProphet/internal/model"

	_ "modernc.org/sqlite"
)

// dateLayout is the canonical key format for one bar per calendar day.
const dateLayout = "2006-01-02"

// SQLiteStore persists OHLCV history to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the refresh writer does not block concurrent readers.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite history store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			date   TEXT PRIMARY KEY,
			open   REAL NOT NULL,
			high   REAL NOT NULL,
			low    REAL NOT NULL,
			close  REAL NOT NULL,
			volume REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_bars_date ON daily_bars(date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Load returns the full stored history in chronological order.
func (s *SQLiteStore) Load() ([]model.OHLCV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT date, open, high, low, close, volume FROM daily_bars ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var dateStr string
		var b model.OHLCV
		if err := rows.Scan(&dateStr, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		t, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse bar date %q: %w", dateStr, err)
		}
		b.Date = t
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// Upsert inserts or overwrites the bar keyed by its calendar date.
func (s *SQLiteStore) Upsert(bar model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertLocked(bar)
}

func (s *SQLiteStore) upsertLocked(bar model.OHLCV) error {
	_, err := s.db.Exec(`INSERT INTO daily_bars (date, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(date) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, volume=excluded.volume`,
		bar.Date.Format(dateLayout), bar.Open, bar.High, bar.Low, bar.Close, bar.Volume,
	)
	return err
}

// ReplaceAll swaps the stored history for the given bars in one transaction.
func (s *SQLiteStore) ReplaceAll(bars []model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM daily_bars`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear bars: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO daily_bars (date, open, high, low, close, volume) VALUES (?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, b := range bars {
		if _, err := stmt.Exec(b.Date.Format(dateLayout), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert bar %s: %w", b.Date.Format(dateLayout), err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite history store")
	return s.db.Close()
}
