// Package stats persists processing counters so they survive restarts.
package stats

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Schema for the extraction_stats table; a single counter row.
const Schema = `
CREATE TABLE IF NOT EXISTS extraction_stats (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	total_files INTEGER NOT NULL DEFAULT 0,
	succeeded INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0
);
INSERT OR IGNORE INTO extraction_stats (id) VALUES (1);
`

// Counters is a point-in-time snapshot of the processing totals.
type Counters struct {
	TotalFiles int64 `json:"total_files"`
	Succeeded  int64 `json:"success"`
	Failed     int64 `json:"failed"`
}

// Store persists per-file outcomes to SQLite asynchronously. Increments are
// buffered and flushed in batches so the request path never blocks on disk.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	ch     chan bool
	done   chan struct{}
	once   sync.Once
}

// Open opens (creating if needed) the stats database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &Store{
		db:     db,
		logger: logger,
		ch:     make(chan bool, 1024),
		done:   make(chan struct{}),
	}
	go s.flushLoop()
	return s, nil
}

// RecordAsync queues one file outcome. Non-blocking; drops if the buffer is full.
func (s *Store) RecordAsync(success bool) {
	select {
	case s.ch <- success:
	default:
		// buffer full: drop rather than backpressure the request path
	}
}

// Snapshot reads the current counters.
func (s *Store) Snapshot(ctx context.Context) (Counters, error) {
	var c Counters
	row := s.db.QueryRowContext(ctx,
		`SELECT total_files, succeeded, failed FROM extraction_stats WHERE id = 1`)
	if err := row.Scan(&c.TotalFiles, &c.Succeeded, &c.Failed); err != nil {
		return Counters{}, err
	}
	return c, nil
}

// Close drains the buffer and stops the flush goroutine.
func (s *Store) Close() error {
	s.once.Do(func() {
		close(s.ch)
		<-s.done
	})
	return s.db.Close()
}

func (s *Store) flushLoop() {
	defer close(s.done)

	var ok, fail int64
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	flush := func() {
		if ok == 0 && fail == 0 {
			return
		}
		_, err := s.db.Exec(
			`UPDATE extraction_stats SET total_files = total_files + ?, succeeded = succeeded + ?, failed = failed + ? WHERE id = 1`,
			ok+fail, ok, fail)
		if err != nil {
			s.logger.Error("stats flush failed", "error", err)
		}
		ok, fail = 0, 0
	}

	for {
		select {
		case success, open := <-s.ch:
			if !open {
				flush()
				return
			}
			if success {
				ok++
			} else {
				fail++
			}
			if ok+fail >= 64 {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
