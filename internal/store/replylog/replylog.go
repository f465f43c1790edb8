// Package replylog keeps a SQLite audit trail of posted replies. It is
// observability only: quota state lives in memory and a nil store is a
// supported configuration.
package replylog

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"karmaforge/internal/model"
)

// Store wraps the SQLite reply log.
type Store struct{ sql *sql.DB }

func Open(path string) (*Store, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		return nil, err
	}
	s := &Store{sql: d}
	if err := s.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.sql.Close() }

func (s *Store) migrate() error {
	_, err := s.sql.Exec(`
	CREATE TABLE IF NOT EXISTS replies (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  ts INTEGER NOT NULL,
	  submission_id TEXT NOT NULL,
	  subreddit TEXT NOT NULL,
	  permalink TEXT,
	  reply_chars INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_replies_ts ON replies(ts);
	`)
	return err
}

// PutReply records one posted reply.
func (s *Store) PutReply(ctx context.Context, e model.ReplyEvent) error {
	_, err := s.sql.ExecContext(ctx,
		`INSERT INTO replies(ts, submission_id, subreddit, permalink, reply_chars) VALUES(?,?,?,?,?)`,
		e.Timestamp.Unix(), e.SubmissionID, e.Subreddit, e.Permalink, e.ReplyChars)
	return err
}

// CountWithin returns the number of replies posted in [start, end).
func (s *Store) CountWithin(ctx context.Context, start, end time.Time) (int, error) {
	row := s.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM replies WHERE ts>=? AND ts<?`, start.Unix(), end.Unix())
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// LoadRange returns replies posted in [start, end), oldest first.
func (s *Store) LoadRange(ctx context.Context, start, end time.Time) ([]model.ReplyEvent, error) {
	rows, err := s.sql.QueryContext(ctx,
		`SELECT ts, submission_id, subreddit, permalink, reply_chars FROM replies WHERE ts>=? AND ts<? ORDER BY ts`,
		start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ReplyEvent
	for rows.Next() {
		var ts int64
		var e model.ReplyEvent
		if err := rows.Scan(&ts, &e.SubmissionID, &e.Subreddit, &e.Permalink, &e.ReplyChars); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
