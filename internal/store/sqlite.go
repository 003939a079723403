package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/vertexdash/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma busy_timeout: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// --- Session operations ---

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func timeOrZero(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func (s *SQLiteStore) CreateSession(ctx context.Context, sess *model.Session) error {
	s.logger.Debug("sql", "op", "insert", "table", "sessions", "id", sess.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, username, token, token_exp, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Username, sess.Token, unixOrZero(sess.TokenExp),
		sess.CreatedAt.Unix(), sess.ExpiresAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	s.logger.Debug("sql", "op", "select", "table", "sessions", "id", id)

	var sess model.Session
	var tokenExp, createdAt, expiresAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, token, token_exp, created_at, expires_at
		 FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Username, &sess.Token, &tokenExp, &createdAt, &expiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess.TokenExp = timeOrZero(tokenExp)
	sess.CreatedAt = time.Unix(createdAt, 0)
	sess.ExpiresAt = time.Unix(expiresAt, 0)

	return &sess, nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "sessions", "id", id)

	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	s.logger.Debug("sql", "op", "delete_expired", "table", "sessions")

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListSessionIDs returns the IDs of all stored sessions.
func (s *SQLiteStore) ListSessionIDs(ctx context.Context) ([]string, error) {
	s.logger.Debug("sql", "op", "select_ids", "table", "sessions")

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sessions ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- Table preferences ---

func (s *SQLiteStore) GetTablePrefs(ctx context.Context, username, table string) (*model.TablePrefs, error) {
	s.logger.Debug("sql", "op", "select", "table", "table_prefs", "username", username, "name", table)

	p := model.TablePrefs{Username: username, Table: table}
	var updatedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT page_size, search, updated_at FROM table_prefs
		 WHERE username = ? AND table_name = ?`, username, table,
	).Scan(&p.PageSize, &p.Search, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

func (s *SQLiteStore) SaveTablePrefs(ctx context.Context, p *model.TablePrefs) error {
	s.logger.Debug("sql", "op", "upsert", "table", "table_prefs", "username", p.Username, "name", p.Table)

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO table_prefs (username, table_name, page_size, search, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(username, table_name) DO UPDATE SET
		   page_size = excluded.page_size,
		   search = excluded.search,
		   updated_at = excluded.updated_at`,
		p.Username, p.Table, p.PageSize, p.Search, p.UpdatedAt.Unix(),
	)
	return err
}

// --- Export archive ---

func (s *SQLiteStore) RecordExport(ctx context.Context, rec *model.ExportRecord) error {
	s.logger.Debug("sql", "op", "insert", "table", "exports", "id", rec.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (id, username, filename, location, size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Username, rec.Filename, rec.Location, rec.Size, rec.CreatedAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) ListExports(ctx context.Context, username string, limit int) ([]*model.ExportRecord, error) {
	s.logger.Debug("sql", "op", "list", "table", "exports", "username", username)

	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, filename, location, size, created_at FROM exports
		 WHERE username = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ExportRecord
	for rows.Next() {
		var rec model.ExportRecord
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.Filename, &rec.Location, &rec.Size, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, &rec)
	}
	return out, rows.Err()
}
