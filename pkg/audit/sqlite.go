package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS enforcement (
	id              TEXT PRIMARY KEY,
	recorded_at     TIMESTAMP NOT NULL,
	correlation_id  TEXT,
	subject         TEXT,
	action_id       TEXT NOT NULL,
	api             TEXT,
	pid             TEXT,
	namespace       TEXT,
	mode            TEXT NOT NULL,
	outcome         TEXT NOT NULL,
	permits         INTEGER NOT NULL DEFAULT 0,
	denies          INTEGER NOT NULL DEFAULT 0,
	indeterminates  INTEGER NOT NULL DEFAULT 0,
	not_applicables INTEGER NOT NULL DEFAULT 0,
	unexpected      INTEGER NOT NULL DEFAULT 0,
	batch           INTEGER NOT NULL DEFAULT 0,
	duration_ms     INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_enforcement_recorded_at ON enforcement(recorded_at);
CREATE INDEX IF NOT EXISTS idx_enforcement_subject ON enforcement(subject);
CREATE INDEX IF NOT EXISTS idx_enforcement_pid ON enforcement(pid);
CREATE INDEX IF NOT EXISTS idx_enforcement_outcome ON enforcement(outcome);

CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);
`

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/audit.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend. It initializes the
// database schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig, logger *slog.Logger) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "audit.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("audit storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec("INSERT OR IGNORE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != schemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", schemaVersion, version))
	}

	return nil
}

// Store persists one enforcement record.
func (s *SQLiteStorage) Store(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO enforcement (
			id, recorded_at, correlation_id, subject,
			action_id, api, pid, namespace,
			mode, outcome,
			permits, denies, indeterminates, not_applicables, unexpected,
			batch, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.RecordedAt, record.CorrelationID, record.Subject,
		record.ActionID, record.API, record.PID, record.Namespace,
		record.Mode, record.Outcome,
		record.Permits, record.Denies, record.Indeterminates, record.NotApplicables, record.Unexpected,
		record.Batch, record.Duration.Milliseconds(),
	)
	if err != nil {
		return NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Query retrieves records matching the query filters, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	if query == nil {
		query = &Query{}
	}

	where := ""
	args := []any{}
	add := func(clause string, value any) {
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
		args = append(args, value)
	}

	if query.Subject != "" {
		add("subject = ?", query.Subject)
	}
	if query.ActionID != "" {
		add("action_id = ?", query.ActionID)
	}
	if query.PID != "" {
		add("pid = ?", query.PID)
	}
	if query.Outcome != "" {
		add("outcome = ?", query.Outcome)
	}
	if !query.Since.IsZero() {
		add("recorded_at >= ?", query.Since)
	}
	if !query.Until.IsZero() {
		add("recorded_at < ?", query.Until)
	}

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}

	sqlQuery := `
		SELECT id, recorded_at, correlation_id, subject,
		       action_id, api, pid, namespace,
		       mode, outcome,
		       permits, denies, indeterminates, not_applicables, unexpected,
		       batch, duration_ms
		FROM enforcement` + where + fmt.Sprintf(" ORDER BY recorded_at DESC LIMIT %d", limit)
	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		var r Record
		var durationMs int64
		err := rows.Scan(
			&r.ID, &r.RecordedAt, &r.CorrelationID, &r.Subject,
			&r.ActionID, &r.API, &r.PID, &r.Namespace,
			&r.Mode, &r.Outcome,
			&r.Permits, &r.Denies, &r.Indeterminates, &r.NotApplicables, &r.Unexpected,
			&r.Batch, &durationMs,
		)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "rows", err)
	}

	return records, nil
}

// Count returns the total number of stored records.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM enforcement").Scan(&n)
	if err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return n, nil
}

// DeleteBefore deletes records recorded before cutoff.
func (s *SQLiteStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM enforcement WHERE recorded_at < ?", cutoff)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete_before", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "rows_affected", err)
	}
	return deleted, nil
}

// DeleteOldest deletes the oldest records so that at most keep remain.
func (s *SQLiteStorage) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM enforcement WHERE id IN (
			SELECT id FROM enforcement
			ORDER BY recorded_at DESC
			LIMIT -1 OFFSET ?
		)`, keep)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete_oldest", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "rows_affected", err)
	}
	return deleted, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	return nil
}
