package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	listByDomainStmt *sql.Stmt
	allByDomainStmt  *sql.Stmt
	saveResultStmt   *sql.Stmt
	resetAllStmt     *sql.Stmt
	insertStmt       *sql.Stmt
}

var (
	sqliteOpen              = sql.Open
	sqlitePrepareStatements = (*SQLiteStore).prepareStatements
)

// NewSQLiteStore opens or creates a SQLite store at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: empty sqlite path")
	}
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("store: create sqlite dir: %w", err)
			}
		}
	}

	db, err := sqliteOpen("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}

	if err := initSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	st := &SQLiteStore{db: db}
	if err := sqlitePrepareStatements(st); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func initSQLiteSchema(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			option_a TEXT NOT NULL,
			option_b TEXT NOT NULL,
			option_c TEXT NOT NULL,
			option_d TEXT NOT NULL,
			domain TEXT NOT NULL,
			expected TEXT NOT NULL,
			observed TEXT NOT NULL DEFAULT '',
			latency_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_domain ON questions(domain)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

const questionColumns = `id, question, option_a, option_b, option_c, option_d, domain, expected, observed, latency_ms`

func (s *SQLiteStore) prepareStatements() error {
	if s == nil || s.db == nil {
		return errors.New("store: nil sqlite store")
	}

	var err error

	s.listByDomainStmt, err = s.db.Prepare(`SELECT ` + questionColumns + ` FROM questions WHERE domain = ? LIMIT ?`)
	if err != nil {
		return fmt.Errorf("store: prepare list: %w", err)
	}

	s.allByDomainStmt, err = s.db.Prepare(`SELECT ` + questionColumns + ` FROM questions WHERE domain = ?`)
	if err != nil {
		return fmt.Errorf("store: prepare all: %w", err)
	}

	s.saveResultStmt, err = s.db.Prepare(`UPDATE questions SET observed = ?, latency_ms = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("store: prepare save result: %w", err)
	}

	s.resetAllStmt, err = s.db.Prepare(`UPDATE questions SET observed = '', latency_ms = NULL`)
	if err != nil {
		return fmt.Errorf("store: prepare reset: %w", err)
	}

	s.insertStmt, err = s.db.Prepare(`INSERT INTO questions (` + questionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare insert: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil {
		return nil
	}

	stmts := []*sql.Stmt{
		s.listByDomainStmt,
		s.allByDomainStmt,
		s.saveResultStmt,
		s.resetAllStmt,
		s.insertStmt,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			_ = stmt.Close()
		}
	}

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) ListByDomain(ctx context.Context, domain string, limit int) ([]*QuestionRecord, error) {
	if s == nil || s.listByDomainStmt == nil {
		return nil, errors.New("store: sqlite store not initialized")
	}
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return nil, errors.New("store: empty domain")
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.listByDomainStmt.QueryContext(ctx, domain, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list questions: %w", err)
	}
	defer rows.Close()

	return scanQuestionRows(rows)
}

func (s *SQLiteStore) AllByDomain(ctx context.Context, domain string) ([]*QuestionRecord, error) {
	if s == nil || s.allByDomainStmt == nil {
		return nil, errors.New("store: sqlite store not initialized")
	}
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return nil, errors.New("store: empty domain")
	}

	rows, err := s.allByDomainStmt.QueryContext(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("store: fetch questions: %w", err)
	}
	defer rows.Close()

	return scanQuestionRows(rows)
}

func (s *SQLiteStore) SaveResult(ctx context.Context, id string, observed string, latencyMs int64) error {
	if s == nil || s.saveResultStmt == nil {
		return errors.New("store: sqlite store not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("store: empty record id")
	}
	if latencyMs < 0 {
		latencyMs = 0
	}

	res, err := s.saveResultStmt.ExecContext(ctx, observed, latencyMs, id)
	if err != nil {
		return fmt.Errorf("store: save result: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("store: save result: no record with id %q", id)
	}
	return nil
}

func (s *SQLiteStore) ResetAll(ctx context.Context) error {
	if s == nil || s.resetAllStmt == nil {
		return errors.New("store: sqlite store not initialized")
	}
	if _, err := s.resetAllStmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("store: reset: %w", err)
	}
	return nil
}

func (s *SQLiteStore) InsertQuestion(ctx context.Context, rec *QuestionRecord) error {
	if s == nil || s.insertStmt == nil {
		return errors.New("store: sqlite store not initialized")
	}
	if rec == nil {
		return errors.New("store: nil record")
	}
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return errors.New("store: empty record id")
	}
	if strings.TrimSpace(rec.Domain) == "" {
		return errors.New("store: empty domain")
	}

	var latency any
	if rec.LatencyMs.Valid {
		latency = rec.LatencyMs.Int64
	}

	_, err := s.insertStmt.ExecContext(ctx,
		id,
		rec.Question,
		rec.OptionA,
		rec.OptionB,
		rec.OptionC,
		rec.OptionD,
		strings.TrimSpace(rec.Domain),
		strings.TrimSpace(rec.Expected),
		strings.TrimSpace(rec.Observed),
		latency,
	)
	if err != nil {
		return fmt.Errorf("store: insert question: %w", err)
	}
	return nil
}

func scanQuestionRows(rows *sql.Rows) ([]*QuestionRecord, error) {
	var out []*QuestionRecord
	for rows.Next() {
		rec := &QuestionRecord{}
		if err := rows.Scan(
			&rec.ID,
			&rec.Question,
			&rec.OptionA,
			&rec.OptionB,
			&rec.OptionC,
			&rec.OptionD,
			&rec.Domain,
			&rec.Expected,
			&rec.Observed,
			&rec.LatencyMs,
		); err != nil {
			return nil, fmt.Errorf("store: scan question: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate questions: %w", err)
	}
	return out, nil
}
