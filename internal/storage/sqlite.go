// Package storage provides the SQLite-backed classification cache, so
// repeated runs short-circuit known merchants across processes. The in-memory
// store in the classify package remains the default for one-shot runs.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finsight/receipt-pipeline/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the classify.Store interface on a local database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the cache database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath is required")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Migrate creates the cache schema if it does not exist yet.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS classification_cache (
			merchant_key      TEXT PRIMARY KEY,
			category          TEXT NOT NULL,
			confidence        REAL NOT NULL,
			method            TEXT NOT NULL,
			rule_prediction   TEXT NOT NULL DEFAULT '',
			rule_confidence   REAL NOT NULL DEFAULT 0,
			remote_prediction TEXT NOT NULL DEFAULT '',
			remote_confidence REAL NOT NULL DEFAULT 0,
			reasoning         TEXT NOT NULL DEFAULT '',
			candidate_scores  TEXT NOT NULL DEFAULT '{}',
			updated_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("failed to create classification_cache table: %w", err)
	}
	return nil
}

// Get retrieves a cached classification by merchant key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (model.ClassificationResult, bool, error) {
	var result model.ClassificationResult
	var scoresJSON string

	err := s.db.QueryRowContext(ctx, `
		SELECT category, confidence, method, rule_prediction, rule_confidence,
		       remote_prediction, remote_confidence, reasoning, candidate_scores
		FROM classification_cache WHERE merchant_key = ?`, key).Scan(
		&result.Category,
		&result.Confidence,
		&result.Method,
		&result.RulePrediction,
		&result.RuleConfidence,
		&result.RemotePrediction,
		&result.RemoteConfidence,
		&result.Reasoning,
		&scoresJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ClassificationResult{}, false, nil
	}
	if err != nil {
		return model.ClassificationResult{}, false, fmt.Errorf("failed to read classification cache: %w", err)
	}

	if err := json.Unmarshal([]byte(scoresJSON), &result.CandidateScores); err != nil {
		return model.ClassificationResult{}, false, fmt.Errorf("corrupt candidate scores for %q: %w", key, err)
	}
	return result, true, nil
}

// Put stores a classification under the merchant key, replacing any prior
// entry. Last-writer-wins is fine; entries are idempotent for a given key.
func (s *SQLiteStore) Put(ctx context.Context, key string, result model.ClassificationResult) error {
	scoresJSON, err := json.Marshal(result.CandidateScores)
	if err != nil {
		return fmt.Errorf("failed to encode candidate scores: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO classification_cache (
			merchant_key, category, confidence, method, rule_prediction,
			rule_confidence, remote_prediction, remote_confidence, reasoning,
			candidate_scores, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(merchant_key) DO UPDATE SET
			category = excluded.category,
			confidence = excluded.confidence,
			method = excluded.method,
			rule_prediction = excluded.rule_prediction,
			rule_confidence = excluded.rule_confidence,
			remote_prediction = excluded.remote_prediction,
			remote_confidence = excluded.remote_confidence,
			reasoning = excluded.reasoning,
			candidate_scores = excluded.candidate_scores,
			updated_at = CURRENT_TIMESTAMP`,
		key,
		result.Category,
		result.Confidence,
		string(result.Method),
		result.RulePrediction,
		result.RuleConfidence,
		result.RemotePrediction,
		result.RemoteConfidence,
		result.Reasoning,
		string(scoresJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to write classification cache: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
