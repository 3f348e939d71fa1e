package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// ParamRepository reads the string-typed system parameter store
type ParamRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewParamRepository creates a new parameter repository
func NewParamRepository(db *sql.DB, logger *zap.Logger) *ParamRepository {
	return &ParamRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the value for key, or the empty string when the key is unset.
// A missing parameter is normal; only query failures are errors.
func (r *ParamRepository) Get(key string) (string, error) {
	query := `SELECT value FROM system_parameters WHERE key = ?`

	var value string
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		r.logger.Error("Failed to read system parameter", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to read system parameter %s: %w", key, err)
	}

	return value, nil
}

// Set stores a parameter value, replacing any previous value
func (r *ParamRepository) Set(key, value string) error {
	query := `
		INSERT INTO system_parameters (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	if _, err := r.db.Exec(query, key, value); err != nil {
		r.logger.Error("Failed to write system parameter", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write system parameter %s: %w", key, err)
	}

	return nil
}
