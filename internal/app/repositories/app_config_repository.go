package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mikelitos05/asistencias/internal/db"
)

// App config error types
var ErrConfigKeyNotFound = errors.New("configuration key not found")

// AppConfigRepository handles database operations for runtime settings
type AppConfigRepository struct {
	db *db.PostgresDB
}

// NewAppConfigRepository creates a new app config repository
func NewAppConfigRepository(database *db.PostgresDB) *AppConfigRepository {
	return &AppConfigRepository{
		db: database,
	}
}

// GetValue retrieves the value stored for a key
func (r *AppConfigRepository) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.Pool.QueryRow(ctx, `SELECT value FROM app_config WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrConfigKeyNotFound
		}
		return "", fmt.Errorf("error retrieving config value: %w", err)
	}

	return value, nil
}

// SetValue stores a value for a key, overwriting any previous value
func (r *AppConfigRepository) SetValue(ctx context.Context, key, value string) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO app_config (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("error storing config value: %w", err)
	}

	return nil
}
