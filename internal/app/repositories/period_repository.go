package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/db"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
	"github.com/mikelitos05/asistencias/internal/pkg/dberrors"
)

// Period error types
var ErrPeriodNotFound = errors.New("period not found")

// PeriodRepository handles database operations for service periods
type PeriodRepository struct {
	db *db.PostgresDB
}

// NewPeriodRepository creates a new period repository
func NewPeriodRepository(database *db.PostgresDB) *PeriodRepository {
	return &PeriodRepository{
		db: database,
	}
}

// Create creates a new period
func (r *PeriodRepository) Create(ctx context.Context, period *models.Period) error {
	query := `
		INSERT INTO periods (name, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query, period.Name, period.StartDate, period.EndDate).Scan(&period.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating period: %w", err)
	}

	return nil
}

// GetByID retrieves a period by ID
func (r *PeriodRepository) GetByID(ctx context.Context, id int64) (*models.Period, error) {
	query := `SELECT id, name, start_date, end_date FROM periods WHERE id = $1`

	var period models.Period
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&period.ID, &period.Name, &period.StartDate, &period.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPeriodNotFound
		}
		return nil, fmt.Errorf("error retrieving period: %w", err)
	}

	return &period, nil
}

// GetAll retrieves all periods, most recent first
func (r *PeriodRepository) GetAll(ctx context.Context) ([]*models.Period, error) {
	query := `SELECT id, name, start_date, end_date FROM periods ORDER BY start_date DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []*models.Period
	for rows.Next() {
		var period models.Period
		if err := rows.Scan(&period.ID, &period.Name, &period.StartDate, &period.EndDate); err != nil {
			return nil, err
		}
		periods = append(periods, &period)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}
