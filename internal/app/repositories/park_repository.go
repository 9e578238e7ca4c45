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

// Park error types
var ErrParkNotFound = errors.New("park not found")

// ParkRepository handles database operations for parks
type ParkRepository struct {
	db *db.PostgresDB
}

// NewParkRepository creates a new park repository
func NewParkRepository(database *db.PostgresDB) *ParkRepository {
	return &ParkRepository{
		db: database,
	}
}

// Create creates a new park
func (r *ParkRepository) Create(ctx context.Context, park *models.Park) error {
	query := `
		INSERT INTO parks (park_name, abbreviation)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query, park.ParkName, park.Abbreviation).Scan(&park.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrDuplicatePark
		}
		return fmt.Errorf("error creating park: %w", err)
	}

	return nil
}

// GetByID retrieves a park by ID
func (r *ParkRepository) GetByID(ctx context.Context, id int64) (*models.Park, error) {
	query := `
		SELECT id, park_name, abbreviation
		FROM parks
		WHERE id = $1
	`

	var park models.Park
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&park.ID, &park.ParkName, &park.Abbreviation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParkNotFound
		}
		return nil, fmt.Errorf("error retrieving park: %w", err)
	}

	return &park, nil
}

// GetByAbbreviation retrieves a park by its abbreviation, case-insensitive
func (r *ParkRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (*models.Park, error) {
	query := `
		SELECT id, park_name, abbreviation
		FROM parks
		WHERE LOWER(abbreviation) = LOWER($1)
	`

	var park models.Park
	err := r.db.Pool.QueryRow(ctx, query, abbreviation).Scan(&park.ID, &park.ParkName, &park.Abbreviation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParkNotFound
		}
		return nil, fmt.Errorf("error retrieving park: %w", err)
	}

	return &park, nil
}

// GetAll retrieves all parks ordered by name
func (r *ParkRepository) GetAll(ctx context.Context) ([]*models.Park, error) {
	query := `
		SELECT id, park_name, abbreviation
		FROM parks
		ORDER BY park_name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parks []*models.Park
	for rows.Next() {
		var park models.Park
		if err := rows.Scan(&park.ID, &park.ParkName, &park.Abbreviation); err != nil {
			return nil, err
		}
		parks = append(parks, &park)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return parks, nil
}

// Update updates a park's name and abbreviation
func (r *ParkRepository) Update(ctx context.Context, park *models.Park) error {
	query := `
		UPDATE parks
		SET park_name = $2, abbreviation = $3
		WHERE id = $1
	`

	ct, err := r.db.Pool.Exec(ctx, query, park.ID, park.ParkName, park.Abbreviation)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrDuplicatePark
		}
		return fmt.Errorf("error updating park: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrParkNotFound
	}

	return nil
}

// Delete removes a park. A park that still has social servers assigned
// cannot be deleted.
func (r *ParkRepository) Delete(ctx context.Context, id int64) error {
	var serverCount int
	countQuery := `SELECT COUNT(*) FROM social_servers WHERE park_id = $1`
	if err := r.db.Pool.QueryRow(ctx, countQuery, id).Scan(&serverCount); err != nil {
		return fmt.Errorf("error counting social servers for park: %w", err)
	}
	if serverCount > 0 {
		return apperrors.ErrParkHasServers
	}

	ct, err := r.db.Pool.Exec(ctx, `DELETE FROM parks WHERE id = $1`, id)
	if err != nil {
		// A server enrolled between the count and the delete still blocks it.
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrParkHasServers
		}
		return fmt.Errorf("error deleting park: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrParkNotFound
	}

	return nil
}
