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

// Program error types
var (
	ErrProgramNotFound     = errors.New("program not found")
	ErrAssociationNotFound = errors.New("program is not associated with this park")
)

// ProgramRepository handles database operations for programs and their
// park associations
type ProgramRepository struct {
	db *db.PostgresDB
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(database *db.PostgresDB) *ProgramRepository {
	return &ProgramRepository{
		db: database,
	}
}

// Create creates a program together with its initial park associations
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program, parkIDs []int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `INSERT INTO programs (name) VALUES ($1) RETURNING id`, program.Name).Scan(&program.ID)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err) {
				return apperrors.ErrResourceAlreadyExists
			}
			return fmt.Errorf("error creating program: %w", err)
		}

		for _, parkID := range parkIDs {
			if err := insertAssociation(ctx, tx, program.ID, parkID); err != nil {
				return err
			}
		}

		return nil
	})
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	var program models.Program
	err := r.db.Pool.QueryRow(ctx, `SELECT id, name FROM programs WHERE id = $1`, id).Scan(&program.ID, &program.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}

// GetByName retrieves a program by its exact name
func (r *ProgramRepository) GetByName(ctx context.Context, name string) (*models.Program, error) {
	var program models.Program
	err := r.db.Pool.QueryRow(ctx, `SELECT id, name FROM programs WHERE name = $1`, name).Scan(&program.ID, &program.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}

// GetAll retrieves all programs ordered by name
func (r *ProgramRepository) GetAll(ctx context.Context) ([]*models.Program, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name FROM programs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var program models.Program
		if err := rows.Scan(&program.ID, &program.Name); err != nil {
			return nil, err
		}
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// UpdateName renames a program
func (r *ProgramRepository) UpdateName(ctx context.Context, id int64, name string) error {
	ct, err := r.db.Pool.Exec(ctx, `UPDATE programs SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error updating program: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrProgramNotFound
	}

	return nil
}

// GetAssociations retrieves the park associations of a program
func (r *ProgramRepository) GetAssociations(ctx context.Context, programID int64) ([]*models.ProgramPark, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, program_id, park_id
		FROM program_parks
		WHERE program_id = $1
		ORDER BY id
	`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var associations []*models.ProgramPark
	for rows.Next() {
		var pp models.ProgramPark
		if err := rows.Scan(&pp.ID, &pp.ProgramID, &pp.ParkID); err != nil {
			return nil, err
		}
		associations = append(associations, &pp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return associations, nil
}

// GetAssociation retrieves the association between a program and a park
func (r *ProgramRepository) GetAssociation(ctx context.Context, programID, parkID int64) (*models.ProgramPark, error) {
	var pp models.ProgramPark
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, program_id, park_id
		FROM program_parks
		WHERE program_id = $1 AND park_id = $2
	`, programID, parkID).Scan(&pp.ID, &pp.ProgramID, &pp.ParkID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssociationNotFound
		}
		return nil, fmt.Errorf("error retrieving program-park association: %w", err)
	}

	return &pp, nil
}

// AddPark associates a park with a program
func (r *ProgramRepository) AddPark(ctx context.Context, programID, parkID int64) (*models.ProgramPark, error) {
	var pp models.ProgramPark
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO program_parks (program_id, park_id)
		VALUES ($1, $2)
		RETURNING id, program_id, park_id
	`, programID, parkID).Scan(&pp.ID, &pp.ProgramID, &pp.ParkID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return nil, apperrors.ErrDuplicateAssociation
		}
		return nil, fmt.Errorf("error associating park with program: %w", err)
	}

	return &pp, nil
}

// RemoveParkWithDetach removes a program-park association together with its
// schedules, detaching every social server assigned to those schedules.
// The detached server names are returned.
func (r *ProgramRepository) RemoveParkWithDetach(ctx context.Context, programID, parkID int64) ([]string, error) {
	var affected []string

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var associationID int64
		err := tx.QueryRow(ctx, `
			SELECT id FROM program_parks WHERE program_id = $1 AND park_id = $2
		`, programID, parkID).Scan(&associationID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrAssociationNotFound
			}
			return fmt.Errorf("error retrieving program-park association: %w", err)
		}

		names, err := detachServersBySchedules(ctx, tx, `SELECT id FROM schedules WHERE program_park_id = $1`, associationID)
		if err != nil {
			return err
		}
		affected = names

		if _, err := tx.Exec(ctx, `DELETE FROM schedules WHERE program_park_id = $1`, associationID); err != nil {
			return fmt.Errorf("error deleting schedules: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM program_parks WHERE id = $1`, associationID); err != nil {
			return fmt.Errorf("error deleting program-park association: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return affected, nil
}

// DeleteWithDetach deletes a program, its associations and their schedules,
// detaching every social server assigned to those schedules. The detached
// server names are returned.
func (r *ProgramRepository) DeleteWithDetach(ctx context.Context, programID int64) ([]string, error) {
	var affected []string

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM programs WHERE id = $1)`, programID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking program: %w", err)
		}
		if !exists {
			return ErrProgramNotFound
		}

		names, err := detachServersBySchedules(ctx, tx, `
			SELECT s.id FROM schedules s
			JOIN program_parks pp ON pp.id = s.program_park_id
			WHERE pp.program_id = $1
		`, programID)
		if err != nil {
			return err
		}
		affected = names

		if _, err := tx.Exec(ctx, `
			DELETE FROM schedules
			WHERE program_park_id IN (SELECT id FROM program_parks WHERE program_id = $1)
		`, programID); err != nil {
			return fmt.Errorf("error deleting schedules: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM program_parks WHERE program_id = $1`, programID); err != nil {
			return fmt.Errorf("error deleting program-park associations: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM programs WHERE id = $1`, programID); err != nil {
			return fmt.Errorf("error deleting program: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return affected, nil
}

func insertAssociation(ctx context.Context, tx pgx.Tx, programID, parkID int64) error {
	_, err := tx.Exec(ctx, `INSERT INTO program_parks (program_id, park_id) VALUES ($1, $2)`, programID, parkID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrDuplicateAssociation
		}
		return fmt.Errorf("error associating park with program: %w", err)
	}
	return nil
}
