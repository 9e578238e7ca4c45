package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/db"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
	"github.com/mikelitos05/asistencias/internal/pkg/dberrors"
)

// Schedule error types
var ErrScheduleNotFound = errors.New("schedule not found")

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the seat
// statements below can run standalone or inside a larger transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const scheduleColumns = `id, program_park_id, days, start_time, end_time, capacity, current_capacity, career, notes`

func scanSchedule(row pgx.Row) (*models.Schedule, error) {
	var s models.Schedule
	err := row.Scan(
		&s.ID,
		&s.ProgramParkID,
		&s.Days,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.CurrentCapacity,
		&s.Career,
		&s.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ScheduleRepository handles database operations for schedules, including
// the atomic seat accounting all capacity mutations go through.
type ScheduleRepository struct {
	db *db.PostgresDB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(database *db.PostgresDB) *ScheduleRepository {
	return &ScheduleRepository{
		db: database,
	}
}

// Create creates a new schedule under a program-park association
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (program_park_id, days, start_time, end_time, capacity, current_capacity, career, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		schedule.ProgramParkID,
		schedule.Days,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Capacity,
		schedule.CurrentCapacity,
		schedule.Career,
		schedule.Notes,
	).Scan(&schedule.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating schedule: %w", err)
	}

	return nil
}

// GetByID retrieves a schedule by ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	schedule, err := scanSchedule(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error retrieving schedule: %w", err)
	}

	return schedule, nil
}

// GetByProgramPark retrieves all schedules under a program-park association
func (r *ScheduleRepository) GetByProgramPark(ctx context.Context, programParkID int64) ([]*models.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE program_park_id = $1
		ORDER BY days, start_time
	`

	rows, err := r.db.Pool.Query(ctx, query, programParkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*models.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// FindBySlot retrieves the schedule with an exact (days, start, end) match
// under an association
func (r *ScheduleRepository) FindBySlot(ctx context.Context, programParkID int64, days, startTime, endTime string) (*models.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE program_park_id = $1 AND days = $2 AND start_time = $3 AND end_time = $4
	`

	schedule, err := scanSchedule(r.db.Pool.QueryRow(ctx, query, programParkID, days, startTime, endTime))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error retrieving schedule: %w", err)
	}

	return schedule, nil
}

// GetParkID retrieves the park a schedule runs at, through its
// program-park association
func (r *ScheduleRepository) GetParkID(ctx context.Context, scheduleID int64) (int64, error) {
	var parkID int64
	err := r.db.Pool.QueryRow(ctx, `
		SELECT pp.park_id
		FROM schedules s
		JOIN program_parks pp ON pp.id = s.program_park_id
		WHERE s.id = $1
	`, scheduleID).Scan(&parkID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrScheduleNotFound
		}
		return 0, fmt.Errorf("error retrieving schedule park: %w", err)
	}

	return parkID, nil
}

// UpdateDetails updates a schedule's slot and descriptive fields. Capacity
// changes go through ResizeCapacity or UpdateWithResize instead.
func (r *ScheduleRepository) UpdateDetails(ctx context.Context, schedule *models.Schedule) error {
	return updateScheduleDetails(ctx, r.db.Pool, schedule)
}

// UpdateWithResize updates a schedule's slot fields and resizes its capacity
// in one transaction. A resize rejected for holding fewer seats than are
// assigned rolls the whole update back, so the slot fields never change on
// the error branch.
func (r *ScheduleRepository) UpdateWithResize(ctx context.Context, schedule *models.Schedule, newCapacity int) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := updateScheduleDetails(ctx, tx, schedule); err != nil {
			return err
		}
		return resizeCapacity(ctx, tx, schedule.ID, newCapacity)
	})
}

// ReserveSeat atomically takes one free seat from the schedule
func (r *ScheduleRepository) ReserveSeat(ctx context.Context, scheduleID int64) error {
	return reserveSeat(ctx, r.db.Pool, scheduleID)
}

// ReleaseSeat atomically returns one seat to the schedule. The returned
// flag reports whether the increment was clamped because the schedule was
// already at full capacity.
func (r *ScheduleRepository) ReleaseSeat(ctx context.Context, scheduleID int64) (bool, error) {
	return releaseSeat(ctx, r.db.Pool, scheduleID)
}

// ResizeCapacity changes the schedule's capacity, preserving the number of
// assigned seats. Shrinking below the assigned count fails.
func (r *ScheduleRepository) ResizeCapacity(ctx context.Context, scheduleID int64, newCapacity int) error {
	return resizeCapacity(ctx, r.db.Pool, scheduleID, newCapacity)
}

// TransferSeat moves one occupied seat between schedules in a single
// transaction. If the destination has no free seat, the release is rolled
// back.
func (r *ScheduleRepository) TransferSeat(ctx context.Context, fromID, toID int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := releaseSeat(ctx, tx, fromID); err != nil {
			return err
		}
		return reserveSeat(ctx, tx, toID)
	})
}

// DeleteWithDetach deletes a schedule after detaching every social server
// assigned to it. The names of the detached servers are returned so the
// caller can report them.
func (r *ScheduleRepository) DeleteWithDetach(ctx context.Context, scheduleID int64) ([]string, error) {
	var affected []string

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schedules WHERE id = $1)`, scheduleID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking schedule: %w", err)
		}
		if !exists {
			return ErrScheduleNotFound
		}

		names, err := detachServersBySchedules(ctx, tx, `SELECT id FROM schedules WHERE id = $1`, scheduleID)
		if err != nil {
			return err
		}
		affected = names

		if _, err := tx.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, scheduleID); err != nil {
			return fmt.Errorf("error deleting schedule: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return affected, nil
}

func reserveSeat(ctx context.Context, q querier, scheduleID int64) error {
	ct, err := q.Exec(ctx, `
		UPDATE schedules
		SET current_capacity = current_capacity - 1
		WHERE id = $1 AND current_capacity > 0
	`, scheduleID)
	if err != nil {
		return fmt.Errorf("error reserving seat: %w", err)
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schedules WHERE id = $1)`, scheduleID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking schedule: %w", err)
		}
		if !exists {
			return ErrScheduleNotFound
		}
		return apperrors.ErrCapacityExhausted
	}

	return nil
}

func releaseSeat(ctx context.Context, q querier, scheduleID int64) (bool, error) {
	ct, err := q.Exec(ctx, `
		UPDATE schedules
		SET current_capacity = current_capacity + 1
		WHERE id = $1 AND current_capacity < capacity
	`, scheduleID)
	if err != nil {
		return false, fmt.Errorf("error releasing seat: %w", err)
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schedules WHERE id = $1)`, scheduleID).Scan(&exists); err != nil {
			return false, fmt.Errorf("error checking schedule: %w", err)
		}
		if !exists {
			return false, ErrScheduleNotFound
		}
		// Already at full capacity; the increment was clamped.
		return true, nil
	}

	return false, nil
}

func resizeCapacity(ctx context.Context, q querier, scheduleID int64, newCapacity int) error {
	ct, err := q.Exec(ctx, `
		UPDATE schedules
		SET capacity = $2, current_capacity = $2 - (capacity - current_capacity)
		WHERE id = $1 AND capacity - current_capacity <= $2
	`, scheduleID, newCapacity)
	if err != nil {
		return fmt.Errorf("error resizing schedule capacity: %w", err)
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schedules WHERE id = $1)`, scheduleID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking schedule: %w", err)
		}
		if !exists {
			return ErrScheduleNotFound
		}
		return apperrors.ErrCapacityBelowAssigned
	}

	return nil
}

// detachServersBySchedules clears schedule_id for every social server whose
// schedule matches the given subquery and returns their names.
func updateScheduleDetails(ctx context.Context, q querier, schedule *models.Schedule) error {
	ct, err := q.Exec(ctx, `
		UPDATE schedules
		SET days = $2, start_time = $3, end_time = $4, career = $5, notes = $6
		WHERE id = $1
	`,
		schedule.ID,
		schedule.Days,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Career,
		schedule.Notes,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error updating schedule: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

func detachServersBySchedules(ctx context.Context, tx pgx.Tx, scheduleSubquery string, args ...any) ([]string, error) {
	query := `
		UPDATE social_servers
		SET schedule_id = NULL
		WHERE schedule_id IN (` + scheduleSubquery + `)
		RETURNING name
	`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error detaching social servers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}
