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
	"github.com/mikelitos05/asistencias/internal/pkg/logger"
)

// Social server error types
var ErrSocialServerNotFound = errors.New("social server not found")

const socialServerColumns = `id, email, name, park_id, schedule_id, school, total_hours_required,
	enrollment_date, start_date, end_date, status, photo_path, badge, vest,
	tutor_name, tutor_phone, cell_phone, blood_type, allergy, birth_date, major,
	period_id, server_type, general_induction_date, acceptance_letter_id, completion_letter_id`

func scanSocialServer(row pgx.Row) (*models.SocialServer, error) {
	var s models.SocialServer
	err := row.Scan(
		&s.ID,
		&s.Email,
		&s.Name,
		&s.ParkID,
		&s.ScheduleID,
		&s.School,
		&s.TotalHoursRequired,
		&s.EnrollmentDate,
		&s.StartDate,
		&s.EndDate,
		&s.Status,
		&s.PhotoPath,
		&s.Badge,
		&s.Vest,
		&s.TutorName,
		&s.TutorPhone,
		&s.CellPhone,
		&s.BloodType,
		&s.Allergy,
		&s.BirthDate,
		&s.Major,
		&s.PeriodID,
		&s.ServerType,
		&s.GeneralInductionDate,
		&s.AcceptanceLetterID,
		&s.CompletionLetterID,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SocialServerRepository handles database operations for social servers.
// Enrollment mutations that change seat occupation run the row change and
// the seat change in one transaction.
type SocialServerRepository struct {
	db *db.PostgresDB
}

// NewSocialServerRepository creates a new social server repository
func NewSocialServerRepository(database *db.PostgresDB) *SocialServerRepository {
	return &SocialServerRepository{
		db: database,
	}
}

// CreateWithSeat inserts a social server, reserving a seat in its schedule
// first when the new server occupies one. Either both happen or neither.
func (r *SocialServerRepository) CreateWithSeat(ctx context.Context, server *models.SocialServer) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if server.HoldsSeat() {
			if err := reserveSeat(ctx, tx, *server.ScheduleID); err != nil {
				return err
			}
		}

		return insertSocialServer(ctx, tx, server)
	})
}

// GetByID retrieves a social server by ID
func (r *SocialServerRepository) GetByID(ctx context.Context, id int64) (*models.SocialServer, error) {
	query := `SELECT ` + socialServerColumns + ` FROM social_servers WHERE id = $1`

	server, err := scanSocialServer(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSocialServerNotFound
		}
		return nil, fmt.Errorf("error retrieving social server: %w", err)
	}

	return server, nil
}

// GetByEmail retrieves a social server by email
func (r *SocialServerRepository) GetByEmail(ctx context.Context, email string) (*models.SocialServer, error) {
	query := `SELECT ` + socialServerColumns + ` FROM social_servers WHERE email = $1`

	server, err := scanSocialServer(r.db.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSocialServerNotFound
		}
		return nil, fmt.Errorf("error retrieving social server: %w", err)
	}

	return server, nil
}

// List retrieves social servers with optional park and status filters,
// newest enrollment first, along with the total matching count.
func (r *SocialServerRepository) List(ctx context.Context, parkID *int64, status *models.Status, offset, limit int) ([]*models.SocialServer, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if parkID != nil {
		where += fmt.Sprintf(" AND park_id = $%d", argPos)
		args = append(args, *parkID)
		argPos++
	}
	if status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *status)
		argPos++
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM social_servers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting social servers: %w", err)
	}

	query := `SELECT ` + socialServerColumns + ` FROM social_servers` + where +
		fmt.Sprintf(` ORDER BY enrollment_date DESC, id DESC OFFSET $%d LIMIT $%d`, argPos, argPos+1)
	args = append(args, offset, limit)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var servers []*models.SocialServer
	for rows.Next() {
		server, err := scanSocialServer(rows)
		if err != nil {
			return nil, 0, err
		}
		servers = append(servers, server)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return servers, total, nil
}

// GetAll retrieves every social server, oldest first. Used by the roster
// export.
func (r *SocialServerRepository) GetAll(ctx context.Context) ([]*models.SocialServer, error) {
	query := `SELECT ` + socialServerColumns + ` FROM social_servers ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var servers []*models.SocialServer
	for rows.Next() {
		server, err := scanSocialServer(rows)
		if err != nil {
			return nil, err
		}
		servers = append(servers, server)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return servers, nil
}

// UpdateWithDelta updates a social server row and applies the seat delta the
// change implies, all in one transaction. releaseFrom and reserveTo are
// schedule IDs; either may be nil when no seat moves on that side.
func (r *SocialServerRepository) UpdateWithDelta(ctx context.Context, server *models.SocialServer, releaseFrom, reserveTo *int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE social_servers
			SET email = $2, name = $3, park_id = $4, schedule_id = $5, school = $6,
				total_hours_required = $7, enrollment_date = $8, start_date = $9, end_date = $10,
				status = $11, photo_path = $12, badge = $13, vest = $14, tutor_name = $15,
				tutor_phone = $16, cell_phone = $17, blood_type = $18, allergy = $19,
				birth_date = $20, major = $21, period_id = $22, server_type = $23,
				general_induction_date = $24, acceptance_letter_id = $25, completion_letter_id = $26
			WHERE id = $1
		`

		ct, err := tx.Exec(ctx, query,
			server.ID,
			server.Email,
			server.Name,
			server.ParkID,
			server.ScheduleID,
			server.School,
			server.TotalHoursRequired,
			server.EnrollmentDate,
			server.StartDate,
			server.EndDate,
			server.Status,
			server.PhotoPath,
			server.Badge,
			server.Vest,
			server.TutorName,
			server.TutorPhone,
			server.CellPhone,
			server.BloodType,
			server.Allergy,
			server.BirthDate,
			server.Major,
			server.PeriodID,
			server.ServerType,
			server.GeneralInductionDate,
			server.AcceptanceLetterID,
			server.CompletionLetterID,
		)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err) {
				return apperrors.ErrDuplicateEmail
			}
			return fmt.Errorf("error updating social server: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return ErrSocialServerNotFound
		}

		if releaseFrom != nil {
			clamped, err := releaseSeat(ctx, tx, *releaseFrom)
			if err != nil {
				return err
			}
			if clamped {
				logger.Warn().Int64("schedule_id", *releaseFrom).Msg("Seat release clamped at full capacity")
			}
		}
		if reserveTo != nil {
			if err := reserveSeat(ctx, tx, *reserveTo); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteWithRelease deletes a social server, releasing its seat when it
// occupied one. Either both happen or neither.
func (r *SocialServerRepository) DeleteWithRelease(ctx context.Context, id int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var status models.Status
		var scheduleID *int64
		err := tx.QueryRow(ctx, `
			SELECT status, schedule_id FROM social_servers WHERE id = $1 FOR UPDATE
		`, id).Scan(&status, &scheduleID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSocialServerNotFound
			}
			return fmt.Errorf("error retrieving social server: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM social_servers WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting social server: %w", err)
		}

		if status == models.StatusActive && scheduleID != nil {
			clamped, err := releaseSeat(ctx, tx, *scheduleID)
			if err != nil {
				return err
			}
			if clamped {
				logger.Warn().Int64("schedule_id", *scheduleID).Msg("Seat release clamped at full capacity")
			}
		}

		return nil
	})
}

func insertSocialServer(ctx context.Context, tx pgx.Tx, server *models.SocialServer) error {
	query := `
		INSERT INTO social_servers (
			email, name, park_id, schedule_id, school, total_hours_required,
			enrollment_date, start_date, end_date, status, photo_path, badge, vest,
			tutor_name, tutor_phone, cell_phone, blood_type, allergy, birth_date, major,
			period_id, server_type, general_induction_date, acceptance_letter_id, completion_letter_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		server.Email,
		server.Name,
		server.ParkID,
		server.ScheduleID,
		server.School,
		server.TotalHoursRequired,
		server.EnrollmentDate,
		server.StartDate,
		server.EndDate,
		server.Status,
		server.PhotoPath,
		server.Badge,
		server.Vest,
		server.TutorName,
		server.TutorPhone,
		server.CellPhone,
		server.BloodType,
		server.Allergy,
		server.BirthDate,
		server.Major,
		server.PeriodID,
		server.ServerType,
		server.GeneralInductionDate,
		server.AcceptanceLetterID,
		server.CompletionLetterID,
	).Scan(&server.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("error creating social server: %w", err)
	}

	return nil
}
