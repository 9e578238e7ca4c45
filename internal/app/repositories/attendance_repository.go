package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/db"
)

// AttendanceRepository handles database operations for attendance events.
// Rows are append-only.
type AttendanceRepository struct {
	db *db.PostgresDB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(database *db.PostgresDB) *AttendanceRepository {
	return &AttendanceRepository{
		db: database,
	}
}

// Create inserts an attendance event. When attendance.Type is empty it is
// derived by alternation: CHECK_IN for an empty history, otherwise the
// opposite of the latest event. The owning social server row is locked for
// the duration of the transaction so concurrent registrations for the same
// server serialize and the derived types keep alternating.
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var serverID int64
		err := tx.QueryRow(ctx, `
			SELECT id FROM social_servers WHERE id = $1 FOR UPDATE
		`, attendance.SocialServerID).Scan(&serverID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSocialServerNotFound
			}
			return fmt.Errorf("error locking social server: %w", err)
		}

		if attendance.Type == "" {
			var latest models.AttendanceType
			err := tx.QueryRow(ctx, `
				SELECT type FROM attendances
				WHERE social_server_id = $1
				ORDER BY timestamp DESC, id DESC
				LIMIT 1
			`, attendance.SocialServerID).Scan(&latest)
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				attendance.Type = models.AttendanceCheckIn
			case err != nil:
				return fmt.Errorf("error retrieving latest attendance: %w", err)
			default:
				attendance.Type = latest.Opposite()
			}
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO attendances (social_server_id, park_id, timestamp, type, photo_path, latitude, longitude, address)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`,
			attendance.SocialServerID,
			attendance.ParkID,
			attendance.Timestamp,
			attendance.Type,
			attendance.PhotoPath,
			attendance.Latitude,
			attendance.Longitude,
			attendance.Address,
		).Scan(&attendance.ID)
		if err != nil {
			return fmt.Errorf("error creating attendance: %w", err)
		}

		return nil
	})
}

// GetBySocialServer retrieves a social server's attendance events newest
// first, along with the total count.
func (r *AttendanceRepository) GetBySocialServer(ctx context.Context, socialServerID int64, offset, limit int) ([]*models.Attendance, int64, error) {
	var total int64
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendances WHERE social_server_id = $1
	`, socialServerID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting attendances: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, social_server_id, park_id, timestamp, type, photo_path, latitude, longitude, address
		FROM attendances
		WHERE social_server_id = $1
		ORDER BY timestamp DESC, id DESC
		OFFSET $2 LIMIT $3
	`, socialServerID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var attendances []*models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(
			&a.ID,
			&a.SocialServerID,
			&a.ParkID,
			&a.Timestamp,
			&a.Type,
			&a.PhotoPath,
			&a.Latitude,
			&a.Longitude,
			&a.Address,
		); err != nil {
			return nil, 0, err
		}
		attendances = append(attendances, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}
