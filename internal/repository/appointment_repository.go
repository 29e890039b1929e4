package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicabemestar/clinic-api/internal/model"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// overlapQuery finds any active appointment for the doctor whose half-open
// interval intersects [$2,$3). NULL status predates the status column and
// counts as Pending.
const overlapQuery = `
	SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE doctor_id = $1
		  AND (status = 'Pending' OR status IS NULL)
		  AND start_time < $3
		  AND end_time > $2
	)
`

// Create inserts a new appointment. The overlap check and the insert run
// in one serializable transaction; together with the exclusion constraint
// this guarantees at most one winner when two clients race for a slot.
// Either guard firing is reported as ErrOverlap.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var taken bool
	err = tx.QueryRow(ctx, overlapQuery,
		appointment.DoctorID, appointment.StartTime, appointment.EndTime,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if taken {
		return ErrOverlap
	}

	query := `
		INSERT INTO appointments (id, doctor_id, patient_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(
		ctx, query,
		appointment.ID,
		appointment.DoctorID,
		appointment.PatientID,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
	).Scan(&appointment.CreatedAt, &appointment.UpdatedAt)

	if err != nil {
		if isExclusionOrSerialization(err) {
			return ErrOverlap
		}
		return fmt.Errorf("create appointment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isExclusionOrSerialization(err) {
			return ErrOverlap
		}
		return fmt.Errorf("commit appointment: %w", err)
	}

	return nil
}

// GetByID returns nil when the appointment does not exist.
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, start_time, end_time,
		       COALESCE(status, ''), created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	var appointment model.Appointment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&appointment.ID,
		&appointment.DoctorID,
		&appointment.PatientID,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.Status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}

	return &appointment, nil
}

// GetActiveByDoctorID returns the doctor's Pending (or legacy NULL-status)
// appointments ordered by start time. This is the read the slot grid is
// derived from.
func (r *AppointmentRepository) GetActiveByDoctorID(ctx context.Context, doctorID string) ([]*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, start_time, end_time,
		       COALESCE(status, ''), created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1
		  AND (status = 'Pending' OR status IS NULL)
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("get appointments by doctor: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByPatientID returns the patient's appointments, newest first, with
// the doctor's name loaded for display.
func (r *AppointmentRepository) GetByPatientID(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	query := `
		SELECT a.id, a.doctor_id, a.patient_id, a.start_time, a.end_time,
		       COALESCE(a.status, ''), a.created_at, a.updated_at, d.name
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		WHERE a.patient_id = $1
		ORDER BY a.start_time DESC
	`

	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("get appointments by patient: %w", err)
	}
	defer rows.Close()

	var appointments []*model.Appointment
	for rows.Next() {
		var appointment model.Appointment
		err := rows.Scan(
			&appointment.ID,
			&appointment.DoctorID,
			&appointment.PatientID,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.Status,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
			&appointment.DoctorName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, &appointment)
	}

	return appointments, rows.Err()
}

// GetAll returns every appointment with doctor and patient names loaded,
// newest first, for the administrative overview.
func (r *AppointmentRepository) GetAll(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT a.id, a.doctor_id, a.patient_id, a.start_time, a.end_time,
		       COALESCE(a.status, ''), a.created_at, a.updated_at, d.name, u.name
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN users u ON u.id = a.patient_id
		ORDER BY a.start_time DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*model.Appointment
	for rows.Next() {
		var appointment model.Appointment
		err := rows.Scan(
			&appointment.ID,
			&appointment.DoctorID,
			&appointment.PatientID,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.Status,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
			&appointment.DoctorName,
			&appointment.PatientName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, &appointment)
	}

	return appointments, rows.Err()
}

// UpdateStatus rewrites the status unconditionally and returns the number
// of rows changed (0 when the id is unknown).
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus) (int64, error) {
	query := `
		UPDATE appointments
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return 0, fmt.Errorf("update appointment status: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpdateStatusIfPatient rewrites the status only when the appointment
// belongs to the given patient. A zero row count covers both "no such
// appointment" and "not the owner"; callers must not distinguish the two.
func (r *AppointmentRepository) UpdateStatusIfPatient(ctx context.Context, id, patientID string, status model.AppointmentStatus) (int64, error) {
	query := `
		UPDATE appointments
		SET status = $3, updated_at = now()
		WHERE id = $1 AND patient_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, patientID, status)
	if err != nil {
		return 0, fmt.Errorf("update appointment status: %w", err)
	}

	return tag.RowsAffected(), nil
}

// HasOverlap tests the half-open interval condition against committed
// state. Booking repeats the same test inside its transaction; this one
// serves the cheap pre-check and the slot grid.
func (r *AppointmentRepository) HasOverlap(ctx context.Context, doctorID string, start, end time.Time) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx, overlapQuery, doctorID, start, end).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check overlap: %w", err)
	}
	return taken, nil
}

// HasFuturePending reports whether the doctor still has upcoming active
// appointments, guarding doctor deletion.
func (r *AppointmentRepository) HasFuturePending(ctx context.Context, doctorID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			  AND (status = 'Pending' OR status IS NULL)
			  AND start_time > now()
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, doctorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check future appointments: %w", err)
	}
	return exists, nil
}

func scanAppointments(rows pgx.Rows) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	for rows.Next() {
		var appointment model.Appointment
		err := rows.Scan(
			&appointment.ID,
			&appointment.DoctorID,
			&appointment.PatientID,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.Status,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, &appointment)
	}
	return appointments, rows.Err()
}
