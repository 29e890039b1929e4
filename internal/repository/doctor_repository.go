package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicabemestar/clinic-api/internal/model"
)

type DoctorRepository struct {
	pool *pgxpool.Pool
}

func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (id, name, crm, specialty_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query, doctor.ID, doctor.Name, doctor.CRM, doctor.SpecialtyID).
		Scan(&doctor.CreatedAt)
	if err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}

	return nil
}

// GetByID returns nil when the doctor does not exist.
func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*model.Doctor, error) {
	query := `
		SELECT d.id, d.name, d.crm, d.specialty_id, d.created_at, s.name
		FROM doctors d
		JOIN specialties s ON s.id = d.specialty_id
		WHERE d.id = $1
	`

	var doctor model.Doctor
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.CRM,
		&doctor.SpecialtyID,
		&doctor.CreatedAt,
		&doctor.SpecialtyName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get doctor by id: %w", err)
	}

	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT d.id, d.name, d.crm, d.specialty_id, d.created_at, s.name
		FROM doctors d
		JOIN specialties s ON s.id = d.specialty_id
		ORDER BY d.name
	`

	return r.queryDoctors(ctx, query)
}

func (r *DoctorRepository) GetBySpecialtyID(ctx context.Context, specialtyID string) ([]*model.Doctor, error) {
	query := `
		SELECT d.id, d.name, d.crm, d.specialty_id, d.created_at, s.name
		FROM doctors d
		JOIN specialties s ON s.id = d.specialty_id
		WHERE d.specialty_id = $1
		ORDER BY d.name
	`

	return r.queryDoctors(ctx, query, specialtyID)
}

func (r *DoctorRepository) queryDoctors(ctx context.Context, query string, args ...any) ([]*model.Doctor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get doctors: %w", err)
	}
	defer rows.Close()

	var doctors []*model.Doctor
	for rows.Next() {
		var doctor model.Doctor
		err := rows.Scan(
			&doctor.ID,
			&doctor.Name,
			&doctor.CRM,
			&doctor.SpecialtyID,
			&doctor.CreatedAt,
			&doctor.SpecialtyName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		doctors = append(doctors, &doctor)
	}

	return doctors, rows.Err()
}

// Update returns the number of rows changed (0 when the id is unknown).
func (r *DoctorRepository) Update(ctx context.Context, doctor *model.Doctor) (int64, error) {
	query := `
		UPDATE doctors
		SET name = $2, crm = $3, specialty_id = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, doctor.ID, doctor.Name, doctor.CRM, doctor.SpecialtyID)
	if err != nil {
		return 0, fmt.Errorf("update doctor: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete doctor: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountBySpecialtyID reports how many doctors reference a specialty,
// guarding specialty deletion.
func (r *DoctorRepository) CountBySpecialtyID(ctx context.Context, specialtyID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM doctors WHERE specialty_id = $1`, specialtyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count doctors by specialty: %w", err)
	}
	return count, nil
}
