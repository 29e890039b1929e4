package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicabemestar/clinic-api/internal/model"
)

type SpecialtyRepository struct {
	pool *pgxpool.Pool
}

func NewSpecialtyRepository(pool *pgxpool.Pool) *SpecialtyRepository {
	return &SpecialtyRepository{pool: pool}
}

func (r *SpecialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	query := `
		INSERT INTO specialties (id, name, image_url)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query, specialty.ID, specialty.Name, specialty.ImageURL).
		Scan(&specialty.CreatedAt)
	if err != nil {
		return fmt.Errorf("create specialty: %w", err)
	}

	return nil
}

// GetByID returns nil when the specialty does not exist.
func (r *SpecialtyRepository) GetByID(ctx context.Context, id string) (*model.Specialty, error) {
	query := `
		SELECT id, name, image_url, created_at
		FROM specialties
		WHERE id = $1
	`

	var specialty model.Specialty
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&specialty.ID,
		&specialty.Name,
		&specialty.ImageURL,
		&specialty.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get specialty by id: %w", err)
	}

	return &specialty, nil
}

func (r *SpecialtyRepository) GetAll(ctx context.Context) ([]*model.Specialty, error) {
	query := `
		SELECT id, name, image_url, created_at
		FROM specialties
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get specialties: %w", err)
	}
	defer rows.Close()

	var specialties []*model.Specialty
	for rows.Next() {
		var specialty model.Specialty
		err := rows.Scan(
			&specialty.ID,
			&specialty.Name,
			&specialty.ImageURL,
			&specialty.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan specialty: %w", err)
		}
		specialties = append(specialties, &specialty)
	}

	return specialties, rows.Err()
}

// Update returns the number of rows changed (0 when the id is unknown).
func (r *SpecialtyRepository) Update(ctx context.Context, specialty *model.Specialty) (int64, error) {
	query := `
		UPDATE specialties
		SET name = $2, image_url = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, specialty.ID, specialty.Name, specialty.ImageURL)
	if err != nil {
		return 0, fmt.Errorf("update specialty: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *SpecialtyRepository) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM specialties WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete specialty: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the total number of specialties, used by the seeder.
func (r *SpecialtyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM specialties`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count specialties: %w", err)
	}
	return count, nil
}
