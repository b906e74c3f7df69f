package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/globalhospital/portal-api/internal/model"
	"github.com/globalhospital/portal-api/internal/repository"
)

const doctorColumns = `
	d.id, d.user_id, d.specialty_id, d.qualifications,
	d.experience_years, d.rating, d.availability,
	d.consultation_fee, d.bio, d.image_url,
	d.created_at, d.updated_at,
	COALESCE(u.full_name, '') AS full_name,
	COALESCE(s.name, '') AS specialty_name`

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		LEFT JOIN users u ON u.id = d.user_id
		LEFT JOIN specialties s ON s.id = d.specialty_id
		WHERE d.id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		LEFT JOIN users u ON u.id = d.user_id
		LEFT JOIN specialties s ON s.id = d.specialty_id
		WHERE d.user_id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor by user: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		LEFT JOIN users u ON u.id = d.user_id
		LEFT JOIN specialties s ON s.id = d.specialty_id
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil && filters.SpecialtyID != nil {
		query += fmt.Sprintf(" WHERE d.specialty_id = $%d", argCount)
		args = append(args, *filters.SpecialtyID)
		argCount++
	}

	query += " ORDER BY d.rating DESC"

	if filters != nil && filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filters.Limit)
	}

	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
