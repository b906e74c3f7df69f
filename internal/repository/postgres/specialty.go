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

func (r *specialtyRepository) Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	query := `
		SELECT id, name, description, icon, color, created_at, updated_at
		FROM specialties
		WHERE id = $1
	`
	var specialty model.Specialty
	err := r.db.GetContext(ctx, &specialty, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get specialty: %w", err)
	}
	return &specialty, nil
}

func (r *specialtyRepository) List(ctx context.Context) ([]*model.Specialty, error) {
	query := `
		SELECT id, name, description, icon, color, created_at, updated_at
		FROM specialties
		ORDER BY name ASC
	`
	var specialties []*model.Specialty
	err := r.db.SelectContext(ctx, &specialties, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return specialties, nil
}
