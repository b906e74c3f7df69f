package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/globalhospital/portal-api/internal/model"
	"github.com/globalhospital/portal-api/internal/repository"
)

func (r *patientProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	query := `
		SELECT id, patient_id, name, age, gender, blood_group,
			   family_contact, address, ongoing_treatment, user_id,
			   created_at, updated_at
		FROM patient_profiles
		WHERE user_id = $1
	`
	var profile model.PatientProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}
	return &profile, nil
}

// Upsert writes the profile in a single statement keyed on the user_id
// unique constraint. Two concurrent saves for the same user cannot
// produce two rows; the second simply overwrites the first.
func (r *patientProfileRepository) Upsert(ctx context.Context, profile *model.PatientProfile) error {
	query := `
		INSERT INTO patient_profiles (
			id, patient_id, name, age, gender, blood_group,
			family_contact, address, ongoing_treatment, user_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			patient_id = EXCLUDED.patient_id,
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			blood_group = EXCLUDED.blood_group,
			family_contact = EXCLUDED.family_contact,
			address = EXCLUDED.address,
			ongoing_treatment = EXCLUDED.ongoing_treatment,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	now := time.Now()
	profile.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, query,
		profile.ID,
		profile.PatientID,
		profile.Name,
		profile.Age,
		profile.Gender,
		profile.BloodGroup,
		profile.FamilyContact,
		profile.Address,
		profile.OngoingTreatment,
		profile.UserID,
		now,
		now,
	)
	// RETURNING reports the surviving row's identity, so a save that hit
	// the conflict path hands back the original id and created_at.
	if err := row.Scan(&profile.ID, &profile.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert patient profile: %w", err)
	}
	return nil
}
