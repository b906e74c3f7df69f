package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/globalhospital/portal-api/internal/model"
)

// ErrNotFound is returned by Get-style methods when no row matches.
// Callers treat it as an empty state, not a failure.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	SpecialtyRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error)
		List(ctx context.Context) ([]*model.Specialty, error)
	}

	DoctorRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error)
		List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	PatientProfileRepository interface {
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error)
		// Upsert inserts the profile or, when a row for user_id already
		// exists, updates it in place. Single statement, no read-then-write.
		Upsert(ctx context.Context, profile *model.PatientProfile) error
	}

	PrescriptionRepository interface {
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error)
	}

	// TokenRepository invalidates issued tokens on logout.
	TokenRepository interface {
		Invalidate(ctx context.Context, token string, ttl time.Duration) error
		IsInvalidated(ctx context.Context, token string) (bool, error)
	}
)
