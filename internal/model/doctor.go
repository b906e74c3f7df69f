package model

import (
	"github.com/google/uuid"
)

const DefaultAvailability = "Available for consultation"

// Doctor is read-only catalog data. Optional columns are explicit
// pointers; fallbacks are applied once here instead of per call site.
type Doctor struct {
	Base
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	SpecialtyID     uuid.UUID `db:"specialty_id" json:"specialty_id"`
	Qualifications  string    `db:"qualifications" json:"qualifications"`
	ExperienceYears int       `db:"experience_years" json:"experience_years"`
	Rating          float64   `db:"rating" json:"rating"`
	Availability    *string   `db:"availability" json:"availability,omitempty"`
	ConsultationFee *float64  `db:"consultation_fee" json:"consultation_fee,omitempty"`
	Bio             *string   `db:"bio" json:"bio,omitempty"`
	ImageURL        *string   `db:"image_url" json:"image_url,omitempty"`

	// Joined from the doctor's profile row; may be empty if the join
	// produced no match.
	FullName      string `db:"full_name" json:"full_name"`
	SpecialtyName string `db:"specialty_name" json:"specialty_name"`
}

// AvailabilityText returns the availability column or the named fallback.
func (d *Doctor) AvailabilityText() string {
	if d.Availability == nil || *d.Availability == "" {
		return DefaultAvailability
	}
	return *d.Availability
}

type DoctorFilters struct {
	SpecialtyID *uuid.UUID
	Limit       int
}
