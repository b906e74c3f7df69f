package model

import (
	"github.com/google/uuid"
)

// PatientProfile is the patient-maintained demographic and treatment
// record, distinct from the authentication profile. Exactly one row per
// user, enforced by a unique constraint on user_id and written through
// an atomic upsert.
type PatientProfile struct {
	Base
	PatientID        string    `db:"patient_id" json:"patient_id"`
	Name             string    `db:"name" json:"name"`
	Age              int       `db:"age" json:"age"`
	Gender           string    `db:"gender" json:"gender"`
	BloodGroup       string    `db:"blood_group" json:"blood_group"`
	FamilyContact    string    `db:"family_contact" json:"family_contact"`
	Address          string    `db:"address" json:"address"`
	OngoingTreatment string    `db:"ongoing_treatment" json:"ongoing_treatment"`
	UserID           uuid.UUID `db:"user_id" json:"user_id"`
}

type SavePatientProfileRequest struct {
	PatientID        string `json:"patient_id" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Age              int    `json:"age" binding:"required,gt=0,lt=150"`
	Gender           string `json:"gender" binding:"required"`
	BloodGroup       string `json:"blood_group"`
	FamilyContact    string `json:"family_contact"`
	Address          string `json:"address"`
	OngoingTreatment string `json:"ongoing_treatment"`
}
