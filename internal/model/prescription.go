package model

import (
	"github.com/google/uuid"
)

// Prescription is a doctor-authored treatment note attached to a patient
// profile. DoctorName is free text, not a foreign key. Read-only from
// this service: there is no creation endpoint.
type Prescription struct {
	Base
	PatientID        uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorName       string    `db:"doctor_name" json:"doctor_name"`
	PrescriptionText string    `db:"prescription_text" json:"prescription_text"`
	DocumentURL      *string   `db:"document_url" json:"document_url,omitempty"`
}
