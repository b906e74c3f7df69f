package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment is a requested booking between a patient and a doctor.
// Status is written once at creation; no transition path exists in this
// service, it is read-only display afterwards.
type Appointment struct {
	Base
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	AppointmentDate string            `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string            `db:"appointment_time" json:"appointment_time"`
	Notes           string            `db:"notes" json:"notes,omitempty"`
	Status          AppointmentStatus `db:"status" json:"status"`
}

type CreateAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" binding:"required"`
	AppointmentDate string    `json:"appointment_date" binding:"required,bookingdate"`
	AppointmentTime string    `json:"appointment_time" binding:"required"`
	Notes           string    `json:"notes" binding:"max=1000"`
}

type AppointmentFilters struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    *AppointmentStatus
}

// BookingConfirmation is the snapshot rendered into the confirmation PDF.
type BookingConfirmation struct {
	BookingID       uuid.UUID
	PatientName     string
	PatientEmail    string
	DoctorName      string
	SpecialtyName   string
	AppointmentDate string
	AppointmentTime string
	Notes           string
}
