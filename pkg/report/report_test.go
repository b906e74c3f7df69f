package report

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalhospital/portal-api/internal/model"
)

func testProfile() *model.PatientProfile {
	return &model.PatientProfile{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     "GH-1001",
		Name:          "Pat Patient",
		Age:           34,
		Gender:        "female",
		BloodGroup:    "O+",
		FamilyContact: "+1234567890",
		Address:       "42 Main Street, Springfield",
		UserID:        uuid.New(),
	}
}

// pageCount counts page dictionaries in the raw PDF output. Page
// objects are written uncompressed even when streams are deflated.
func pageCount(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page\r")) + bytes.Count(pdf, []byte("/Type /Page\n"))
}

func TestPatientReportWithoutPrescriptions(t *testing.T) {
	data := PatientReportData{Profile: testProfile()}

	pdf, err := PatientReport(data, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output is not a PDF")
	assert.Equal(t, 1, pageCount(pdf))
}

func TestPatientReportManyPrescriptionsPaginates(t *testing.T) {
	profile := testProfile()
	profile.OngoingTreatment = "physiotherapy twice a week"

	var prescriptions []*model.Prescription
	for i := 0; i < 30; i++ {
		prescriptions = append(prescriptions, &model.Prescription{
			Base:             model.Base{ID: uuid.New(), CreatedAt: time.Now()},
			PatientID:        profile.ID,
			DoctorName:       fmt.Sprintf("Dr. Number %d", i),
			PrescriptionText: "Take two tablets daily after meals, continue for two weeks and return for review.",
		})
	}

	pdf, err := PatientReport(PatientReportData{Profile: profile, Prescriptions: prescriptions}, time.Now())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Greater(t, pageCount(pdf), 1)
}

func TestPatientReportDeterministicForFixedClock(t *testing.T) {
	data := PatientReportData{Profile: testProfile()}
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	first, err := PatientReport(data, now)
	require.NoError(t, err)
	second, err := PatientReport(data, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBookingConfirmationRenders(t *testing.T) {
	confirmation := model.BookingConfirmation{
		BookingID:       uuid.New(),
		PatientName:     "Pat Patient",
		PatientEmail:    "pat@example.com",
		DoctorName:      "Dr. Jones",
		SpecialtyName:   "Cardiac Care",
		AppointmentDate: "2026-09-10",
		AppointmentTime: "10:00 AM",
		Notes:           "chest pain",
	}

	pdf, err := BookingConfirmation(confirmation, time.Now())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, 1, pageCount(pdf))
}

func TestBookingConfirmationWithoutNotes(t *testing.T) {
	confirmation := model.BookingConfirmation{
		BookingID:       uuid.New(),
		PatientName:     "Pat Patient",
		PatientEmail:    "pat@example.com",
		DoctorName:      "Dr. Jones",
		SpecialtyName:   "Cardiac Care",
		AppointmentDate: "2026-09-10",
		AppointmentTime: "10:00 AM",
	}

	pdf, err := BookingConfirmation(confirmation, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestFormatBookingDate(t *testing.T) {
	assert.Equal(t, "Sep 10, 2026", formatBookingDate("2026-09-10"))
	// Unparseable input passes through untouched.
	assert.Equal(t, "tomorrow", formatBookingDate("tomorrow"))
}
