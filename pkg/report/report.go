// Package report lays out patient and booking data into PDF documents.
// Generation is pure: no network access, deterministic given the input
// and the supplied clock.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/globalhospital/portal-api/internal/model"
)

const (
	hospitalName    = "Global Hospital"
	hospitalTagline = "Multispecialty Healthcare"

	leftMargin   = 20.0
	textWidth    = 170.0
	lineHeight   = 5.0
	pageBreakAt  = 250.0
	pageTopReset = 30.0

	noTreatmentFallback = "No ongoing treatment recorded"
)

// PatientReportData is the snapshot rendered into a treatment report.
// Prescriptions are expected ordered by creation time descending.
type PatientReportData struct {
	Profile       *model.PatientProfile
	Prescriptions []*model.Prescription
}

// PatientReport renders the multi-page treatment report.
func PatientReport(data PatientReportData, now time.Time) ([]byte, error) {
	doc := newDocument(now)

	doc.SetFont("Helvetica", "", 16)
	doc.Text(leftMargin, 60, "Patient Treatment Report")

	y := 80.0

	doc.SetFont("Helvetica", "", 14)
	doc.Text(leftMargin, y, "Patient Information")
	y += 15

	doc.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Patient ID: %s", data.Profile.PatientID),
		fmt.Sprintf("Name: %s", data.Profile.Name),
		fmt.Sprintf("Age: %d years", data.Profile.Age),
		fmt.Sprintf("Gender: %s", data.Profile.Gender),
		fmt.Sprintf("Blood Group: %s", data.Profile.BloodGroup),
	} {
		doc.Text(leftMargin, y, line)
		y += 10
	}
	y += 5

	doc.Text(leftMargin, y, "Address:")
	y += lineHeight
	y = writeWrapped(doc, data.Profile.Address, leftMargin, y, textWidth)
	y += 10

	doc.SetFont("Helvetica", "", 14)
	doc.Text(leftMargin, y, "Ongoing Treatment")
	y += 15

	doc.SetFont("Helvetica", "", 12)
	treatment := data.Profile.OngoingTreatment
	if treatment == "" {
		treatment = noTreatmentFallback
	}
	y = writeWrapped(doc, treatment, leftMargin, y, textWidth)
	y += 15

	if len(data.Prescriptions) > 0 {
		doc.SetFont("Helvetica", "", 14)
		doc.Text(leftMargin, y, "Prescription History")
		y += 15

		for i, p := range data.Prescriptions {
			if y > pageBreakAt {
				doc.AddPage()
				y = pageTopReset
			}

			doc.SetFont("Helvetica", "", 12)
			doc.Text(25, y, fmt.Sprintf("%d. Date: %s", i+1, p.CreatedAt.Format("Jan 2, 2006")))
			y += 8
			doc.Text(25, y, fmt.Sprintf("   Doctor: %s", p.DoctorName))
			y += 8
			doc.Text(25, y, "   Prescription:")
			y += lineHeight
			y = writeWrapped(doc, p.PrescriptionText, 30, y, 160)
			y += 10
		}
	}

	y += 20
	if y > pageBreakAt {
		doc.AddPage()
		y = pageTopReset
	}

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(128, 128, 128)
	doc.Text(leftMargin, y, "This report is generated electronically and is valid without signature.")
	doc.Text(leftMargin, y+10, fmt.Sprintf("Generated on: %s", now.Format("Jan 2, 2006")))

	return output(doc)
}

// BookingConfirmation renders the single-booking confirmation document.
func BookingConfirmation(b model.BookingConfirmation, now time.Time) ([]byte, error) {
	doc := newDocument(now)

	doc.SetFont("Helvetica", "", 16)
	doc.Text(leftMargin, 60, "Appointment Confirmation")

	doc.SetFont("Helvetica", "", 12)
	y := 80.0

	doc.Text(leftMargin, y, fmt.Sprintf("Booking ID: %s", b.BookingID))
	y += 15
	doc.Text(leftMargin, y, fmt.Sprintf("Patient Name: %s", b.PatientName))
	y += 10
	doc.Text(leftMargin, y, fmt.Sprintf("Email: %s", b.PatientEmail))
	y += 15
	doc.Text(leftMargin, y, fmt.Sprintf("Doctor: %s", b.DoctorName))
	y += 10
	doc.Text(leftMargin, y, fmt.Sprintf("Specialty: %s", b.SpecialtyName))
	y += 15
	doc.Text(leftMargin, y, fmt.Sprintf("Date: %s", formatBookingDate(b.AppointmentDate)))
	y += 10
	doc.Text(leftMargin, y, fmt.Sprintf("Time: %s", b.AppointmentTime))
	y += 15

	if b.Notes != "" {
		doc.Text(leftMargin, y, "Notes:")
		y += 10
		y = writeWrapped(doc, b.Notes, leftMargin, y, textWidth)
	}

	y += 20
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(128, 128, 128)
	doc.Text(leftMargin, y, "Please arrive 15 minutes before your appointment time.")
	doc.Text(leftMargin, y+10, "For any changes or cancellations, please contact us at least 24 hours in advance.")

	return output(doc)
}

func newDocument(now time.Time) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(now)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(6, 182, 212)
	doc.Text(leftMargin, 30, hospitalName)
	doc.SetFont("Helvetica", "", 12)
	doc.SetTextColor(0, 0, 0)
	doc.Text(leftMargin, 40, hospitalTagline)

	return doc
}

// writeWrapped word-wraps text into the given column width and returns
// the y offset just past the written block.
func writeWrapped(doc *gofpdf.Fpdf, text string, x, y, width float64) float64 {
	lines := doc.SplitText(text, width)
	for _, line := range lines {
		doc.Text(x, y, line)
		y += lineHeight
	}
	return y
}

func formatBookingDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

func output(doc *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
