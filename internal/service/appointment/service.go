package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/globalhospital/portal-api/internal/email"
	"github.com/globalhospital/portal-api/internal/model"
	"github.com/globalhospital/portal-api/internal/repository"
	"github.com/globalhospital/portal-api/pkg/logger"
	"github.com/globalhospital/portal-api/pkg/metrics"
)

const dateLayout = "2006-01-02"

type Service struct {
	repo       repository.AppointmentRepository
	doctorRepo repository.DoctorRepository
	emailSvc   email.Service
	metrics    *metrics.Metrics
	log        *logger.Logger
}

func NewService(repo repository.AppointmentRepository, doctorRepo repository.DoctorRepository,
	emailSvc email.Service, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		doctorRepo: doctorRepo,
		emailSvc:   emailSvc,
		metrics:    m,
		log:        log,
	}
}

// Book inserts one appointment row with status pending. There is no
// idempotence key and no double-booking check: two identical requests
// create two rows.
func (s *Service) Book(ctx context.Context, patient *model.Profile, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := validateDate(req.AppointmentDate); err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		Base: model.Base{
			ID: uuid.New(),
		},
		PatientID:       patient.ID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Notes:           req.Notes,
		Status:          model.AppointmentStatusPending,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.metrics.AppointmentsBooked.Inc()

	if err := s.sendConfirmationEmail(ctx, patient, apt); err != nil {
		s.log.Warn(err, "failed to send booking confirmation email")
	}

	return apt, nil
}

func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, &model.AppointmentFilters{PatientID: &patientID})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListForDoctor(ctx context.Context, doctorUserID uuid.UUID) ([]*model.Appointment, error) {
	doctor, err := s.doctorRepo.GetByUserID(ctx, doctorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	appointments, err := s.repo.List(ctx, &model.AppointmentFilters{DoctorID: &doctor.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Confirmation assembles the snapshot rendered into the confirmation
// PDF. Only the booking patient may request it.
func (s *Service) Confirmation(ctx context.Context, id uuid.UUID, patient *model.Profile) (*model.BookingConfirmation, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if apt.PatientID != patient.ID {
		return nil, repository.ErrNotFound
	}

	doctor, err := s.doctorRepo.Get(ctx, apt.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	return &model.BookingConfirmation{
		BookingID:       apt.ID,
		PatientName:     patient.FullName,
		PatientEmail:    patient.Email,
		DoctorName:      doctor.FullName,
		SpecialtyName:   doctor.SpecialtyName,
		AppointmentDate: apt.AppointmentDate,
		AppointmentTime: apt.AppointmentTime,
		Notes:           apt.Notes,
	}, nil
}

func (s *Service) sendConfirmationEmail(ctx context.Context, patient *model.Profile, apt *model.Appointment) error {
	subject := "Your appointment request"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment request for %s at %s has been received and is pending confirmation.\n\nGlobal Hospital",
		patient.FullName, apt.AppointmentDate, apt.AppointmentTime,
	)
	return s.emailSvc.SendCustom(ctx, patient.Email, subject, body)
}

// validateDate enforces the today-or-later bound server-side. The date
// is compared by calendar day, not instant, so booking for today is
// always allowed.
func validateDate(date string) error {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid appointment date: %w", err)
	}

	today, _ := time.Parse(dateLayout, time.Now().Format(dateLayout))
	if d.Before(today) {
		return fmt.Errorf("appointment date cannot be in the past")
	}
	return nil
}
