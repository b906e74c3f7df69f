package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalhospital/portal-api/internal/model"
	"github.com/globalhospital/portal-api/internal/repository"
	"github.com/globalhospital/portal-api/pkg/logger"
	"github.com/globalhospital/portal-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("appointment_service_test")

type stubAppointmentRepo struct {
	created []*model.Appointment
}

func (r *stubAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	r.created = append(r.created, apt)
	return nil
}

func (r *stubAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	for _, apt := range r.created {
		if apt.ID == id {
			return apt, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubAppointmentRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.created {
		if filters.PatientID != nil && apt.PatientID != *filters.PatientID {
			continue
		}
		if filters.DoctorID != nil && apt.DoctorID != *filters.DoctorID {
			continue
		}
		out = append(out, apt)
	}
	return out, nil
}

type stubDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func (r *stubDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return doctor, nil
}

func (r *stubDoctorRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Doctor, error) {
	for _, doctor := range r.doctors {
		if doctor.UserID == userID {
			return doctor, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubDoctorRepo) List(_ context.Context, _ *model.DoctorFilters) ([]*model.Doctor, error) {
	return nil, nil
}

type noopEmailService struct{}

func (noopEmailService) SendWelcome(context.Context, string, string) error { return nil }
func (noopEmailService) SendCustom(context.Context, string, string, string) error { return nil }

func newTestService(repo *stubAppointmentRepo, doctorRepo *stubDoctorRepo) *Service {
	return NewService(repo, doctorRepo, noopEmailService{}, testMetrics, logger.NewLogger(nil))
}

func testPatient() *model.Profile {
	return &model.Profile{
		ID:       uuid.New(),
		FullName: "Pat Patient",
		Email:    "pat@example.com",
		Role:     model.RolePatient,
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	repo := &stubAppointmentRepo{}
	svc := newTestService(repo, &stubDoctorRepo{})
	patient := testPatient()

	apt, err := svc.Book(context.Background(), patient, &model.CreateAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: futureDate(),
		AppointmentTime: "10:00 AM",
		Notes:           "first visit",
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, patient.ID, apt.PatientID)
	assert.NotEqual(t, uuid.Nil, apt.ID)
	require.Len(t, repo.created, 1)
}

func TestBookAllowsToday(t *testing.T) {
	svc := newTestService(&stubAppointmentRepo{}, &stubDoctorRepo{})

	_, err := svc.Book(context.Background(), testPatient(), &model.CreateAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: time.Now().Format("2006-01-02"),
		AppointmentTime: "4:00 PM",
	})
	assert.NoError(t, err)
}

func TestBookRejectsPastDate(t *testing.T) {
	repo := &stubAppointmentRepo{}
	svc := newTestService(repo, &stubDoctorRepo{})

	_, err := svc.Book(context.Background(), testPatient(), &model.CreateAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		AppointmentTime: "10:00 AM",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.created)
}

// A double submit creates two independent rows; there is no dedup key.
func TestBookDoubleSubmitCreatesTwoRows(t *testing.T) {
	repo := &stubAppointmentRepo{}
	svc := newTestService(repo, &stubDoctorRepo{})
	patient := testPatient()

	req := &model.CreateAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: futureDate(),
		AppointmentTime: "10:00 AM",
	}

	first, err := svc.Book(context.Background(), patient, req)
	require.NoError(t, err)
	second, err := svc.Book(context.Background(), patient, req)
	require.NoError(t, err)

	require.Len(t, repo.created, 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.AppointmentDate, second.AppointmentDate)
	assert.Equal(t, first.AppointmentTime, second.AppointmentTime)
}

func TestListForPatientFiltersByPatient(t *testing.T) {
	repo := &stubAppointmentRepo{}
	svc := newTestService(repo, &stubDoctorRepo{})
	patient := testPatient()
	other := testPatient()

	_, err := svc.Book(context.Background(), patient, &model.CreateAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: futureDate(),
		AppointmentTime: "10:00 AM",
	})
	require.NoError(t, err)
	_, err = svc.Book(context.Background(), other, &model.CreateAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: futureDate(),
		AppointmentTime: "11:00 AM",
	})
	require.NoError(t, err)

	appointments, err := svc.ListForPatient(context.Background(), patient.ID)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, patient.ID, appointments[0].PatientID)
}

func TestListForDoctorResolvesDoctorRow(t *testing.T) {
	doctorUserID := uuid.New()
	doctorID := uuid.New()
	doctorRepo := &stubDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{
		doctorID: {
			Base:   model.Base{ID: doctorID},
			UserID: doctorUserID,
		},
	}}
	repo := &stubAppointmentRepo{}
	svc := newTestService(repo, doctorRepo)

	_, err := svc.Book(context.Background(), testPatient(), &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: futureDate(),
		AppointmentTime: "10:00 AM",
	})
	require.NoError(t, err)

	appointments, err := svc.ListForDoctor(context.Background(), doctorUserID)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, doctorID, appointments[0].DoctorID)
}

func TestConfirmationDeniedForOtherPatient(t *testing.T) {
	doctorID := uuid.New()
	doctorRepo := &stubDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{
		doctorID: {Base: model.Base{ID: doctorID}},
	}}
	repo := &stubAppointmentRepo{}
	svc := newTestService(repo, doctorRepo)
	owner := testPatient()

	apt, err := svc.Book(context.Background(), owner, &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: futureDate(),
		AppointmentTime: "10:00 AM",
	})
	require.NoError(t, err)

	_, err = svc.Confirmation(context.Background(), apt.ID, testPatient())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConfirmationSnapshotsBooking(t *testing.T) {
	doctorID := uuid.New()
	doctorRepo := &stubDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{
		doctorID: {
			Base:          model.Base{ID: doctorID},
			FullName:      "Dr. Jones",
			SpecialtyName: "Cardiac Care",
		},
	}}
	svc := newTestService(&stubAppointmentRepo{}, doctorRepo)
	patient := testPatient()

	apt, err := svc.Book(context.Background(), patient, &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: futureDate(),
		AppointmentTime: "10:00 AM",
		Notes:           "chest pain",
	})
	require.NoError(t, err)

	confirmation, err := svc.Confirmation(context.Background(), apt.ID, patient)
	require.NoError(t, err)
	assert.Equal(t, apt.ID, confirmation.BookingID)
	assert.Equal(t, "Dr. Jones", confirmation.DoctorName)
	assert.Equal(t, "Cardiac Care", confirmation.SpecialtyName)
	assert.Equal(t, patient.FullName, confirmation.PatientName)
	assert.Equal(t, "chest pain", confirmation.Notes)
}
