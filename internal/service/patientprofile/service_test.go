package patientprofile

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalhospital/portal-api/internal/model"
	"github.com/globalhospital/portal-api/internal/repository"
	"github.com/globalhospital/portal-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("patientprofile_service_test")

// stubProfileRepo mirrors the single-statement upsert: one row per
// user_id, the row id never changes after the first insert.
type stubProfileRepo struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]*model.PatientProfile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUser: make(map[uuid.UUID]*model.PatientProfile)}
}

func (r *stubProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *stubProfileRepo) Upsert(_ context.Context, profile *model.PatientProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byUser[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = time.Now()
	}
	copied := *profile
	r.byUser[profile.UserID] = &copied
	return nil
}

type stubPrescriptionRepo struct {
	byPatient map[uuid.UUID][]*model.Prescription
}

func (r *stubPrescriptionRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	return r.byPatient[patientID], nil
}

func newTestService(repo *stubProfileRepo, prescriptions *stubPrescriptionRepo) *Service {
	if prescriptions == nil {
		prescriptions = &stubPrescriptionRepo{}
	}
	return NewService(repo, prescriptions, testMetrics)
}

func saveRequest() *model.SavePatientProfileRequest {
	return &model.SavePatientProfileRequest{
		PatientID:        "GH-1001",
		Name:             "Pat Patient",
		Age:              34,
		Gender:           "female",
		BloodGroup:       "O+",
		FamilyContact:    "+1234567890",
		Address:          "42 Main Street",
		OngoingTreatment: "physiotherapy",
	}
}

func TestGetWithoutProfileReturnsEmptyState(t *testing.T) {
	svc := newTestService(newStubProfileRepo(), nil)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestSaveThenUpdateKeepsRowID(t *testing.T) {
	repo := newStubProfileRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	first, err := svc.Save(context.Background(), userID, saveRequest())
	require.NoError(t, err)

	req := saveRequest()
	req.Age = 35
	second, err := svc.Save(context.Background(), userID, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 35, second.Age)

	stored, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, 35, stored.Age)
}

// Two saves racing for the same user must still converge on one row.
func TestConcurrentSavesConvergeOnOneRow(t *testing.T) {
	repo := newStubProfileRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Save(context.Background(), userID, saveRequest())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Len(t, repo.byUser, 1)
}

func TestPrescriptionsWithoutProfileIsEmpty(t *testing.T) {
	svc := newTestService(newStubProfileRepo(), nil)

	prescriptions, err := svc.Prescriptions(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, prescriptions)
}

func TestPrescriptionsListedForProfile(t *testing.T) {
	repo := newStubProfileRepo()
	userID := uuid.New()

	svc := newTestService(repo, &stubPrescriptionRepo{})
	saved, err := svc.Save(context.Background(), userID, saveRequest())
	require.NoError(t, err)

	prescriptionRepo := &stubPrescriptionRepo{byPatient: map[uuid.UUID][]*model.Prescription{
		saved.ID: {
			{DoctorName: "Dr. Jones", PrescriptionText: "rest and fluids"},
		},
	}}
	svc = newTestService(repo, prescriptionRepo)

	prescriptions, err := svc.Prescriptions(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, prescriptions, 1)
	assert.Equal(t, "Dr. Jones", prescriptions[0].DoctorName)
}

func TestReportDataRequiresProfile(t *testing.T) {
	svc := newTestService(newStubProfileRepo(), nil)

	_, err := svc.ReportData(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestReportDataGathersProfileAndPrescriptions(t *testing.T) {
	repo := newStubProfileRepo()
	userID := uuid.New()

	svc := newTestService(repo, &stubPrescriptionRepo{})
	saved, err := svc.Save(context.Background(), userID, saveRequest())
	require.NoError(t, err)

	prescriptionRepo := &stubPrescriptionRepo{byPatient: map[uuid.UUID][]*model.Prescription{
		saved.ID: {
			{DoctorName: "Dr. Jones", PrescriptionText: "rest and fluids"},
		},
	}}
	svc = newTestService(repo, prescriptionRepo)

	data, err := svc.ReportData(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, data.Profile.ID)
	require.Len(t, data.Prescriptions, 1)
}
