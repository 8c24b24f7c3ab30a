package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== stubs ====================

type stubAppointmentRepo struct {
	createFn         func(ctx context.Context, appt *entity.Appointment) error
	findByIDFn       func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	findDuplicateFn  func(ctx context.Context, email, serviceCode, date, timeOfDay string) (*entity.Appointment, error)
	listFn           func(ctx context.Context, filter repository.AppointmentFilter) ([]*entity.Appointment, error)
	countFn          func(ctx context.Context, filter repository.AppointmentFilter) (int64, error)
	countByStatusFn  func(ctx context.Context, patientID uuid.UUID) (map[entity.AppointmentStatus]int64, error)
	updateStatusIfFn func(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (bool, error)
	rescheduleIfFn   func(ctx context.Context, id uuid.UUID, newDate, newTime string, from, to entity.AppointmentStatus) (bool, error)
	updateNotesFn    func(ctx context.Context, id uuid.UUID, notes string) error
	deletedFor       []uuid.UUID
}

func (s *stubAppointmentRepo) Create(ctx context.Context, appt *entity.Appointment) error {
	if s.createFn != nil {
		return s.createFn(ctx, appt)
	}
	return nil
}

func (s *stubAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubAppointmentRepo) FindPendingDuplicate(ctx context.Context, email, serviceCode, date, timeOfDay string) (*entity.Appointment, error) {
	if s.findDuplicateFn != nil {
		return s.findDuplicateFn(ctx, email, serviceCode, date, timeOfDay)
	}
	return nil, nil
}

func (s *stubAppointmentRepo) List(ctx context.Context, filter repository.AppointmentFilter) ([]*entity.Appointment, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}

func (s *stubAppointmentRepo) Count(ctx context.Context, filter repository.AppointmentFilter) (int64, error) {
	if s.countFn != nil {
		return s.countFn(ctx, filter)
	}
	return 0, nil
}

func (s *stubAppointmentRepo) CountByStatusForPatient(ctx context.Context, patientID uuid.UUID) (map[entity.AppointmentStatus]int64, error) {
	if s.countByStatusFn != nil {
		return s.countByStatusFn(ctx, patientID)
	}
	return nil, nil
}

func (s *stubAppointmentRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (bool, error) {
	if s.updateStatusIfFn != nil {
		return s.updateStatusIfFn(ctx, id, from, to)
	}
	return true, nil
}

func (s *stubAppointmentRepo) RescheduleIf(ctx context.Context, id uuid.UUID, newDate, newTime string, from, to entity.AppointmentStatus) (bool, error) {
	if s.rescheduleIfFn != nil {
		return s.rescheduleIfFn(ctx, id, newDate, newTime, from, to)
	}
	return true, nil
}

func (s *stubAppointmentRepo) UpdateAdminNotes(ctx context.Context, id uuid.UUID, notes string) error {
	if s.updateNotesFn != nil {
		return s.updateNotesFn(ctx, id, notes)
	}
	return nil
}

func (s *stubAppointmentRepo) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	s.deletedFor = append(s.deletedFor, patientID)
	return nil
}

type stubActivityRepo struct {
	created []*entity.AppointmentActivity
	findFn  func(ctx context.Context, appointmentID uuid.UUID) ([]*entity.AppointmentActivity, error)
}

func (s *stubActivityRepo) Create(ctx context.Context, activity *entity.AppointmentActivity) error {
	s.created = append(s.created, activity)
	return nil
}

func (s *stubActivityRepo) FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) ([]*entity.AppointmentActivity, error) {
	if s.findFn != nil {
		return s.findFn(ctx, appointmentID)
	}
	return s.created, nil
}

type stubPatientRepo struct {
	findByEmailFn func(ctx context.Context, email string) (*entity.Patient, error)
	findByIDFn    func(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	created       []*entity.Patient
	updated       []*entity.Patient
	deleted       []uuid.UUID
}

func (s *stubPatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	s.created = append(s.created, patient)
	return nil
}

func (s *stubPatientRepo) Update(ctx context.Context, patient *entity.Patient) error {
	s.updated = append(s.updated, patient)
	return nil
}

func (s *stubPatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubPatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubPatientRepo) FindByEmail(ctx context.Context, email string) (*entity.Patient, error) {
	if s.findByEmailFn != nil {
		return s.findByEmailFn(ctx, email)
	}
	return nil, nil
}

type stubServiceRepo struct {
	findByCodeFn func(ctx context.Context, code string) (*entity.Service, error)
	created      []*entity.Service
	updated      []*entity.Service
}

func (s *stubServiceRepo) Create(ctx context.Context, svc *entity.Service) error {
	s.created = append(s.created, svc)
	return nil
}

func (s *stubServiceRepo) Update(ctx context.Context, svc *entity.Service) error {
	s.updated = append(s.updated, svc)
	return nil
}

func (s *stubServiceRepo) FindByCode(ctx context.Context, code string) (*entity.Service, error) {
	if s.findByCodeFn != nil {
		return s.findByCodeFn(ctx, code)
	}
	return bookableService(code), nil
}

func (s *stubServiceRepo) FindAllActive(ctx context.Context) ([]*entity.Service, error) {
	return nil, nil
}

func (s *stubServiceRepo) FindAll(ctx context.Context) ([]*entity.Service, error) {
	return nil, nil
}

func bookableService(code string) *entity.Service {
	return &entity.Service{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Code:         code,
		Name:         "Initial Evaluation",
		IsActive:     true,
		UserBookable: true,
	}
}

// ==================== helpers ====================

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(appts *stubAppointmentRepo, acts *stubActivityRepo, patients *stubPatientRepo, services *stubServiceRepo) *appointmentService {
	if appts == nil {
		appts = &stubAppointmentRepo{}
	}
	if acts == nil {
		acts = &stubActivityRepo{}
	}
	if patients == nil {
		patients = &stubPatientRepo{}
	}
	if services == nil {
		services = &stubServiceRepo{}
	}

	repo := &repository.Repository{
		Appointment: appts,
		Activity:    acts,
		Patient:     patients,
		Service:     services,
	}

	svc := NewAppointmentService(repo, nil, zap.NewNop()).(*appointmentService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func adminActor() Actor {
	return Actor{ID: uuid.New(), Role: entity.RoleAdmin}
}

func pendingAppointment() *entity.Appointment {
	return &entity.Appointment{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: fixedNow, UpdatedAt: fixedNow},
		ReferenceCode:   "APT-20260615-120000-XYZ123",
		ServiceCode:     "initial-eval",
		Mode:            entity.AppointmentModeTelehealth,
		PreferredDate:   "2026-07-01",
		PreferredTime:   "10:00",
		AppointmentDate: "2026-07-01",
		AppointmentTime: "10:00",
		Status:          entity.AppointmentStatusPending,
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane.doe@example.com",
	}
}

func validCreateRequest() *request.CreateAppointmentRequest {
	return &request.CreateAppointmentRequest{
		Service:        "initial-eval",
		PreferredDate:  "2026-07-01",
		PreferredTime:  "10:00",
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          "jane.doe@example.com",
		Phone:          "5551234567",
		DateOfBirth:    "1985-03-20",
		Gender:         "female",
		Address:        "123 Main St",
		City:           "Springfield",
		State:          "IL",
		ZipCode:        "62704",
		ReasonForVisit: "anxiety",

		Terms:              true,
		HipaaConsent:       true,
		ConsentToTreatment: true,
		PrivacyPolicy:      true,
	}
}

// ==================== create ====================

func TestCreateAppointmentStartsPendingWithNoActivity(t *testing.T) {
	var created *entity.Appointment
	appts := &stubAppointmentRepo{
		createFn: func(ctx context.Context, appt *entity.Appointment) error {
			created = appt
			return nil
		},
	}
	acts := &stubActivityRepo{}
	svc := newTestService(appts, acts, nil, nil)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, entity.AppointmentStatusPending, created.Status)
	assert.Equal(t, entity.AppointmentModeTelehealth, created.Mode, "empty mode defaults to telehealth")
	assert.NotEmpty(t, created.ReferenceCode)
	assert.Equal(t, created.PreferredDate, created.AppointmentDate)
	assert.Equal(t, created.PreferredTime, created.AppointmentTime)
	assert.Nil(t, created.PatientID, "no account, no link")

	assert.Empty(t, acts.created, "creation is not an audit transition")

	assert.Equal(t, "pending", string(resp.Status))
	assert.Equal(t, "Initial Evaluation", resp.ServiceName)
}

func TestCreateAppointmentRejectsIncompleteIntake(t *testing.T) {
	req := validCreateRequest()
	req.HipaaConsent = false

	svc := newTestService(nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var vErr *FieldValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "hipaaConsent")
}

func TestCreateAppointmentReturningClaimVerifiedByEmail(t *testing.T) {
	// The client claims returning status but no patient matches the email:
	// the full identity set is required again.
	req := validCreateRequest()
	req.ReturningClient = true
	req.FirstName = ""
	req.LastName = ""
	req.Phone = ""
	req.DateOfBirth = ""
	req.Gender = ""
	req.Address = ""
	req.City = ""
	req.State = ""
	req.ZipCode = ""

	svc := newTestService(nil, nil, &stubPatientRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entity.Patient, error) {
			return nil, nil
		},
	}, nil)

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var vErr *FieldValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "firstName")
}

func TestCreateAppointmentReturningClientLinksPatient(t *testing.T) {
	patientID := uuid.New()
	patients := &stubPatientRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entity.Patient, error) {
			return &entity.Patient{
				Base:  entity.Base{ID: patientID},
				Email: email,
			}, nil
		},
	}

	var created *entity.Appointment
	appts := &stubAppointmentRepo{
		createFn: func(ctx context.Context, appt *entity.Appointment) error {
			created = appt
			return nil
		},
	}

	req := validCreateRequest()
	req.ReturningClient = true
	// Returning clients only need identity represented by the email.
	req.FirstName = ""
	req.LastName = ""
	req.Phone = ""
	req.DateOfBirth = ""
	req.Gender = ""
	req.Address = ""
	req.City = ""
	req.State = ""
	req.ZipCode = ""

	svc := newTestService(appts, nil, patients, nil)

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, created.PatientID)
	assert.Equal(t, patientID, *created.PatientID)
}

func TestCreateAppointmentSuppressesDuplicateSubmission(t *testing.T) {
	existing := pendingAppointment()
	appts := &stubAppointmentRepo{
		findDuplicateFn: func(ctx context.Context, email, serviceCode, date, timeOfDay string) (*entity.Appointment, error) {
			assert.Equal(t, "jane.doe@example.com", email)
			assert.Equal(t, "initial-eval", serviceCode)
			return existing, nil
		},
		createFn: func(ctx context.Context, appt *entity.Appointment) error {
			t.Fatal("duplicate submission must not create a second row")
			return nil
		},
	}

	svc := newTestService(appts, nil, nil, nil)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, existing.ID.String(), resp.ID, "retry returns the existing pending record")
}

func TestCreateAppointmentRejectsUnknownService(t *testing.T) {
	services := &stubServiceRepo{
		findByCodeFn: func(ctx context.Context, code string) (*entity.Service, error) {
			return nil, nil
		},
	}

	svc := newTestService(nil, nil, nil, services)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// ==================== transitions ====================

func TestApproveAppliesAndAppendsOneActivity(t *testing.T) {
	appt := pendingAppointment()
	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return appt, nil
		},
		updateStatusIfFn: func(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (bool, error) {
			assert.Equal(t, entity.AppointmentStatusPending, from)
			assert.Equal(t, entity.AppointmentStatusConfirmed, to)
			return true, nil
		},
	}
	acts := &stubActivityRepo{}
	svc := newTestService(appts, acts, nil, nil)
	actor := adminActor()

	resp, err := svc.Approve(context.Background(), actor, appt.ID.String(), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusConfirmed, resp.Status)

	require.Len(t, acts.created, 1)
	activity := acts.created[0]
	assert.Equal(t, entity.ActivityActionApprove, activity.Action)
	assert.Equal(t, entity.AppointmentStatusPending, activity.FromStatus)
	assert.Equal(t, entity.AppointmentStatusConfirmed, activity.ToStatus)
	require.NotNil(t, activity.ActorID)
	assert.Equal(t, actor.ID, *activity.ActorID)
}

func TestApproveRequiresAdmin(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	_, err := svc.Approve(context.Background(), Actor{ID: uuid.New(), Role: entity.RolePatient}, uuid.NewString(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestSecondApproveIsInvalidTransition(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = entity.AppointmentStatusConfirmed

	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return appt, nil
		},
		updateStatusIfFn: func(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (bool, error) {
			t.Fatal("must not reach the conditional write from a wrong status")
			return false, nil
		},
	}
	acts := &stubActivityRepo{}
	svc := newTestService(appts, acts, nil, nil)

	_, err := svc.Approve(context.Background(), adminActor(), appt.ID.String(), nil)
	require.Error(t, err)

	var invalidErr *InvalidTransitionError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, entity.AppointmentStatusConfirmed, invalidErr.Current)
	assert.Empty(t, acts.created, "no audit row for a rejected transition")
}

func TestConcurrentTransitionsHaveOneWinner(t *testing.T) {
	// Both callers load the row as pending; the conditional write lets the
	// first through and reports false to the second.
	appt := pendingAppointment()

	applied := false
	writeFailed := false
	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			// Reads stay stale (pending) until a conditional write has lost;
			// only the refetch after the failed write sees the fresh status.
			a := *appt
			if writeFailed {
				a.Status = entity.AppointmentStatusConfirmed
			}
			return &a, nil
		},
		updateStatusIfFn: func(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (bool, error) {
			if applied {
				writeFailed = true
				return false, nil
			}
			applied = true
			return true, nil
		},
	}
	acts := &stubActivityRepo{}
	svc := newTestService(appts, acts, nil, nil)

	_, err := svc.Approve(context.Background(), adminActor(), appt.ID.String(), nil)
	require.NoError(t, err)

	// The decline raced and lost: its pre-write read served the stale
	// pending row, so it reaches the conditional write and loses there.
	_, err = svc.Decline(context.Background(), adminActor(), appt.ID.String(), nil)
	require.Error(t, err)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, entity.AppointmentStatusConfirmed, conflictErr.Current, "loser learns the fresh status")

	assert.Len(t, acts.created, 1, "exactly one audit row for the winning transition")
}

func TestCompleteOnlyFromConfirmed(t *testing.T) {
	appt := pendingAppointment()

	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return appt, nil
		},
	}
	svc := newTestService(appts, nil, nil, nil)

	_, err := svc.Complete(context.Background(), adminActor(), appt.ID.String(), nil)
	var invalidErr *InvalidTransitionError
	require.ErrorAs(t, err, &invalidErr)

	appt.Status = entity.AppointmentStatusConfirmed
	resp, err := svc.Complete(context.Background(), adminActor(), appt.ID.String(), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCompleted, resp.Status)
}

func TestCancelFromTerminalStatusRejected(t *testing.T) {
	for _, status := range []entity.AppointmentStatus{
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			appt := pendingAppointment()
			appt.Status = status

			appts := &stubAppointmentRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
					return appt, nil
				},
			}
			svc := newTestService(appts, nil, nil, nil)

			_, err := svc.Cancel(context.Background(), adminActor(), appt.ID.String(), nil)
			var invalidErr *InvalidTransitionError
			require.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, status, invalidErr.Current)
		})
	}
}

func TestCancelByOwner(t *testing.T) {
	patientID := uuid.New()
	appt := pendingAppointment()
	appt.PatientID = &patientID

	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			a := *appt
			return &a, nil
		},
	}
	svc := newTestService(appts, nil, nil, nil)

	// A different patient cannot touch it.
	_, err := svc.Cancel(context.Background(), Actor{ID: uuid.New(), Role: entity.RolePatient}, appt.ID.String(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")

	// The owner can.
	resp, err := svc.Cancel(context.Background(), Actor{ID: patientID, Role: entity.RolePatient}, appt.ID.String(), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, resp.Status)
}

func TestTransitionInvalidIDFormat(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	_, err := svc.Approve(context.Background(), adminActor(), "not-a-uuid", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid appointment ID format")
}

// ==================== reschedule ====================

func TestRescheduleResetsConfirmedToPending(t *testing.T) {
	patientID := uuid.New()
	appt := pendingAppointment()
	appt.Status = entity.AppointmentStatusConfirmed
	appt.PatientID = &patientID

	var gotFrom, gotTo entity.AppointmentStatus
	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			a := *appt
			return &a, nil
		},
		rescheduleIfFn: func(ctx context.Context, id uuid.UUID, newDate, newTime string, from, to entity.AppointmentStatus) (bool, error) {
			gotFrom, gotTo = from, to
			assert.Equal(t, "2026-08-01", newDate)
			assert.Equal(t, "14:00", newTime)
			return true, nil
		},
	}
	acts := &stubActivityRepo{}
	svc := newTestService(appts, acts, nil, nil)

	resp, err := svc.Reschedule(context.Background(), Actor{ID: patientID, Role: entity.RolePatient}, appt.ID.String(), &request.RescheduleRequest{
		NewDate: "2026-08-01",
		NewTime: "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AppointmentStatusConfirmed, gotFrom)
	assert.Equal(t, entity.AppointmentStatusPending, gotTo, "reschedule needs re-approval")
	assert.Equal(t, entity.AppointmentStatusPending, resp.Status)
	assert.Equal(t, "2026-08-01", resp.AppointmentDate)
	assert.Equal(t, "14:00", resp.AppointmentTime)
	assert.Equal(t, "2026-07-01", resp.PreferredDate, "original request is preserved")

	require.Len(t, acts.created, 1)
	assert.Equal(t, entity.ActivityActionReschedule, acts.created[0].Action)
	assert.Contains(t, string(acts.created[0].Metadata), "2026-08-01")
	assert.Contains(t, string(acts.created[0].Metadata), "old_date")
}

func TestRescheduleRejectsPastDate(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	_, err := svc.Reschedule(context.Background(), adminActor(), uuid.NewString(), &request.RescheduleRequest{
		NewDate: "2026-01-01",
		NewTime: "09:00",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "past")
}

func TestRescheduleAcceptsTodayLateEveningWestOfUTC(t *testing.T) {
	appt := pendingAppointment()

	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			a := *appt
			return &a, nil
		},
	}
	svc := newTestService(appts, &stubActivityRepo{}, nil, nil)
	// 18:00 on June 15 in UTC-7 is already June 16 in UTC. Rescheduling to
	// the local "today" must not be treated as a past date.
	svc.now = func() time.Time {
		return time.Date(2026, 6, 15, 18, 0, 0, 0, time.FixedZone("UTC-7", -7*3600))
	}

	_, err := svc.Reschedule(context.Background(), adminActor(), appt.ID.String(), &request.RescheduleRequest{
		NewDate: "2026-06-15",
		NewTime: "09:00",
	})
	require.NoError(t, err)
}

func TestRescheduleTerminalRejected(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = entity.AppointmentStatusCompleted

	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return appt, nil
		},
	}
	svc := newTestService(appts, nil, nil, nil)

	_, err := svc.Reschedule(context.Background(), adminActor(), appt.ID.String(), &request.RescheduleRequest{
		NewDate: "2026-08-01",
		NewTime: "14:00",
	})
	var invalidErr *InvalidTransitionError
	require.ErrorAs(t, err, &invalidErr)
}

// ==================== queries ====================

func TestGetByIDEnforcesOwnership(t *testing.T) {
	patientID := uuid.New()
	appt := pendingAppointment()
	appt.PatientID = &patientID

	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return appt, nil
		},
	}
	svc := newTestService(appts, nil, nil, nil)

	_, err := svc.GetByID(context.Background(), Actor{ID: uuid.New(), Role: entity.RolePatient}, appt.ID.String())
	require.Error(t, err)

	resp, err := svc.GetByID(context.Background(), Actor{ID: patientID, Role: entity.RolePatient}, appt.ID.String())
	require.NoError(t, err)
	assert.Equal(t, appt.ID.String(), resp.ID)

	_, err = svc.GetByID(context.Background(), adminActor(), appt.ID.String())
	assert.NoError(t, err)
}

func TestStatusCountsMapsAllStatuses(t *testing.T) {
	patientID := uuid.New()
	appts := &stubAppointmentRepo{
		countByStatusFn: func(ctx context.Context, id uuid.UUID) (map[entity.AppointmentStatus]int64, error) {
			return map[entity.AppointmentStatus]int64{
				entity.AppointmentStatusPending:   2,
				entity.AppointmentStatusConfirmed: 1,
				entity.AppointmentStatusCompleted: 5,
			}, nil
		},
	}
	svc := newTestService(appts, nil, nil, nil)

	counts, err := svc.StatusCounts(context.Background(), Actor{ID: patientID, Role: entity.RolePatient}, patientID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Pending)
	assert.Equal(t, int64(1), counts.Confirmed)
	assert.Equal(t, int64(5), counts.Completed)
	assert.Equal(t, int64(0), counts.Cancelled, "missing statuses read as zero")

	// Another patient cannot read these counts.
	_, err = svc.StatusCounts(context.Background(), Actor{ID: uuid.New(), Role: entity.RolePatient}, patientID.String())
	require.Error(t, err)
}

func TestCheckReturningClientPrefillIsIdentityOnly(t *testing.T) {
	phone := "5551234567"
	dob := "1985-03-20"
	patients := &stubPatientRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entity.Patient, error) {
			return &entity.Patient{
				Base:        entity.Base{ID: uuid.New()},
				FirstName:   "Jane",
				LastName:    "Doe",
				Email:       email,
				Phone:       &phone,
				DateOfBirth: &dob,
			}, nil
		},
	}
	svc := newTestService(nil, nil, patients, nil)

	resp, err := svc.CheckReturningClient(context.Background(), &request.CheckReturningClientRequest{
		Email: "jane.doe@example.com",
	})
	require.NoError(t, err)
	assert.True(t, resp.Match)
	require.NotNil(t, resp.Prefill)
	assert.Equal(t, "Jane", resp.Prefill.FirstName)
	assert.Equal(t, phone, resp.Prefill.Phone)
	assert.Equal(t, dob, resp.Prefill.DateOfBirth)
}

func TestCheckReturningClientNoMatch(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	resp, err := svc.CheckReturningClient(context.Background(), &request.CheckReturningClientRequest{
		Email: "nobody@example.com",
	})
	require.NoError(t, err)
	assert.False(t, resp.Match)
	assert.Nil(t, resp.Prefill)
}

func TestActivityTrailOrderedFromRepo(t *testing.T) {
	appt := pendingAppointment()
	a1 := &entity.AppointmentActivity{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: fixedNow},
		AppointmentID: appt.ID,
		Action:        entity.ActivityActionApprove,
		FromStatus:    entity.AppointmentStatusPending,
		ToStatus:      entity.AppointmentStatusConfirmed,
	}
	a2 := &entity.AppointmentActivity{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: fixedNow.Add(time.Hour)},
		AppointmentID: appt.ID,
		Action:        entity.ActivityActionComplete,
		FromStatus:    entity.AppointmentStatusConfirmed,
		ToStatus:      entity.AppointmentStatusCompleted,
	}

	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return appt, nil
		},
	}
	acts := &stubActivityRepo{
		findFn: func(ctx context.Context, appointmentID uuid.UUID) ([]*entity.AppointmentActivity, error) {
			return []*entity.AppointmentActivity{a1, a2}, nil
		},
	}
	svc := newTestService(appts, acts, nil, nil)

	trail, err := svc.ActivityTrail(context.Background(), adminActor(), appt.ID.String())
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "approve", trail[0].Action)
	assert.Equal(t, "complete", trail[1].Action)
}

func TestTransitionRepositoryErrorPropagates(t *testing.T) {
	appt := pendingAppointment()
	appts := &stubAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return appt, nil
		},
		updateStatusIfFn: func(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (bool, error) {
			return false, errors.New("connection reset")
		},
	}
	svc := newTestService(appts, nil, nil, nil)

	_, err := svc.Approve(context.Background(), adminActor(), appt.ID.String(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
