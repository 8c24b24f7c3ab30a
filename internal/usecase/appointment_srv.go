package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/request"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/response"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/metrics"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor is the authenticated identity invoking a transition. The zero value
// (Anonymous) is used for the public wizard submission.
type Actor struct {
	ID   uuid.UUID
	Role entity.PatientRole
}

func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

type AppointmentService interface {
	// Public endpoints
	Create(ctx context.Context, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error)
	CheckReturningClient(ctx context.Context, req *request.CheckReturningClientRequest) (*response.CheckReturningClientResponse, error)

	// Patient + admin
	GetByID(ctx context.Context, actor Actor, appointmentID string) (*response.AppointmentResponse, error)
	ListForPatient(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AppointmentResponse], error)
	Cancel(ctx context.Context, actor Actor, appointmentID string, req *request.TransitionRequest) (*response.AppointmentResponse, error)
	Reschedule(ctx context.Context, actor Actor, appointmentID string, req *request.RescheduleRequest) (*response.AppointmentResponse, error)

	// Admin endpoints
	Approve(ctx context.Context, actor Actor, appointmentID string, req *request.TransitionRequest) (*response.AppointmentResponse, error)
	Decline(ctx context.Context, actor Actor, appointmentID string, req *request.TransitionRequest) (*response.AppointmentResponse, error)
	Complete(ctx context.Context, actor Actor, appointmentID string, req *request.TransitionRequest) (*response.AppointmentResponse, error)
	List(ctx context.Context, req *request.ListAppointmentsRequest) (*response.PaginatedResponse[response.AppointmentResponse], error)
	ActivityTrail(ctx context.Context, actor Actor, appointmentID string) ([]response.ActivityResponse, error)
	StatusCounts(ctx context.Context, actor Actor, patientID string) (*response.StatusCountsResponse, error)
}

type appointmentService struct {
	repo    *repository.Repository
	metrics *metrics.BookingMetrics
	log     *zap.Logger
	now     func() time.Time
}

func NewAppointmentService(repo *repository.Repository, m *metrics.BookingMetrics, log *zap.Logger) AppointmentService {
	return &appointmentService{
		repo:    repo,
		metrics: m,
		log:     log.With(zap.String("service", "appointment")),
		now:     time.Now,
	}
}

// ==================== CREATE ====================

func (s *appointmentService) Create(ctx context.Context, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error) {
	// Shape validation first
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create appointment validation failed", zap.Any("errors", errs))
		s.metrics.ObserveSubmission("rejected")
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}

	form := formFromRequest(req)

	// The client's returning flag is only honored when the email really
	// matches an existing patient; otherwise the full intake set applies.
	var patient *entity.Patient
	if req.Email != "" {
		var err error
		patient, err = s.repo.Patient.FindByEmail(ctx, req.Email)
		if err != nil {
			s.log.Error("Failed to look up patient for submission", zap.Error(err), zap.String("email", req.Email))
			return nil, fmt.Errorf("check returning patient: %w", err)
		}
	}
	form.ReturningClient = req.ReturningClient && patient != nil

	// Re-run every wizard rule server-side; the client is not trusted.
	if errs := wizard.ValidateFields(form, wizard.AllRequiredFields(form), s.now()); errs != nil {
		s.log.Warn("Create appointment intake validation failed", zap.Any("errors", errs))
		s.metrics.ObserveSubmission("rejected")
		return nil, &FieldValidationError{Fields: errs}
	}

	// Validate service reference
	svc, err := s.repo.Service.FindByCode(ctx, req.Service)
	if err != nil {
		return nil, fmt.Errorf("look up service %s: %w", req.Service, err)
	}
	if svc == nil || !svc.IsActive || !svc.UserBookable {
		return nil, fmt.Errorf("service %s not found", req.Service)
	}

	mode := entity.AppointmentMode(req.AppointmentType)
	if mode == "" {
		mode = entity.AppointmentModeTelehealth
	}

	// Duplicate-submission suppression: a browser retry of the same slot
	// returns the already-created pending appointment instead of a twin.
	existing, err := s.repo.Appointment.FindPendingDuplicate(ctx, req.Email, req.Service, req.PreferredDate, req.PreferredTime)
	if err != nil {
		return nil, fmt.Errorf("check duplicate submission: %w", err)
	}
	if existing != nil {
		s.log.Info("Duplicate submission suppressed",
			zap.String("appointment_id", existing.ID.String()),
			zap.String("email", req.Email),
		)
		s.metrics.ObserveSubmission("duplicate")
		resp := response.AppointmentToResponse(existing)
		resp.ServiceName = svc.Name
		return &resp, nil
	}

	now := s.now()
	appt := &entity.Appointment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReferenceCode: utils.GenerateReferenceCode(),
		ServiceCode:   req.Service,
		Mode:          mode,

		PreferredDate:   req.PreferredDate,
		PreferredTime:   req.PreferredTime,
		AppointmentDate: req.PreferredDate,
		AppointmentTime: req.PreferredTime,

		Status: entity.AppointmentStatusPending,

		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,

		ReasonForVisit:     req.ReasonForVisit,
		Symptoms:           req.Symptoms,
		CurrentMedications: req.CurrentMedications,
		Allergies:          req.Allergies,

		HasInsurance:          req.HasInsurance,
		InsuranceProvider:     req.InsuranceProvider,
		InsurancePolicyNumber: req.InsurancePolicyNumber,
		SubscriberName:        req.SubscriberName,

		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,

		TermsAccepted:      req.Terms,
		HipaaConsent:       req.HipaaConsent,
		ConsentToTreatment: req.ConsentToTreatment,
		PrivacyPolicy:      req.PrivacyPolicy,
	}

	if req.AlternateDate != "" {
		appt.AlternateDate = &req.AlternateDate
	}
	if req.AlternateTime != "" {
		appt.AlternateTime = &req.AlternateTime
	}
	if patient != nil {
		id := patient.ID
		appt.PatientID = &id
	}

	// Creation itself is not an audit transition; only status changes are.
	if err := s.repo.Appointment.Create(ctx, appt); err != nil {
		s.log.Error("Failed to create appointment",
			zap.Error(err),
			zap.String("email", req.Email),
			zap.String("service", req.Service),
		)
		s.metrics.ObserveSubmission("error")
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.log.Info("Appointment created",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("reference_code", appt.ReferenceCode),
		zap.String("service", appt.ServiceCode),
		zap.String("preferred_date", appt.PreferredDate),
		zap.String("preferred_time", appt.PreferredTime),
	)
	s.metrics.ObserveSubmission("created")

	resp := response.AppointmentToResponse(appt)
	resp.ServiceName = svc.Name
	return &resp, nil
}

func formFromRequest(req *request.CreateAppointmentRequest) wizard.Form {
	return wizard.Form{
		Service:         req.Service,
		AppointmentType: req.AppointmentType,
		PreferredDate:   req.PreferredDate,
		PreferredTime:   req.PreferredTime,
		AlternateDate:   req.AlternateDate,
		AlternateTime:   req.AlternateTime,

		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,

		HasInsurance:          req.HasInsurance,
		InsuranceProvider:     req.InsuranceProvider,
		InsurancePolicyNumber: req.InsurancePolicyNumber,
		SubscriberName:        req.SubscriberName,

		ReasonForVisit:     req.ReasonForVisit,
		Symptoms:           req.Symptoms,
		CurrentMedications: req.CurrentMedications,
		Allergies:          req.Allergies,

		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,

		ReturningClient:    req.ReturningClient,
		Terms:              req.Terms,
		HipaaConsent:       req.HipaaConsent,
		ConsentToTreatment: req.ConsentToTreatment,
		PrivacyPolicy:      req.PrivacyPolicy,
	}
}

// ==================== RETURNING CLIENT LOOKUP ====================

func (s *appointmentService) CheckReturningClient(ctx context.Context, req *request.CheckReturningClientRequest) (*response.CheckReturningClientResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}

	patient, err := s.repo.Patient.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check returning client", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check returning client: %w", err)
	}

	if patient == nil {
		return &response.CheckReturningClientResponse{Match: false}, nil
	}

	// Identity fields only; medical history never leaves this endpoint.
	prefill := &response.PrefillPayload{
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
		Email:     patient.Email,
	}
	if patient.Phone != nil {
		prefill.Phone = *patient.Phone
	}
	if patient.DateOfBirth != nil {
		prefill.DateOfBirth = *patient.DateOfBirth
	}

	return &response.CheckReturningClientResponse{Match: true, Prefill: prefill}, nil
}

// ==================== TRANSITIONS ====================

// transition runs the shared conditional-update flow for a single-source
// transition. The conditional write is what serializes racing requests: the
// loser sees applied=false and gets a conflict with the fresh status.
func (s *appointmentService) transition(
	ctx context.Context,
	actor Actor,
	appointmentID string,
	action entity.ActivityAction,
	from []entity.AppointmentStatus,
	to entity.AppointmentStatus,
	metadata map[string]any,
	notes *string,
) (*entity.Appointment, error) {
	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	appt, err := s.repo.Appointment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment %s: %w", appointmentID, err)
	}
	if appt == nil {
		return nil, fmt.Errorf("appointment %s not found", appointmentID)
	}

	expected := entity.AppointmentStatus("")
	for _, st := range from {
		if appt.Status == st {
			expected = st
			break
		}
	}
	if expected == "" {
		s.metrics.ObserveTransition(string(action), "invalid")
		return nil, &InvalidTransitionError{Action: action, Current: appt.Status}
	}

	applied, err := s.repo.Appointment.UpdateStatusIf(ctx, id, expected, to)
	if err != nil {
		s.metrics.ObserveTransition(string(action), "error")
		return nil, fmt.Errorf("apply %s to appointment %s: %w", string(action), appointmentID, err)
	}
	if !applied {
		// Lost a race: report the fresh status so the caller can resync.
		current, ferr := s.repo.Appointment.FindByID(ctx, id)
		status := appt.Status
		if ferr == nil && current != nil {
			status = current.Status
		}
		s.metrics.ObserveTransition(string(action), "conflict")
		return nil, &ConflictError{Action: action, Current: status}
	}

	s.appendActivity(ctx, actor, appt.ID, action, expected, to, metadata)

	if notes != nil {
		if err := s.repo.Appointment.UpdateAdminNotes(ctx, id, *notes); err != nil {
			s.log.Warn("Failed to save transition notes",
				zap.Error(err),
				zap.String("appointment_id", appointmentID),
			)
			// The transition itself stands
		}
		appt.AdminNotes = notes
	}

	appt.Status = to
	appt.UpdatedAt = s.now()

	s.log.Info("Appointment transition applied",
		zap.String("appointment_id", appointmentID),
		zap.String("action", string(action)),
		zap.String("from", string(expected)),
		zap.String("to", string(to)),
		zap.String("actor_id", actor.ID.String()),
	)
	s.metrics.ObserveTransition(string(action), "applied")

	return appt, nil
}

// appendActivity writes the immutable audit row for an applied transition.
func (s *appointmentService) appendActivity(
	ctx context.Context,
	actor Actor,
	appointmentID uuid.UUID,
	action entity.ActivityAction,
	from, to entity.AppointmentStatus,
	metadata map[string]any,
) {
	var raw json.RawMessage
	if metadata != nil {
		if data, err := json.Marshal(metadata); err == nil {
			raw = data
		}
	}

	activity := &entity.AppointmentActivity{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		AppointmentID: appointmentID,
		Action:        action,
		FromStatus:    from,
		ToStatus:      to,
		Metadata:      raw,
	}
	if actor.ID != uuid.Nil {
		id := actor.ID
		activity.ActorID = &id
	}

	if err := s.repo.Activity.Create(ctx, activity); err != nil {
		// The status change is already durable; losing the audit row is
		// logged loudly rather than rolling the transition back.
		s.log.Error("Failed to append activity",
			zap.Error(err),
			zap.String("appointment_id", appointmentID.String()),
			zap.String("action", string(action)),
		)
	}
}

func (s *appointmentService) Approve(ctx context.Context, actor Actor, appointmentID string, req *request.TransitionRequest) (*response.AppointmentResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("unauthorized to approve appointments")
	}

	appt, err := s.transition(ctx, actor, appointmentID, entity.ActivityActionApprove,
		[]entity.AppointmentStatus{entity.AppointmentStatusPending},
		entity.AppointmentStatusConfirmed, nil, transitionNotes(req))
	if err != nil {
		return nil, err
	}

	resp := response.AppointmentToResponse(appt)
	return &resp, nil
}

func (s *appointmentService) Decline(ctx context.Context, actor Actor, appointmentID string, req *request.TransitionRequest) (*response.AppointmentResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("unauthorized to decline appointments")
	}

	appt, err := s.transition(ctx, actor, appointmentID, entity.ActivityActionDecline,
		[]entity.AppointmentStatus{entity.AppointmentStatusPending},
		entity.AppointmentStatusCancelled, nil, transitionNotes(req))
	if err != nil {
		return nil, err
	}

	resp := response.AppointmentToResponse(appt)
	return &resp, nil
}

func (s *appointmentService) Complete(ctx context.Context, actor Actor, appointmentID string, req *request.TransitionRequest) (*response.AppointmentResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("unauthorized to complete appointments")
	}

	appt, err := s.transition(ctx, actor, appointmentID, entity.ActivityActionComplete,
		[]entity.AppointmentStatus{entity.AppointmentStatusConfirmed},
		entity.AppointmentStatusCompleted, nil, transitionNotes(req))
	if err != nil {
		return nil, err
	}

	resp := response.AppointmentToResponse(appt)
	return &resp, nil
}

func (s *appointmentService) Cancel(ctx context.Context, actor Actor, appointmentID string, req *request.TransitionRequest) (*response.AppointmentResponse, error) {
	if err := s.authorizeOwnerOrAdmin(ctx, actor, appointmentID, "cancel"); err != nil {
		return nil, err
	}

	appt, err := s.transition(ctx, actor, appointmentID, entity.ActivityActionCancel,
		[]entity.AppointmentStatus{entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed},
		entity.AppointmentStatusCancelled, nil, transitionNotes(req))
	if err != nil {
		return nil, err
	}

	resp := response.AppointmentToResponse(appt)
	return &resp, nil
}

func (s *appointmentService) Reschedule(ctx context.Context, actor Actor, appointmentID string, req *request.RescheduleRequest) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}

	newDate, err := time.Parse("2006-01-02", req.NewDate)
	if err != nil {
		return nil, fmt.Errorf("invalid reschedule date %s", req.NewDate)
	}
	// Compare calendar days. The parsed date is UTC midnight, so today is
	// built the same way from the clock's local date.
	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if newDate.Before(today) {
		return nil, fmt.Errorf("cannot reschedule to a past date")
	}

	if err := s.authorizeOwnerOrAdmin(ctx, actor, appointmentID, "reschedule"); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	appt, err := s.repo.Appointment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment %s: %w", appointmentID, err)
	}
	if appt == nil {
		return nil, fmt.Errorf("appointment %s not found", appointmentID)
	}

	if appt.Status != entity.AppointmentStatusPending && appt.Status != entity.AppointmentStatusConfirmed {
		s.metrics.ObserveTransition(string(entity.ActivityActionReschedule), "invalid")
		return nil, &InvalidTransitionError{Action: entity.ActivityActionReschedule, Current: appt.Status}
	}

	// A confirmed appointment drops back to pending and needs re-approval.
	// Intentional policy, do not "fix" silently.
	expected := appt.Status
	applied, err := s.repo.Appointment.RescheduleIf(ctx, id, req.NewDate, req.NewTime,
		expected, entity.AppointmentStatusPending)
	if err != nil {
		s.metrics.ObserveTransition(string(entity.ActivityActionReschedule), "error")
		return nil, fmt.Errorf("reschedule appointment %s: %w", appointmentID, err)
	}
	if !applied {
		current, ferr := s.repo.Appointment.FindByID(ctx, id)
		status := appt.Status
		if ferr == nil && current != nil {
			status = current.Status
		}
		s.metrics.ObserveTransition(string(entity.ActivityActionReschedule), "conflict")
		return nil, &ConflictError{Action: entity.ActivityActionReschedule, Current: status}
	}

	s.appendActivity(ctx, actor, appt.ID, entity.ActivityActionReschedule,
		expected, entity.AppointmentStatusPending, map[string]any{
			"old_date": appt.AppointmentDate,
			"old_time": appt.AppointmentTime,
			"new_date": req.NewDate,
			"new_time": req.NewTime,
		})

	appt.AppointmentDate = req.NewDate
	appt.AppointmentTime = req.NewTime
	appt.Status = entity.AppointmentStatusPending
	appt.UpdatedAt = s.now()

	s.log.Info("Appointment rescheduled",
		zap.String("appointment_id", appointmentID),
		zap.String("new_date", req.NewDate),
		zap.String("new_time", req.NewTime),
		zap.String("from", string(expected)),
	)
	s.metrics.ObserveTransition(string(entity.ActivityActionReschedule), "applied")

	resp := response.AppointmentToResponse(appt)
	return &resp, nil
}

func transitionNotes(req *request.TransitionRequest) *string {
	if req == nil {
		return nil
	}
	return req.Notes
}

// authorizeOwnerOrAdmin permits admins always and patients only on their own
// appointment.
func (s *appointmentService) authorizeOwnerOrAdmin(ctx context.Context, actor Actor, appointmentID, action string) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.ID == uuid.Nil {
		return fmt.Errorf("unauthorized to %s this appointment", action)
	}

	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	appt, err := s.repo.Appointment.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load appointment %s: %w", appointmentID, err)
	}
	if appt == nil {
		return fmt.Errorf("appointment %s not found", appointmentID)
	}
	if appt.PatientID == nil || *appt.PatientID != actor.ID {
		return fmt.Errorf("unauthorized to %s this appointment", action)
	}

	return nil
}

// ==================== QUERIES ====================

func (s *appointmentService) GetByID(ctx context.Context, actor Actor, appointmentID string) (*response.AppointmentResponse, error) {
	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	appt, err := s.repo.Appointment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment %s: %w", appointmentID, err)
	}
	if appt == nil {
		return nil, fmt.Errorf("appointment %s not found", appointmentID)
	}

	if !actor.IsAdmin() && (appt.PatientID == nil || *appt.PatientID != actor.ID) {
		return nil, fmt.Errorf("unauthorized to view this appointment")
	}

	resp := response.AppointmentToResponse(appt)
	if svc, _ := s.repo.Service.FindByCode(ctx, appt.ServiceCode); svc != nil {
		resp.ServiceName = svc.Name
	}
	return &resp, nil
}

func (s *appointmentService) ListForPatient(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AppointmentResponse], error) {
	if actor.ID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized to list appointments")
	}

	patientID := actor.ID
	filter := repository.AppointmentFilter{
		PatientID: &patientID,
		Limit:     req.Limit(),
		Offset:    req.Offset(),
	}

	return s.listWithFilter(ctx, filter, req.Page, req.Limit())
}

func (s *appointmentService) List(ctx context.Context, req *request.ListAppointmentsRequest) (*response.PaginatedResponse[response.AppointmentResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}

	filter := repository.AppointmentFilter{
		Status:   entity.AppointmentStatus(req.Status),
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Search:   req.Search,
		Limit:    req.Limit(),
		Offset:   req.Offset(),
	}

	return s.listWithFilter(ctx, filter, req.Page, req.Limit())
}

func (s *appointmentService) listWithFilter(ctx context.Context, filter repository.AppointmentFilter, page, perPage int) (*response.PaginatedResponse[response.AppointmentResponse], error) {
	appts, err := s.repo.Appointment.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list appointments", zap.Error(err))
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	total, err := s.repo.Appointment.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count appointments", zap.Error(err))
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	// One catalog lookup per distinct service code
	names := make(map[string]string)
	responses := make([]response.AppointmentResponse, len(appts))
	for i, appt := range appts {
		resp := response.AppointmentToResponse(appt)
		name, ok := names[appt.ServiceCode]
		if !ok {
			if svc, _ := s.repo.Service.FindByCode(ctx, appt.ServiceCode); svc != nil {
				name = svc.Name
			}
			names[appt.ServiceCode] = name
		}
		resp.ServiceName = name
		responses[i] = resp
	}

	return response.NewPaginatedResponse(responses, page, perPage, total), nil
}

func (s *appointmentService) ActivityTrail(ctx context.Context, actor Actor, appointmentID string) ([]response.ActivityResponse, error) {
	if err := s.authorizeOwnerOrAdmin(ctx, actor, appointmentID, "view history of"); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	activities, err := s.repo.Activity.FindByAppointmentID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load activity trail",
			zap.Error(err),
			zap.String("appointment_id", appointmentID),
		)
		return nil, fmt.Errorf("load activity trail: %w", err)
	}

	responses := make([]response.ActivityResponse, len(activities))
	for i, activity := range activities {
		responses[i] = response.ActivityToResponse(activity)
	}

	return responses, nil
}

func (s *appointmentService) StatusCounts(ctx context.Context, actor Actor, patientID string) (*response.StatusCountsResponse, error) {
	id, err := uuid.Parse(patientID)
	if err != nil {
		return nil, fmt.Errorf("invalid patient ID format %s: %w", patientID, err)
	}

	if !actor.IsAdmin() && actor.ID != id {
		return nil, fmt.Errorf("unauthorized to view these counts")
	}

	counts, err := s.repo.Appointment.CountByStatusForPatient(ctx, id)
	if err != nil {
		s.log.Error("Failed to load status counts",
			zap.Error(err),
			zap.String("patient_id", patientID),
		)
		return nil, fmt.Errorf("load status counts: %w", err)
	}

	return &response.StatusCountsResponse{
		Pending:   counts[entity.AppointmentStatusPending],
		Confirmed: counts[entity.AppointmentStatusConfirmed],
		Completed: counts[entity.AppointmentStatusCompleted],
		Cancelled: counts[entity.AppointmentStatusCancelled],
	}, nil
}
