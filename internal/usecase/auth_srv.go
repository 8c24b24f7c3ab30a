package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/request"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/response"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, patientID uuid.UUID) (*response.PatientResponse, error)
	UpdateProfile(ctx context.Context, patientID uuid.UUID, req *request.UpdateProfileRequest) (*response.PatientResponse, error)
	DeleteAccount(ctx context.Context, patientID uuid.UUID) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.Patient.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check existing patient", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("check existing patient: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s is already registered", email)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	patient := &entity.Patient{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Role:         entity.RolePatient,
		PasswordHash: &hash,
	}
	if req.Phone != "" {
		phone := req.Phone
		patient.Phone = &phone
	}

	if err := s.repo.Patient.Create(ctx, patient); err != nil {
		s.log.Error("Failed to register patient", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("register patient: %w", err)
	}

	s.log.Info("Patient registered",
		zap.String("patient_id", patient.ID.String()),
		zap.String("email", email),
	)

	session, err := s.openSession(ctx, patient.ID, nil, nil)
	if err != nil {
		return nil, err
	}

	return &response.AuthResponse{
		Patient:   response.PatientToResponse(patient),
		Token:     session.Token.String(),
		ExpiresAt: &session.ExpiresAt,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}

	patient, err := s.repo.Patient.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to load patient for login", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("load patient: %w", err)
	}
	// Same error whether the email or the password is wrong
	if patient == nil || patient.PasswordHash == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if !utils.CheckPassword(req.Password, *patient.PasswordHash) {
		s.log.Warn("Failed login attempt", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid email or password")
	}

	var ua, ip *string
	if userAgent != "" {
		ua = &userAgent
	}
	if ipAddress != "" {
		ip = &ipAddress
	}

	session, err := s.openSession(ctx, patient.ID, ua, ip)
	if err != nil {
		return nil, err
	}

	s.log.Info("Patient logged in",
		zap.String("patient_id", patient.ID.String()),
		zap.String("email", patient.Email),
	)

	return &response.AuthResponse{
		Patient:   response.PatientToResponse(patient),
		Token:     session.Token.String(),
		ExpiresAt: &session.ExpiresAt,
	}, nil
}

func (s *authService) openSession(ctx context.Context, patientID uuid.UUID, userAgent, ipAddress *string) (*entity.Session, error) {
	expiry := time.Duration(s.config.Session.ExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		PatientID: patientID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: s.now().Add(expiry),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("patient_id", patientID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("invalid session token")
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

func (s *authService) UpdateProfile(ctx context.Context, patientID uuid.UUID, req *request.UpdateProfileRequest) (*response.PatientResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}

	patient, err := s.repo.Patient.FindByID(ctx, patientID)
	if err != nil {
		s.log.Error("Failed to load patient for update", zap.Error(err), zap.String("patient_id", patientID.String()))
		return nil, fmt.Errorf("load patient: %w", err)
	}
	if patient == nil {
		return nil, fmt.Errorf("patient %s not found", patientID)
	}

	if req.FirstName != "" {
		patient.FirstName = req.FirstName
	}
	if req.LastName != "" {
		patient.LastName = req.LastName
	}
	if req.Phone != "" {
		if err := wizard.ValidatePhone(req.Phone); err != nil {
			return nil, &FieldValidationError{Fields: wizard.FieldErrors{"phone": err.Error()}}
		}
		phone := req.Phone
		patient.Phone = &phone
	}
	if req.DateOfBirth != "" {
		if err := wizard.ValidateDateOfBirth(req.DateOfBirth, s.now()); err != nil {
			return nil, &FieldValidationError{Fields: wizard.FieldErrors{"date_of_birth": err.Error()}}
		}
		dob := req.DateOfBirth
		patient.DateOfBirth = &dob
	}

	passwordChanged := false
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patient.PasswordHash = &hash
		passwordChanged = true
	}

	patient.UpdatedAt = s.now()

	if err := s.repo.Patient.Update(ctx, patient); err != nil {
		s.log.Error("Failed to update patient", zap.Error(err), zap.String("patient_id", patientID.String()))
		return nil, fmt.Errorf("update patient: %w", err)
	}

	// A password change invalidates every open session, the current one included.
	// The client must log in again with the new password.
	if passwordChanged {
		if err := s.repo.Session.RevokeAllPatientSessions(ctx, patientID); err != nil {
			s.log.Error("Failed to revoke sessions after password change",
				zap.Error(err),
				zap.String("patient_id", patientID.String()),
			)
			return nil, fmt.Errorf("revoke sessions: %w", err)
		}
	}

	s.log.Info("Patient profile updated",
		zap.String("patient_id", patientID.String()),
		zap.Bool("password_changed", passwordChanged),
	)

	resp := response.PatientToResponse(patient)
	return &resp, nil
}

func (s *authService) DeleteAccount(ctx context.Context, patientID uuid.UUID) error {
	patient, err := s.repo.Patient.FindByID(ctx, patientID)
	if err != nil {
		s.log.Error("Failed to load patient for delete", zap.Error(err), zap.String("patient_id", patientID.String()))
		return fmt.Errorf("load patient: %w", err)
	}
	if patient == nil {
		return fmt.Errorf("patient %s not found", patientID)
	}

	if err := s.repo.Session.RevokeAllPatientSessions(ctx, patientID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	if err := s.repo.Appointment.DeleteByPatient(ctx, patientID); err != nil {
		return fmt.Errorf("delete appointments: %w", err)
	}
	if err := s.repo.Patient.Delete(ctx, patientID); err != nil {
		s.log.Error("Failed to delete patient", zap.Error(err), zap.String("patient_id", patientID.String()))
		return fmt.Errorf("delete patient: %w", err)
	}

	s.log.Info("Patient account deleted",
		zap.String("patient_id", patientID.String()),
		zap.String("email", patient.Email),
	)

	return nil
}

func (s *authService) Me(ctx context.Context, patientID uuid.UUID) (*response.PatientResponse, error) {
	patient, err := s.repo.Patient.FindByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load patient %s: %w", patientID, err)
	}
	if patient == nil {
		return nil, fmt.Errorf("patient %s not found", patientID)
	}

	resp := response.PatientToResponse(patient)
	return &resp, nil
}
