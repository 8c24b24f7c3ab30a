package repository

import (
	"github.com/pellyjosh/psychiatrist-sub000/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Patient         PatientRepository
	Session         SessionRepository
	Appointment     AppointmentRepository
	Activity        ActivityRepository
	Service         ServiceRepository
	AppointmentType AppointmentTypeRepository
	Resource        ResourceRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Patient:         NewPatientRepository(db, log),
		Session:         NewSessionRepository(db, log),
		Appointment:     NewAppointmentRepository(db, log),
		Activity:        NewActivityRepository(db, log),
		Service:         NewServiceRepository(db, log),
		AppointmentType: NewAppointmentTypeRepository(db, log),
		Resource:        NewResourceRepository(db, log),
	}
}
