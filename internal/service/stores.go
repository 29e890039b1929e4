package service

import (
	"context"
	"time"

	"github.com/clinicabemestar/clinic-api/internal/model"
)

// Storage contracts the services depend on. The pgx repositories satisfy
// them; tests substitute in-memory fakes. All reads reflect committed
// state only.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type SpecialtyStore interface {
	Create(ctx context.Context, specialty *model.Specialty) error
	GetByID(ctx context.Context, id string) (*model.Specialty, error)
	GetAll(ctx context.Context) ([]*model.Specialty, error)
	Update(ctx context.Context, specialty *model.Specialty) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type DoctorStore interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetByID(ctx context.Context, id string) (*model.Doctor, error)
	GetAll(ctx context.Context) ([]*model.Doctor, error)
	GetBySpecialtyID(ctx context.Context, specialtyID string) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	CountBySpecialtyID(ctx context.Context, specialtyID string) (int64, error)
}

type AppointmentStore interface {
	// Create must reject an insert that would leave two active
	// appointments for one doctor with intersecting intervals, reporting
	// repository.ErrOverlap. The pgx implementation does this with a
	// serializable check-then-insert transaction backed by an exclusion
	// constraint.
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	GetActiveByDoctorID(ctx context.Context, doctorID string) ([]*model.Appointment, error)
	GetByPatientID(ctx context.Context, patientID string) ([]*model.Appointment, error)
	GetAll(ctx context.Context) ([]*model.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus) (int64, error)
	UpdateStatusIfPatient(ctx context.Context, id, patientID string, status model.AppointmentStatus) (int64, error)
	HasOverlap(ctx context.Context, doctorID string, start, end time.Time) (bool, error)
	HasFuturePending(ctx context.Context, doctorID string) (bool, error)
}
