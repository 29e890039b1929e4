package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/model"
	"github.com/clinicabemestar/clinic-api/internal/repository"
)

// Requested start times outside this range are garbage input, rejected
// before any storage access.
const (
	minBookingYear = 2020
	maxBookingYear = 2100
)

type BookingService struct {
	doctorRepo      DoctorStore
	appointmentRepo AppointmentStore
	logger          *zap.Logger
}

func NewBookingService(
	doctorRepo DoctorStore,
	appointmentRepo AppointmentStore,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Book reserves a 45-minute appointment starting at start. The slot grid
// the patient chose from may be stale by now, so availability is
// re-checked against committed state; the store's serializable
// check-then-insert closes the remaining race, and either guard firing
// surfaces as ErrSlotTaken with no row written.
func (s *BookingService) Book(ctx context.Context, doctorID, patientID string, start time.Time) (*model.Appointment, error) {
	if start.IsZero() {
		return nil, invalid("start_time", "a start time is required")
	}
	if y := start.Year(); y < minBookingYear || y >= maxBookingYear {
		return nil, invalid("start_time", "please select a valid time")
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// End time is always derived; a client-supplied end is never trusted.
	end := start.Add(model.AppointmentDuration)

	taken, err := s.appointmentRepo.HasOverlap(ctx, doctorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	appointment := &model.Appointment{
		ID:        uuid.New().String(),
		DoctorID:  doctorID,
		PatientID: patientID,
		StartTime: start,
		EndTime:   end,
		Status:    model.StatusPending,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			// a concurrent booking won the slot after our pre-check
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logger.Info("Appointment booked",
		zap.String("appointment_id", appointment.ID),
		zap.String("doctor_id", doctorID),
		zap.String("patient_id", patientID),
		zap.Time("start_time", start),
	)

	return appointment, nil
}

// Cancel lets a patient cancel their own appointment. A missing row and a
// row owned by another patient produce the same outcome so that callers
// cannot probe for existence.
func (s *BookingService) Cancel(ctx context.Context, appointmentID, patientID string) error {
	affected, err := s.appointmentRepo.UpdateStatusIfPatient(ctx, appointmentID, patientID, model.StatusCanceled)
	if err != nil {
		return fmt.Errorf("cancel appointment: %w", err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	s.logger.Info("Appointment canceled",
		zap.String("appointment_id", appointmentID),
		zap.String("patient_id", patientID),
	)

	return nil
}

// Complete marks an appointment as done. Administrative callers only;
// the router enforces the role before this is reachable.
func (s *BookingService) Complete(ctx context.Context, appointmentID string) error {
	return s.adminTransition(ctx, appointmentID, model.StatusCompleted)
}

// AdminCancel cancels an appointment on the clinic's behalf, without an
// ownership check.
func (s *BookingService) AdminCancel(ctx context.Context, appointmentID string) error {
	return s.adminTransition(ctx, appointmentID, model.StatusCanceled)
}

func (s *BookingService) adminTransition(ctx context.Context, appointmentID string, status model.AppointmentStatus) error {
	affected, err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, status)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	s.logger.Info("Appointment status changed",
		zap.String("appointment_id", appointmentID),
		zap.String("status", string(status)),
	)

	return nil
}

// PatientAppointments returns the patient's bookings, newest first.
func (s *BookingService) PatientAppointments(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	return s.appointmentRepo.GetByPatientID(ctx, patientID)
}

// AllAppointments returns every appointment for the admin overview.
func (s *BookingService) AllAppointments(ctx context.Context) ([]*model.Appointment, error) {
	return s.appointmentRepo.GetAll(ctx)
}
