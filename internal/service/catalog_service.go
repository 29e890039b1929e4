package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/model"
)

const maxNameLength = 100

// CatalogService manages the specialties and doctors patients browse.
// Mutations are administrative; the router enforces the role before any
// of them are reachable.
type CatalogService struct {
	specialtyRepo   SpecialtyStore
	doctorRepo      DoctorStore
	appointmentRepo AppointmentStore
	logger          *zap.Logger
}

func NewCatalogService(
	specialtyRepo SpecialtyStore,
	doctorRepo DoctorStore,
	appointmentRepo AppointmentStore,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		specialtyRepo:   specialtyRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

func (s *CatalogService) Specialties(ctx context.Context) ([]*model.Specialty, error) {
	return s.specialtyRepo.GetAll(ctx)
}

func (s *CatalogService) CreateSpecialty(ctx context.Context, name, imageURL string) (*model.Specialty, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "a specialty name is required")
	}
	if len(name) > maxNameLength {
		return nil, invalid("name", "the name cannot exceed 100 characters")
	}

	specialty := &model.Specialty{
		ID:       uuid.New().String(),
		Name:     name,
		ImageURL: imageURL,
	}

	if err := s.specialtyRepo.Create(ctx, specialty); err != nil {
		return nil, err
	}

	s.logger.Info("Specialty created",
		zap.String("specialty_id", specialty.ID),
		zap.String("name", name),
	)

	return specialty, nil
}

func (s *CatalogService) UpdateSpecialty(ctx context.Context, id, name, imageURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("name", "a specialty name is required")
	}
	if len(name) > maxNameLength {
		return invalid("name", "the name cannot exceed 100 characters")
	}

	affected, err := s.specialtyRepo.Update(ctx, &model.Specialty{ID: id, Name: name, ImageURL: imageURL})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSpecialtyNotFound
	}

	return nil
}

// DeleteSpecialty refuses to remove a specialty while doctors reference
// it.
func (s *CatalogService) DeleteSpecialty(ctx context.Context, id string) error {
	linked, err := s.doctorRepo.CountBySpecialtyID(ctx, id)
	if err != nil {
		return fmt.Errorf("count linked doctors: %w", err)
	}
	if linked > 0 {
		return ErrSpecialtyInUse
	}

	affected, err := s.specialtyRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSpecialtyNotFound
	}

	s.logger.Info("Specialty deleted", zap.String("specialty_id", id))
	return nil
}

func (s *CatalogService) Doctors(ctx context.Context) ([]*model.Doctor, error) {
	return s.doctorRepo.GetAll(ctx)
}

// DoctorsBySpecialty lists a specialty's doctors; an unknown specialty is
// an error, not an empty list.
func (s *CatalogService) DoctorsBySpecialty(ctx context.Context, specialtyID string) ([]*model.Doctor, error) {
	specialty, err := s.specialtyRepo.GetByID(ctx, specialtyID)
	if err != nil {
		return nil, fmt.Errorf("get specialty: %w", err)
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	return s.doctorRepo.GetBySpecialtyID(ctx, specialtyID)
}

func (s *CatalogService) CreateDoctor(ctx context.Context, name, crm, specialtyID string) (*model.Doctor, error) {
	name = strings.TrimSpace(name)
	crm = strings.TrimSpace(crm)

	if name == "" {
		return nil, invalid("name", "the doctor's name is required")
	}
	if len(name) > maxNameLength {
		return nil, invalid("name", "the name cannot exceed 100 characters")
	}
	if crm == "" {
		return nil, invalid("crm", "the license number is required")
	}

	specialty, err := s.specialtyRepo.GetByID(ctx, specialtyID)
	if err != nil {
		return nil, fmt.Errorf("get specialty: %w", err)
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	doctor := &model.Doctor{
		ID:          uuid.New().String(),
		Name:        name,
		CRM:         crm,
		SpecialtyID: specialtyID,
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	doctor.SpecialtyName = specialty.Name

	s.logger.Info("Doctor created",
		zap.String("doctor_id", doctor.ID),
		zap.String("name", name),
		zap.String("specialty_id", specialtyID),
	)

	return doctor, nil
}

func (s *CatalogService) UpdateDoctor(ctx context.Context, id, name, crm, specialtyID string) error {
	name = strings.TrimSpace(name)
	crm = strings.TrimSpace(crm)

	if name == "" {
		return invalid("name", "the doctor's name is required")
	}
	if crm == "" {
		return invalid("crm", "the license number is required")
	}

	specialty, err := s.specialtyRepo.GetByID(ctx, specialtyID)
	if err != nil {
		return fmt.Errorf("get specialty: %w", err)
	}
	if specialty == nil {
		return ErrSpecialtyNotFound
	}

	affected, err := s.doctorRepo.Update(ctx, &model.Doctor{
		ID:          id,
		Name:        name,
		CRM:         crm,
		SpecialtyID: specialtyID,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}

	return nil
}

// DeleteDoctor refuses to remove a doctor with upcoming active
// appointments.
func (s *CatalogService) DeleteDoctor(ctx context.Context, id string) error {
	busy, err := s.appointmentRepo.HasFuturePending(ctx, id)
	if err != nil {
		return fmt.Errorf("check appointments: %w", err)
	}
	if busy {
		return ErrDoctorHasAppointments
	}

	affected, err := s.doctorRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}

	s.logger.Info("Doctor deleted", zap.String("doctor_id", id))
	return nil
}
