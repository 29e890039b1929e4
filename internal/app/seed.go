package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/auth"
	"github.com/clinicabemestar/clinic-api/internal/config"
	"github.com/clinicabemestar/clinic-api/internal/model"
	"github.com/clinicabemestar/clinic-api/internal/repository"
)

// Seed bootstraps the admin account and the initial catalog. Safe to run
// on every startup: existing data is left untouched.
func Seed(
	ctx context.Context,
	cfg *config.Config,
	userRepo *repository.UserRepository,
	specialtyRepo *repository.SpecialtyRepository,
	doctorRepo *repository.DoctorRepository,
	logger *zap.Logger,
) error {
	if err := seedAdmin(ctx, cfg, userRepo, logger); err != nil {
		return err
	}
	return seedCatalog(ctx, specialtyRepo, doctorRepo, logger)
}

func seedAdmin(ctx context.Context, cfg *config.Config, userRepo *repository.UserRepository, logger *zap.Logger) error {
	existing, err := userRepo.GetByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		ID:           uuid.New().String(),
		Name:         "Administrador",
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	logger.Info("Seeded admin user", zap.String("email", cfg.AdminEmail))
	return nil
}

func seedCatalog(ctx context.Context, specialtyRepo *repository.SpecialtyRepository, doctorRepo *repository.DoctorRepository, logger *zap.Logger) error {
	count, err := specialtyRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count specialties: %w", err)
	}
	if count > 0 {
		return nil
	}

	catalog := []struct {
		specialty model.Specialty
		doctors   []model.Doctor
	}{
		{
			specialty: model.Specialty{Name: "Hematologia", ImageURL: "/img/specialties/hematologia.png"},
			doctors: []model.Doctor{
				{Name: "Dr. João da Silva", CRM: "CRM/SP 123456"},
				{Name: "Dra. Maria da Costa", CRM: "CRM/SP 123457"},
			},
		},
		{
			specialty: model.Specialty{Name: "Urologia", ImageURL: "/img/specialties/urologia.png"},
			doctors: []model.Doctor{
				{Name: "Dr. Carlos Alberto", CRM: "CRM/RJ 234567"},
				{Name: "Dra. Ana Pereira", CRM: "CRM/RJ 234568"},
			},
		},
		{
			specialty: model.Specialty{Name: "Dermatologia", ImageURL: "/img/specialties/dermatologia.png"},
			doctors: []model.Doctor{
				{Name: "Dr. Pedro Mendonça", CRM: "CRM/MG 345678"},
				{Name: "Dra. Beatriz Lima", CRM: "CRM/MG 345679"},
			},
		},
		{
			specialty: model.Specialty{Name: "Ortopedia", ImageURL: "/img/specialties/ortopedia.png"},
			doctors: []model.Doctor{
				{Name: "Dr. Fernando Martins", CRM: "CRM/BA 456789"},
				{Name: "Dra. Sofia Ferreira", CRM: "CRM/BA 456790"},
			},
		},
		{
			specialty: model.Specialty{Name: "Radiologia", ImageURL: "/img/specialties/radiologia.png"},
			doctors: []model.Doctor{
				{Name: "Dr. Ricardo Azevedo", CRM: "CRM/RS 567890"},
				{Name: "Dra. Helena Souza", CRM: "CRM/RS 567891"},
			},
		},
	}

	for _, entry := range catalog {
		specialty := entry.specialty
		specialty.ID = uuid.New().String()
		if err := specialtyRepo.Create(ctx, &specialty); err != nil {
			return fmt.Errorf("seed specialty %s: %w", specialty.Name, err)
		}

		for _, doctor := range entry.doctors {
			doctor.ID = uuid.New().String()
			doctor.SpecialtyID = specialty.ID
			if err := doctorRepo.Create(ctx, &doctor); err != nil {
				return fmt.Errorf("seed doctor %s: %w", doctor.Name, err)
			}
		}
	}

	logger.Info("Seeded specialty catalog", zap.Int("specialties", len(catalog)))
	return nil
}
