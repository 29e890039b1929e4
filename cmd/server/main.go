package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/app"
	"github.com/clinicabemestar/clinic-api/internal/config"
	"github.com/clinicabemestar/clinic-api/internal/controller"
	"github.com/clinicabemestar/clinic-api/internal/repository"
	"github.com/clinicabemestar/clinic-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("resolve clinic time zone", zap.Error(err))
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("ping postgres", zap.Error(err))
	}
	logger.Info("connected to postgres")

	migrator, err := app.NewMigrator(pool)
	if err != nil {
		logger.Fatal("create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}
	migrator.Close()
	logger.Info("migrations applied")

	userRepo := repository.NewUserRepository(pool)
	specialtyRepo := repository.NewSpecialtyRepository(pool)
	doctorRepo := repository.NewDoctorRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)

	if err := app.Seed(ctx, cfg, userRepo, specialtyRepo, doctorRepo, logger); err != nil {
		logger.Fatal("seed data", zap.Error(err))
	}

	userService := service.NewUserService(userRepo, logger)
	catalogService := service.NewCatalogService(specialtyRepo, doctorRepo, appointmentRepo, logger)
	scheduleService := service.NewScheduleService(doctorRepo, appointmentRepo, loc, logger)
	bookingService := service.NewBookingService(doctorRepo, appointmentRepo, logger)

	router := controller.NewRouter(
		cfg.JWTSecret,
		cfg.CORSOrigins,
		controller.NewAuthHandler(userService, cfg.JWTSecret, logger),
		controller.NewCatalogHandler(catalogService, scheduleService, logger),
		controller.NewAppointmentHandler(bookingService, logger),
		controller.NewAdminHandler(catalogService, bookingService, logger),
		logger,
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
