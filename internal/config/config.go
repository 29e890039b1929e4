package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	HTTPAddr      string
	JWTSecret     string
	Environment   string
	ClinicTZ      string
	AdminEmail    string
	AdminPassword string

	// CORSOrigins lists the browser origins allowed to send credentialed
	// requests. A wildcard would make the session cookie unusable, so the
	// list is always explicit.
	CORSOrigins []string
}

func Load() (*Config, error) {
	// .env is optional, real environment variables win either way
	if err := godotenv.Load(".env"); err == nil {
		log.Println("loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Environment:   os.Getenv("ENV"),
		ClinicTZ:      os.Getenv("CLINIC_TZ"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@email.com"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin"
	}

	for _, origin := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}

// Location resolves the clinic's time zone. Slot grids are computed in
// clinic-local time, so an unparseable zone is a startup error, not a
// silent fallback.
func (c *Config) Location() (*time.Location, error) {
	if c.ClinicTZ == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.ClinicTZ)
	if err != nil {
		return nil, fmt.Errorf("load clinic time zone %q: %w", c.ClinicTZ, err)
	}
	return loc, nil
}
