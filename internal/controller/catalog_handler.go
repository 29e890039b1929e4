package controller

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/service"
)

// CatalogHandler serves the public browsing surface: specialties, their
// doctors, and each doctor's slot grid.
type CatalogHandler struct {
	catalog  *service.CatalogService
	schedule *service.ScheduleService
	logger   *zap.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, schedule *service.ScheduleService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, schedule: schedule, logger: logger}
}

func (h *CatalogHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.catalog.Specialties(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, specialties)
}

func (h *CatalogHandler) ListDoctorsBySpecialty(w http.ResponseWriter, r *http.Request) {
	specialtyID := chi.URLParam(r, "id")

	doctors, err := h.catalog.DoctorsBySpecialty(r.Context(), specialtyID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

// ListSlots returns the doctor's available start times, grouped by day.
// The grid is recomputed per request; clients must treat it as a
// snapshot that can go stale before they book.
func (h *CatalogHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 60 {
			writeError(w, http.StatusBadRequest, "days must be a number between 1 and 60")
			return
		}
		days = parsed
	}

	slots, err := h.schedule.AvailableSlots(r.Context(), doctorID, days)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}
