package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/service"
)

// AdminHandler is the administrative surface: catalog management and
// appointment lifecycle. Reachable only behind RequireAdmin.
type AdminHandler struct {
	catalog  *service.CatalogService
	bookings *service.BookingService
	logger   *zap.Logger
}

func NewAdminHandler(catalog *service.CatalogService, bookings *service.BookingService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{catalog: catalog, bookings: bookings, logger: logger}
}

type specialtyRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	ImageURL string `json:"image_url"`
}

type doctorRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	CRM         string `json:"crm" validate:"required,max=20"`
	SpecialtyID string `json:"specialty_id" validate:"required"`
}

func (h *AdminHandler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req specialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "a specialty name of at most 100 characters is required")
		return
	}

	specialty, err := h.catalog.CreateSpecialty(r.Context(), req.Name, req.ImageURL)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, specialty)
}

func (h *AdminHandler) UpdateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req specialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "a specialty name of at most 100 characters is required")
		return
	}

	if err := h.catalog.UpdateSpecialty(r.Context(), chi.URLParam(r, "id"), req.Name, req.ImageURL); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) DeleteSpecialty(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteSpecialty(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.catalog.Doctors(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *AdminHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req doctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "name, license number and specialty are required")
		return
	}

	doctor, err := h.catalog.CreateDoctor(r.Context(), req.Name, req.CRM, req.SpecialtyID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, doctor)
}

func (h *AdminHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var req doctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "name, license number and specialty are required")
		return
	}

	if err := h.catalog.UpdateDoctor(r.Context(), chi.URLParam(r, "id"), req.Name, req.CRM, req.SpecialtyID); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteDoctor(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.bookings.AllAppointments(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *AdminHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.bookings.Complete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.bookings.AdminCancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
