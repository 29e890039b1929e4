package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/service"
)

type AppointmentHandler struct {
	bookings *service.BookingService
	logger   *zap.Logger
}

func NewAppointmentHandler(bookings *service.BookingService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{bookings: bookings, logger: logger}
}

type bookRequest struct {
	DoctorID  string    `json:"doctor_id" validate:"required"`
	StartTime time.Time `json:"start_time"`
}

// Book reserves a slot for the authenticated patient. The patient id
// comes from the session principal, never from the request body.
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "doctor_id is required")
		return
	}

	appointment, err := h.bookings.Book(r.Context(), req.DoctorID, claims.UserID, req.StartTime)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, appointment)
}

// List returns the authenticated patient's bookings.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	appointments, err := h.bookings.PatientAppointments(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

// Cancel cancels one of the patient's own appointments. A foreign or
// unknown id yields the same 404.
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	appointmentID := chi.URLParam(r, "id")

	if err := h.bookings.Cancel(r.Context(), appointmentID, claims.UserID); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
