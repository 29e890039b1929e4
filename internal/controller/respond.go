package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps business outcomes onto HTTP statuses. Anything
// unrecognized is a storage or programming fault: logged, answered with a
// generic 500, never retried here.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message, Field: vErr.Field})
	case errors.Is(err, service.ErrDoctorNotFound),
		errors.Is(err, service.ErrSpecialtyNotFound),
		errors.Is(err, service.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrSlotTaken):
		writeError(w, http.StatusConflict,
			"sorry, this time was just booked by someone else, please select a new time")
	case errors.Is(err, service.ErrEmailTaken):
		// deliberately vague, same as any other registration conflict
		writeError(w, http.StatusConflict, "registration failed")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrSpecialtyInUse):
		writeError(w, http.StatusConflict,
			"this specialty cannot be removed while doctors are assigned to it")
	case errors.Is(err, service.ErrDoctorHasAppointments):
		writeError(w, http.StatusConflict,
			"this doctor cannot be removed while future appointments exist")
	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
