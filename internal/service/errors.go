package service

import (
	"errors"
	"fmt"
)

// Expected business outcomes. These are data for the caller to branch on,
// not faults; storage errors propagate separately, wrapped.
var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrSpecialtyNotFound = errors.New("specialty not found")

	// ErrAppointmentNotFound deliberately covers both "no such
	// appointment" and "appointment belongs to someone else" so that
	// callers cannot probe for existence.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotTaken means another booking occupied the interval between
	// slot display and commit. Recoverable: re-fetch availability.
	ErrSlotTaken = errors.New("slot already booked")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrSpecialtyInUse        = errors.New("specialty has doctors assigned")
	ErrDoctorHasAppointments = errors.New("doctor has upcoming appointments")
)

// ValidationError rejects malformed input before any storage access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
