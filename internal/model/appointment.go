package model

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCanceled  AppointmentStatus = "Canceled"
)

// AppointmentDuration is fixed for every booking; the end time is always
// derived from the start time, never taken from the client.
const AppointmentDuration = 45 * time.Minute

type Appointment struct {
	ID        string            `json:"id"`
	DoctorID  string            `json:"doctor_id"`
	PatientID string            `json:"patient_id"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Loaded on demand for listings, not from the appointments table
	DoctorName  string `json:"doctor_name,omitempty"`
	PatientName string `json:"patient_name,omitempty"`
}

// IsActive reports whether the appointment still occupies its slot.
// Rows written before the status column existed carry an empty status
// and count as Pending.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == ""
}

// Overlaps reports whether [start,end) intersects the appointment's
// half-open interval.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.EndTime) && end.After(a.StartTime)
}
