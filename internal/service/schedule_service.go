package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/model"
)

// Clinic working window and slot geometry. Candidates start on the hour
// between 09:00 and 16:00 and last 45 minutes, leaving a 15-minute gap
// before the next candidate.
const (
	workdayStartHour = 9
	workdayEndHour   = 17

	// DefaultWindowDays is the forward-looking window when the caller
	// does not ask for one.
	DefaultWindowDays = 7
)

// DayAvailability holds the bookable start times of one calendar day,
// in ascending order. Days without candidates are never emitted.
type DayAvailability struct {
	Date  time.Time   `json:"date"`
	Times []time.Time `json:"times"`
}

type ScheduleService struct {
	doctorRepo      DoctorStore
	appointmentRepo AppointmentStore
	loc             *time.Location
	logger          *zap.Logger

	now func() time.Time // swapped in tests
}

func NewScheduleService(
	doctorRepo DoctorStore,
	appointmentRepo AppointmentStore,
	loc *time.Location,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		loc:             loc,
		logger:          logger,
		now:             time.Now,
	}
}

// AvailableSlots computes the bookable start times for a doctor over the
// next `days` calendar days, starting today. The result is derived fresh
// from committed appointments on every call; it is both time-sensitive
// (past candidates drop out) and state-sensitive (bookings land between
// calls), so it is never cached.
func (s *ScheduleService) AvailableSlots(ctx context.Context, doctorID string, days int) ([]DayAvailability, error) {
	if days <= 0 {
		days = DefaultWindowDays
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	booked, err := s.appointmentRepo.GetActiveByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("get appointments: %w", err)
	}

	now := s.now().In(s.loc)
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, s.loc)

	var availability []DayAvailability
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i)
		y, m, d := date.Date()

		// Each candidate is built from wall-clock components so the
		// window stays 09:00-17:00 local even on days where a DST
		// transition changes the day's length.
		var times []time.Time
		for hour := workdayStartHour; hour < workdayEndHour; hour++ {
			start := time.Date(y, m, d, hour, 0, 0, 0, s.loc)
			end := start.Add(model.AppointmentDuration)

			if !start.After(now) {
				continue
			}
			if overlapsActive(booked, start, end) {
				continue
			}
			times = append(times, start)
		}

		if len(times) > 0 {
			availability = append(availability, DayAvailability{Date: date, Times: times})
		}
	}

	s.logger.Debug("Computed slot grid",
		zap.String("doctor_id", doctorID),
		zap.Int("days", days),
		zap.Int("days_with_slots", len(availability)),
	)

	return availability, nil
}

func overlapsActive(appointments []*model.Appointment, start, end time.Time) bool {
	for _, a := range appointments {
		if a.IsActive() && a.Overlaps(start, end) {
			return true
		}
	}
	return false
}
