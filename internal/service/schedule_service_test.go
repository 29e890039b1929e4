package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/model"
)

func newScheduleFixture(t *testing.T, now time.Time) (*ScheduleService, *memDoctors, *memAppointments) {
	t.Helper()
	doctors := newMemDoctors()
	appointments := newMemAppointments()
	svc := NewScheduleService(doctors, appointments, time.UTC, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, doctors, appointments
}

func addDoctor(t *testing.T, doctors *memDoctors, id string) {
	t.Helper()
	err := doctors.Create(context.Background(), &model.Doctor{
		ID: id, Name: "Dr. Test", CRM: "CRM/SP 000001", SpecialtyID: "spec-1",
	})
	require.NoError(t, err)
}

func addAppointment(t *testing.T, appointments *memAppointments, doctorID string, start time.Time, status model.AppointmentStatus) {
	t.Helper()
	appointments.mu.Lock()
	defer appointments.mu.Unlock()
	id := "appt-" + start.Format(time.RFC3339)
	appointments.appointments[id] = &model.Appointment{
		ID:        id,
		DoctorID:  doctorID,
		PatientID: "patient-1",
		StartTime: start,
		EndTime:   start.Add(model.AppointmentDuration),
		Status:    status,
	}
}

func TestAvailableSlotsFullDay(t *testing.T) {
	// 08:00, before the working window opens: the whole grid is offered
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc, doctors, _ := newScheduleFixture(t, now)
	addDoctor(t, doctors, "doc-1")

	days, err := svc.AvailableSlots(context.Background(), "doc-1", 1)
	require.NoError(t, err)
	require.Len(t, days, 1)

	var want []time.Time
	for h := 9; h < 17; h++ {
		want = append(want, time.Date(2026, time.March, 2, h, 0, 0, 0, time.UTC))
	}
	assert.Equal(t, want, days[0].Times)
	assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), days[0].Date)
}

func TestAvailableSlotsSkipsBookedSlot(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc, doctors, appointments := newScheduleFixture(t, now)
	addDoctor(t, doctors, "doc-1")
	addAppointment(t, appointments, "doc-1",
		time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC), model.StatusPending)

	days, err := svc.AvailableSlots(context.Background(), "doc-1", 1)
	require.NoError(t, err)
	require.Len(t, days, 1)

	times := days[0].Times
	assert.NotContains(t, times, time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC))
	assert.Contains(t, times, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
	assert.Contains(t, times, time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC))
}

func TestAvailableSlotsLegacyStatusBlocks(t *testing.T) {
	// rows with no status predate the status column and count as Pending
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc, doctors, appointments := newScheduleFixture(t, now)
	addDoctor(t, doctors, "doc-1")
	addAppointment(t, appointments, "doc-1",
		time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC), "")

	days, err := svc.AvailableSlots(context.Background(), "doc-1", 1)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.NotContains(t, days[0].Times, time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC))
}

func TestAvailableSlotsCanceledDoesNotBlock(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc, doctors, appointments := newScheduleFixture(t, now)
	addDoctor(t, doctors, "doc-1")
	addAppointment(t, appointments, "doc-1",
		time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC), model.StatusCanceled)
	addAppointment(t, appointments, "doc-1",
		time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC), model.StatusCompleted)

	days, err := svc.AvailableSlots(context.Background(), "doc-1", 1)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Contains(t, days[0].Times, time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC))
	assert.Contains(t, days[0].Times, time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC))
}

func TestAvailableSlotsFiltersPastTimes(t *testing.T) {
	// mid-day: everything up to and including the current hour is gone
	now := time.Date(2026, time.March, 2, 12, 30, 0, 0, time.UTC)
	svc, doctors, _ := newScheduleFixture(t, now)
	addDoctor(t, doctors, "doc-1")

	days, err := svc.AvailableSlots(context.Background(), "doc-1", 1)
	require.NoError(t, err)
	require.Len(t, days, 1)

	require.NotEmpty(t, days[0].Times)
	assert.Equal(t, time.Date(2026, time.March, 2, 13, 0, 0, 0, time.UTC), days[0].Times[0])
	for _, s := range days[0].Times {
		assert.True(t, s.After(now), "slot %v is not in the future", s)
	}
}

func TestAvailableSlotsOmitsEmptyDays(t *testing.T) {
	// after closing time today has no candidates and must be absent
	now := time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC)
	svc, doctors, _ := newScheduleFixture(t, now)
	addDoctor(t, doctors, "doc-1")

	days, err := svc.AvailableSlots(context.Background(), "doc-1", 1)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestAvailableSlotsDefaultWindow(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc, doctors, _ := newScheduleFixture(t, now)
	addDoctor(t, doctors, "doc-1")

	days, err := svc.AvailableSlots(context.Background(), "doc-1", 0)
	require.NoError(t, err)
	assert.Len(t, days, DefaultWindowDays)
}

func TestAvailableSlotsIdempotent(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc, doctors, appointments := newScheduleFixture(t, now)
	addDoctor(t, doctors, "doc-1")
	addAppointment(t, appointments, "doc-1",
		time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC), model.StatusPending)

	first, err := svc.AvailableSlots(context.Background(), "doc-1", 7)
	require.NoError(t, err)
	second, err := svc.AvailableSlots(context.Background(), "doc-1", 7)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAvailableSlotsDaylightSavingTransitions(t *testing.T) {
	// clocks jump forward on 2026-03-08 and back on 2026-11-01 in this
	// zone; the window must stay 09:00-17:00 wall clock on both days
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	doctors := newMemDoctors()
	appointments := newMemAppointments()
	svc := NewScheduleService(doctors, appointments, loc, zap.NewNop())
	addDoctor(t, doctors, "doc-1")

	transitions := []time.Time{
		time.Date(2026, time.March, 8, 0, 0, 0, 0, loc),
		time.Date(2026, time.November, 1, 0, 0, 0, 0, loc),
	}

	for _, day := range transitions {
		svc.now = func() time.Time { return day }

		days, err := svc.AvailableSlots(context.Background(), "doc-1", 1)
		require.NoError(t, err)
		require.Len(t, days, 1)
		require.Len(t, days[0].Times, 8, "on %s", day.Format("2006-01-02"))

		for i, slot := range days[0].Times {
			assert.Equal(t, 9+i, slot.Hour(), "slot %d on %s", i, day.Format("2006-01-02"))
			assert.Zero(t, slot.Minute())
		}
	}
}

func TestAvailableSlotsUnknownDoctor(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc, _, _ := newScheduleFixture(t, now)

	_, err := svc.AvailableSlots(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
