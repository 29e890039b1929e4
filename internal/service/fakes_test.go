package service

import (
	"context"
	"sync"
	"time"

	"github.com/clinicabemestar/clinic-api/internal/model"
	"github.com/clinicabemestar/clinic-api/internal/repository"
)

// In-memory stores backing the service tests. memAppointments serializes
// Create under one mutex, mirroring the transactional check-then-insert
// of the pgx implementation.

type memUsers struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*model.User)}
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type memSpecialties struct {
	mu          sync.Mutex
	specialties map[string]*model.Specialty
}

func newMemSpecialties() *memSpecialties {
	return &memSpecialties{specialties: make(map[string]*model.Specialty)}
}

func (m *memSpecialties) Create(_ context.Context, specialty *model.Specialty) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	specialty.CreatedAt = time.Now()
	cp := *specialty
	m.specialties[specialty.ID] = &cp
	return nil
}

func (m *memSpecialties) GetByID(_ context.Context, id string) (*model.Specialty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.specialties[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *memSpecialties) GetAll(_ context.Context) ([]*model.Specialty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Specialty
	for _, s := range m.specialties {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memSpecialties) Update(_ context.Context, specialty *model.Specialty) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.specialties[specialty.ID]; !ok {
		return 0, nil
	}
	cp := *specialty
	m.specialties[specialty.ID] = &cp
	return 1, nil
}

func (m *memSpecialties) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.specialties[id]; !ok {
		return 0, nil
	}
	delete(m.specialties, id)
	return 1, nil
}

type memDoctors struct {
	mu      sync.Mutex
	doctors map[string]*model.Doctor
}

func newMemDoctors() *memDoctors {
	return &memDoctors{doctors: make(map[string]*model.Doctor)}
}

func (m *memDoctors) Create(_ context.Context, doctor *model.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doctor.CreatedAt = time.Now()
	cp := *doctor
	m.doctors[doctor.ID] = &cp
	return nil
}

func (m *memDoctors) GetByID(_ context.Context, id string) (*model.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.doctors[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (m *memDoctors) GetAll(_ context.Context) ([]*model.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Doctor
	for _, d := range m.doctors {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memDoctors) GetBySpecialtyID(_ context.Context, specialtyID string) ([]*model.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Doctor
	for _, d := range m.doctors {
		if d.SpecialtyID == specialtyID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memDoctors) Update(_ context.Context, doctor *model.Doctor) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[doctor.ID]; !ok {
		return 0, nil
	}
	cp := *doctor
	m.doctors[doctor.ID] = &cp
	return 1, nil
}

func (m *memDoctors) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[id]; !ok {
		return 0, nil
	}
	delete(m.doctors, id)
	return 1, nil
}

func (m *memDoctors) CountBySpecialtyID(_ context.Context, specialtyID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, d := range m.doctors {
		if d.SpecialtyID == specialtyID {
			count++
		}
	}
	return count, nil
}

type memAppointments struct {
	mu           sync.Mutex
	appointments map[string]*model.Appointment
	createCalls  int
	now          func() time.Time
}

func newMemAppointments() *memAppointments {
	return &memAppointments{
		appointments: make(map[string]*model.Appointment),
		now:          time.Now,
	}
}

func (m *memAppointments) Create(_ context.Context, appointment *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.overlapsLocked(appointment.DoctorID, appointment.StartTime, appointment.EndTime) {
		return repository.ErrOverlap
	}
	appointment.CreatedAt = m.now()
	appointment.UpdatedAt = appointment.CreatedAt
	cp := *appointment
	m.appointments[appointment.ID] = &cp
	return nil
}

func (m *memAppointments) GetByID(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.appointments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *memAppointments) GetActiveByDoctorID(_ context.Context, doctorID string) ([]*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.IsActive() {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memAppointments) GetByPatientID(_ context.Context, patientID string) ([]*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Appointment
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memAppointments) GetAll(_ context.Context) ([]*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Appointment
	for _, a := range m.appointments {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memAppointments) UpdateStatus(_ context.Context, id string, status model.AppointmentStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return 0, nil
	}
	a.Status = status
	a.UpdatedAt = m.now()
	return 1, nil
}

func (m *memAppointments) UpdateStatusIfPatient(_ context.Context, id, patientID string, status model.AppointmentStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok || a.PatientID != patientID {
		return 0, nil
	}
	a.Status = status
	a.UpdatedAt = m.now()
	return 1, nil
}

func (m *memAppointments) HasOverlap(_ context.Context, doctorID string, start, end time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlapsLocked(doctorID, start, end), nil
}

func (m *memAppointments) HasFuturePending(_ context.Context, doctorID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.IsActive() && a.StartTime.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAppointments) overlapsLocked(doctorID string, start, end time.Time) bool {
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.IsActive() && a.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// optimisticAppointments skips the pre-check so that the conflict only
// surfaces from Create, the way a lost commit race would.
type optimisticAppointments struct {
	*memAppointments
}

func (o *optimisticAppointments) HasOverlap(context.Context, string, time.Time, time.Time) (bool, error) {
	return false, nil
}
