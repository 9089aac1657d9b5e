package chat

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
	"github.com/BruksfildServices01/medassist/internal/httperr"
	"github.com/BruksfildServices01/medassist/internal/models"
)

type fakeStore struct {
	apps    []models.Appointment
	nextID  uint
	err     error
	creates int
	updates []domain.Patch
}

func (s *fakeStore) Create(_ context.Context, owner string, f domain.Fields) (*models.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.creates++
	s.nextID++
	ap := models.Appointment{
		ID:              s.nextID,
		Owner:           owner,
		PatientID:       f.PatientID,
		PatientName:     f.PatientName,
		PatientPhone:    f.PatientPhone,
		Department:      f.Department,
		DoctorName:      f.DoctorName,
		AppointmentDate: f.Date,
		AppointmentTime: f.Time,
		Symptoms:        f.Symptoms,
		Status:          string(domain.StatusPending),
	}
	s.apps = append(s.apps, ap)
	return &ap, nil
}

func (s *fakeStore) Update(_ context.Context, owner string, id uint, p domain.Patch) (*models.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.apps {
		if s.apps[i].ID == id && s.apps[i].Owner == owner {
			if err := domain.ApplyPatch(&s.apps[i], p); err != nil {
				return nil, err
			}
			s.updates = append(s.updates, p)
			ap := s.apps[i]
			return &ap, nil
		}
	}
	return nil, httperr.NotFoundOrForbidden("appointment_not_found", "找不到這筆預約")
}

func (s *fakeStore) List(_ context.Context, owner, keyword string) ([]models.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	kw := strings.ToLower(keyword)
	var out []models.Appointment
	for _, ap := range s.apps {
		if ap.Owner != owner {
			continue
		}
		if kw == "" ||
			strings.Contains(strings.ToLower(ap.PatientID), kw) ||
			strings.Contains(strings.ToLower(ap.PatientName), kw) ||
			strings.Contains(strings.ToLower(ap.PatientPhone), kw) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (s *fakeStore) seed(owner, patientID, name, phone, date string) uint {
	s.nextID++
	s.apps = append(s.apps, models.Appointment{
		ID:              s.nextID,
		Owner:           owner,
		PatientID:       patientID,
		PatientName:     name,
		PatientPhone:    phone,
		Department:      "內科",
		DoctorName:      "陳大文",
		AppointmentDate: date,
		AppointmentTime: "10:00",
		Status:          string(domain.StatusPending),
	})
	return s.nextID
}

type fakeBackend struct {
	reply   string
	err     error
	prompts []string
}

func (b *fakeBackend) Generate(_ context.Context, prompt string) (string, error) {
	b.prompts = append(b.prompts, prompt)
	return b.reply, b.err
}
