package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medassist/internal/audit"
	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
	"github.com/BruksfildServices01/medassist/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now func() time.Time,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	owner string,
	in domain.Fields,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	in.Normalize()
	if err := domain.ValidateRequired(in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Not in the past
	// --------------------------------------------------
	if err := domain.ValidateMoment(in.Date, in.Time, uc.now()); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		Owner:           owner,
		PatientID:       in.PatientID,
		PatientName:     in.PatientName,
		PatientPhone:    in.PatientPhone,
		Department:      in.Department,
		DoctorName:      in.DoctorName,
		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Symptoms:        in.Symptoms,
		Status:          string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Owner:    owner,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"department": ap.Department,
			"date":       ap.AppointmentDate,
			"time":       ap.AppointmentTime,
		},
	})

	return ap, nil
}
