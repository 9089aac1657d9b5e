package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medassist/internal/audit"
	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
	"github.com/BruksfildServices01/medassist/internal/httperr"
	"github.com/BruksfildServices01/medassist/internal/models"
)

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now func() time.Time,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	owner string,
	appointmentID uint,
	patch domain.Patch,
) (*models.Appointment, error) {

	if patch.IsEmpty() {
		return nil, httperr.Validation("empty_patch", "沒有提供要修改的欄位。")
	}

	ap, err := uc.repo.MutateAppointment(ctx, appointmentID, owner, func(ap *models.Appointment) error {
		if err := domain.CanUpdate(domain.Status(ap.Status)); err != nil {
			return err
		}
		if err := domain.ApplyPatch(ap, patch); err != nil {
			return err
		}
		if patch.Date != nil || patch.Time != nil {
			return domain.ValidateMoment(ap.AppointmentDate, ap.AppointmentTime, uc.now())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Owner:    owner,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
