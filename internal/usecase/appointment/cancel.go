package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medassist/internal/audit"
	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
	"github.com/BruksfildServices01/medassist/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now func() time.Time,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

// Execute cancels the owner's appointment. Cancelling twice is not an error.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	owner string,
	appointmentID uint,
) (*models.Appointment, error) {

	changed := false
	ap, err := uc.repo.MutateAppointment(ctx, appointmentID, owner, func(ap *models.Appointment) error {
		changed = domain.Cancel(ap, uc.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		uc.audit.Dispatch(audit.Event{
			Owner:    owner,
			Action:   "appointment_cancelled",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
	}

	return ap, nil
}
