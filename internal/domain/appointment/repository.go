package appointment

import (
	"context"

	"github.com/BruksfildServices01/medassist/internal/models"
)

// Repository persists appointments. Every method is scoped to owner; a row
// owned by someone else behaves exactly like a missing row.
type Repository interface {
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForOwner(
		ctx context.Context,
		appointmentID uint,
		owner string,
	) (*models.Appointment, error)

	// MutateAppointment loads the owner's row, runs mutate and saves the
	// result in one transaction. An error from mutate rolls everything back.
	MutateAppointment(
		ctx context.Context,
		appointmentID uint,
		owner string,
		mutate func(ap *models.Appointment) error,
	) (*models.Appointment, error)

	ListAppointmentsForOwner(
		ctx context.Context,
		owner string,
		keyword string,
	) ([]models.Appointment, error)
}
