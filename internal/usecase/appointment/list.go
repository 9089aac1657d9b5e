package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
	"github.com/BruksfildServices01/medassist/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	owner string,
	keyword string,
) ([]models.Appointment, error) {
	return uc.repo.ListAppointmentsForOwner(ctx, owner, keyword)
}
