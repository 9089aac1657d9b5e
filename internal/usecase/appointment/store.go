package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medassist/internal/audit"
	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
	"github.com/BruksfildServices01/medassist/internal/models"
)

// Store bundles the owner-scoped appointment use cases behind one value so
// the chat engine and the HTTP handlers share the same rules.
type Store struct {
	create *CreateAppointment
	update *UpdateAppointment
	cancel *CancelAppointment
	list   *ListAppointments
}

func NewStore(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	now func() time.Time,
) *Store {
	if now == nil {
		now = time.Now
	}

	return &Store{
		create: NewCreateAppointment(repo, dispatcher, now),
		update: NewUpdateAppointment(repo, dispatcher, now),
		cancel: NewCancelAppointment(repo, dispatcher, now),
		list:   NewListAppointments(repo),
	}
}

func (s *Store) Create(ctx context.Context, owner string, f domain.Fields) (*models.Appointment, error) {
	return s.create.Execute(ctx, owner, f)
}

func (s *Store) Update(ctx context.Context, owner string, id uint, p domain.Patch) (*models.Appointment, error) {
	return s.update.Execute(ctx, owner, id, p)
}

func (s *Store) Cancel(ctx context.Context, owner string, id uint) (*models.Appointment, error) {
	return s.cancel.Execute(ctx, owner, id)
}

func (s *Store) List(ctx context.Context, owner string, keyword string) ([]models.Appointment, error) {
	return s.list.Execute(ctx, owner, keyword)
}
