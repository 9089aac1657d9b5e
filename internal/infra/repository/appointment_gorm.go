package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
	"github.com/BruksfildServices01/medassist/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return classifyError(r.db.WithContext(ctx).Create(ap).Error)
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForOwner(
	ctx context.Context,
	appointmentID uint,
	owner string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner = ?", appointmentID, owner).
		First(&ap).Error; err != nil {
		return nil, classifyError(err)
	}

	return &ap, nil
}

// likeEscaper makes % and _ in a keyword match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *AppointmentGormRepository) ListAppointmentsForOwner(
	ctx context.Context,
	owner string,
	keyword string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where("owner = ?", owner)

	if kw := strings.ToLower(strings.TrimSpace(keyword)); kw != "" {
		like := "%" + likeEscaper.Replace(kw) + "%"
		q = q.Where(
			`LOWER(patient_id) LIKE ? ESCAPE '\' OR LOWER(patient_name) LIKE ? ESCAPE '\' OR LOWER(patient_phone) LIKE ? ESCAPE '\'`,
			like, like, like,
		)
	}

	apps := make([]models.Appointment, 0)
	if err := q.
		Order("appointment_date DESC").
		Order("appointment_time DESC").
		Order("id DESC").
		Find(&apps).Error; err != nil {
		return nil, classifyError(err)
	}

	return apps, nil
}

// --------------------------------------------------
// Update / Cancel
// --------------------------------------------------

func (r *AppointmentGormRepository) MutateAppointment(
	ctx context.Context,
	appointmentID uint,
	owner string,
	mutate func(ap *models.Appointment) error,
) (*models.Appointment, error) {

	var updated models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ap models.Appointment
		if err := tx.
			Where("id = ? AND owner = ?", appointmentID, owner).
			First(&ap).Error; err != nil {
			return err
		}

		if err := mutate(&ap); err != nil {
			return err
		}

		if err := tx.Save(&ap).Error; err != nil {
			return err
		}

		updated = ap
		return nil
	})
	if err != nil {
		return nil, classifyError(err)
	}

	return &updated, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
