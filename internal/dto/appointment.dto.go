package dto

import (
	"time"

	"github.com/BruksfildServices01/medassist/internal/models"
	"github.com/BruksfildServices01/medassist/internal/validators"
)

type AppointmentDTO struct {
	ID              uint       `json:"id"`
	PatientID       string     `json:"patient_id"`
	PatientName     string     `json:"patient_name"`
	PatientPhone    string     `json:"patient_phone"`
	Department      string     `json:"department"`
	DoctorName      string     `json:"doctor_name"`
	AppointmentDate string     `json:"appointment_date"`
	AppointmentTime string     `json:"appointment_time"`
	Symptoms        string     `json:"symptoms"`
	Status          string     `json:"status"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func NewAppointmentDTO(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:              ap.ID,
		PatientID:       ap.PatientID,
		PatientName:     ap.PatientName,
		PatientPhone:    ap.PatientPhone,
		Department:      ap.Department,
		DoctorName:      ap.DoctorName,
		AppointmentDate: ap.AppointmentDate,
		AppointmentTime: ap.AppointmentTime,
		Symptoms:        ap.Symptoms,
		Status:          ap.Status,
		CancelledAt:     ap.CancelledAt,
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}
}

func NewAppointmentDTOs(apps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, NewAppointmentDTO(ap))
	}
	return out
}

// ProfileDTO never exposes the full identity number.
type ProfileDTO struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	IdentityID string    `json:"identity_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewProfileDTO(u models.User) ProfileDTO {
	return ProfileDTO{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Phone:      u.Phone,
		IdentityID: validators.MaskIdentity(u.IdentityID),
		CreatedAt:  u.CreatedAt,
	}
}
