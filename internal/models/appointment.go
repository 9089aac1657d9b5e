package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Owner string `gorm:"size:100;not null;index:idx_appointments_owner" json:"owner"`

	PatientID    string `gorm:"size:50" json:"patient_id"`
	PatientName  string `gorm:"size:100;not null" json:"patient_name"`
	PatientPhone string `gorm:"size:20;not null" json:"patient_phone"`
	Department   string `gorm:"size:100;not null" json:"department"`
	DoctorName   string `gorm:"size:100;not null" json:"doctor_name"`

	// YYYY-MM-DD and HH:MM, zero padded so lexical order is chronological.
	AppointmentDate string `gorm:"size:10;not null;index:idx_appointments_date" json:"appointment_date"`
	AppointmentTime string `gorm:"size:5;not null" json:"appointment_time"`

	Symptoms string `gorm:"type:text" json:"symptoms"`
	Status   string `gorm:"size:20;default:'pending'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Appointment) TableName() string {
	return "medical_appointments"
}
