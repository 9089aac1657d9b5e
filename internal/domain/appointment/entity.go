package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/medassist/internal/httperr"
	"github.com/BruksfildServices01/medassist/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Fields is the full set of values needed to book.
type Fields struct {
	PatientID    string
	PatientName  string `validate:"required"`
	PatientPhone string `validate:"required"`
	Department   string `validate:"required"`
	DoctorName   string `validate:"required"`
	Date         string `validate:"required"`
	Time         string `validate:"required"`
	Symptoms     string
}

// Patch holds the fields present in a partial update; nil means untouched.
type Patch struct {
	PatientID    *string
	PatientName  *string
	PatientPhone *string
	Department   *string
	DoctorName   *string
	Date         *string
	Time         *string
	Symptoms     *string
}

func (p Patch) IsEmpty() bool {
	return p.PatientID == nil && p.PatientName == nil && p.PatientPhone == nil &&
		p.Department == nil && p.DoctorName == nil && p.Date == nil &&
		p.Time == nil && p.Symptoms == nil
}

// ===============================
// Domain Actions
// ===============================

// Cancel marks ap cancelled. It reports false when ap was already cancelled.
func Cancel(ap *models.Appointment, now time.Time) bool {
	if Status(ap.Status) == StatusCancelled {
		return false
	}
	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return true
}

// ApplyPatch copies the present fields of p onto ap. Required columns may not
// be blanked.
func ApplyPatch(ap *models.Appointment, p Patch) error {
	required := []struct {
		value *string
		dst   *string
		label string
	}{
		{p.PatientName, &ap.PatientName, "姓名"},
		{p.PatientPhone, &ap.PatientPhone, "電話"},
		{p.Department, &ap.Department, "科別"},
		{p.DoctorName, &ap.DoctorName, "醫師"},
		{p.Date, &ap.AppointmentDate, "日期"},
		{p.Time, &ap.AppointmentTime, "時間"},
	}
	for _, f := range required {
		if f.value == nil {
			continue
		}
		v := strings.TrimSpace(*f.value)
		if v == "" {
			return httperr.Validation("blank_field", f.label+"不可為空。")
		}
		*f.dst = v
	}

	if p.PatientID != nil {
		ap.PatientID = strings.TrimSpace(*p.PatientID)
	}
	if p.Symptoms != nil {
		ap.Symptoms = strings.TrimSpace(*p.Symptoms)
	}
	return nil
}

// ValidateMoment parses date and clock in loc and rejects moments before now.
func ValidateMoment(date, clock string, now time.Time) error {
	start, err := time.ParseInLocation(
		DateLayout+" "+TimeLayout,
		date+" "+clock,
		now.Location(),
	)
	if err != nil {
		return httperr.Validation("invalid_date_or_time", "日期或時間格式錯誤，請使用 YYYY-MM-DD 與 HH:MM。")
	}
	if start.Before(now) {
		return httperr.Validation("past_appointment", "預約時間不能早於現在。")
	}
	return nil
}
