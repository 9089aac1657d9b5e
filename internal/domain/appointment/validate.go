package appointment

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/medassist/internal/httperr"
)

var validate = validator.New()

var fieldLabels = map[string]string{
	"PatientName":  "姓名",
	"PatientPhone": "電話",
	"Department":   "科別",
	"DoctorName":   "醫師",
	"Date":         "日期",
	"Time":         "時間",
}

// Normalize trims every field in place.
func (f *Fields) Normalize() {
	for _, p := range []*string{
		&f.PatientID, &f.PatientName, &f.PatientPhone, &f.Department,
		&f.DoctorName, &f.Date, &f.Time, &f.Symptoms,
	} {
		*p = strings.TrimSpace(*p)
	}
}

// ValidateRequired reports every missing required field in one error.
func ValidateRequired(f Fields) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return httperr.Validation("invalid_fields", "預約資料格式錯誤。")
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		missing = append(missing, label)
	}
	return httperr.Validation("missing_fields", "缺少必填欄位："+strings.Join(missing, "、"))
}
