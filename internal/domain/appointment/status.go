package appointment

import "github.com/BruksfildServices01/medassist/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanUpdate rejects edits to appointments that were already cancelled.
func CanUpdate(current Status) error {
	if current == StatusCancelled {
		return httperr.Validation("invalid_state", "已取消的預約無法修改。")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
