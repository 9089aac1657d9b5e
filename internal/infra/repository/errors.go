package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medassist/internal/httperr"
)

// classifyError maps persistence failures onto the error taxonomy. Errors
// already in the taxonomy (raised by domain rules inside a transaction) pass
// through untouched.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := httperr.As(err); ok {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFoundOrForbidden(
			"appointment_not_found",
			"找不到這筆預約，或您沒有權限存取。",
		)
	}

	// Integrity violations (class 23) are caller-correctable.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return httperr.Validation("constraint_violation", "預約資料不符合資料庫限制。")
	}

	return httperr.StoreUnavailable(err)
}
