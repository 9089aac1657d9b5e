package httperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation          Kind = "validation"
	KindNotFoundOrForbidden Kind = "not_found_or_forbidden"
	KindBackendUnavailable  Kind = "backend_unavailable"
	KindStoreUnavailable    Kind = "store_unavailable"
)

// Error is the single error type crossing layer boundaries. Code is a stable
// machine-readable identifier, Message is shown to the end user.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(code, message string) error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NotFoundOrForbidden(code, message string) error {
	return &Error{Kind: KindNotFoundOrForbidden, Code: code, Message: message}
}

func BackendUnavailable(err error) error {
	return &Error{
		Kind:    KindBackendUnavailable,
		Code:    "backend_unavailable",
		Message: "AI 服務暫時無法使用，請稍後再試。",
		Err:     err,
	}
}

func StoreUnavailable(err error) error {
	return &Error{
		Kind:    KindStoreUnavailable,
		Code:    "store_unavailable",
		Message: "預約資料庫暫時無法使用，請稍後再試。",
		Err:     err,
	}
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

func IsBusiness(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// UserMessage returns the caller-facing text for err. Unknown errors collapse
// to a generic failure.
func UserMessage(err error) string {
	if e, ok := As(err); ok && e.Message != "" {
		return e.Message
	}
	return "系統發生錯誤，請稍後再試。"
}
