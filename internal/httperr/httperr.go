package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Status maps an error kind to its HTTP status.
func Status(err error) int {
	e, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFoundOrForbidden:
		return http.StatusNotFound
	case KindBackendUnavailable:
		return http.StatusBadGateway
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err using the taxonomy. Errors outside it become 500s.
func Respond(c *gin.Context, err error) {
	e, ok := As(err)
	if !ok {
		_ = c.Error(err)
		Internal(c, "internal_error", UserMessage(err))
		return
	}
	if e.Err != nil {
		_ = c.Error(e.Err)
	}
	Write(c, Status(err), e.Code, e.Message)
}
