package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/javiermolinar/ultraday/internal/logger"
)

// ErrorCode identifies the kind of failure in an error response.
type ErrorCode string

const (
	CodeInvalidDate     ErrorCode = "invalid_date"
	CodeInvalidSettings ErrorCode = "invalid_settings"
	CodeInvalidSlot     ErrorCode = "invalid_slot"
	CodeInvalidFormat   ErrorCode = "invalid_format"
	CodeInvalidBody     ErrorCode = "invalid_body"
	CodeNotFound        ErrorCode = "not_found"
	CodeInternal        ErrorCode = "internal_error"
)

// Response types
type (
	SuccessResponse struct {
		Status    int       `json:"status"`
		Message   string    `json:"message"`
		Data      any       `json:"data,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	}

	ErrorResponse struct {
		Status    string    `json:"status"`
		Code      ErrorCode `json:"code"`
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
	}
)

func success(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, &SuccessResponse{
		Status:    http.StatusOK,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// newError builds an HTTP error whose body is an ErrorResponse.
func newError(status int, code ErrorCode, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, &ErrorResponse{
		Status:    "error",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	})
}

func badRequest(code ErrorCode, message string) *echo.HTTPError {
	return newError(http.StatusBadRequest, code, message)
}

// internalError logs err and hides it from the client.
func internalError(op string, err error) *echo.HTTPError {
	logger.Error("server: "+op, "err", err)
	return newError(http.StatusInternalServerError, CodeInternal, "internal server error")
}

// errorHandler renders every error, including echo's own 404 and 405, in
// the ErrorResponse envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = internalError("unhandled", err)
	}

	body, ok := he.Message.(*ErrorResponse)
	if !ok {
		code := CodeInternal
		if he.Code == http.StatusNotFound {
			code = CodeNotFound
		} else if he.Code < http.StatusInternalServerError {
			code = CodeInvalidBody
		}
		body = &ErrorResponse{
			Status:    "error",
			Code:      code,
			Message:   http.StatusText(he.Code),
			Timestamp: time.Now(),
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, body)
	}
	if err != nil {
		logger.Error("server: writing error response", "err", err)
	}
}
