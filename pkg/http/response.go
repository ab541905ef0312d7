package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the error response payload.
type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessResponse writes the payload as-is with status 200.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// ErrorResponse writes an error payload with the given status.
func ErrorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Error: message})
}

// BadRequestResponse writes a 400 error payload.
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message)
}

// InternalServerErrorResponse writes a 500 error payload.
func InternalServerErrorResponse(c echo.Context) error {
	return ErrorResponse(c, http.StatusInternalServerError, "Something went wrong")
}

// AppErrorResponse writes an application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, appErr.Message)
	}
	return InternalServerErrorResponse(c)
}
