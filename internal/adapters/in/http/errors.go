package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the uniform error body: a stable machine-readable code
// plus a human-readable message.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps the error taxonomy to HTTP statuses and stable codes.
// Conflicts (lost races, closed transitions, violated uniqueness) are all
// 409 but keep distinct codes so clients can react differently.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code: "UNAUTHENTICATED", Message: "authentication required",
		})
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, commands.ErrDriverNotAssignedToOrder):
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code: "UNAUTHORIZED", Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: "INVALID_INPUT", Message: err.Error(),
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code: "INVALID_TRANSITION", Message: err.Error(),
		})
	case errors.Is(err, errs.ErrDriverUnavailable):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code: "DRIVER_UNAVAILABLE", Message: err.Error(),
		})
	case errors.Is(err, errs.ErrDriverBusy):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code: "DRIVER_BUSY", Message: err.Error(),
		})
	case errors.Is(err, errs.ErrInvalidOperation):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code: "INVALID_OPERATION", Message: err.Error(),
		})
	case errors.Is(err, errs.ErrStore):
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code: "STORE_ERROR", Message: "storage operation failed",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code: "INTERNAL", Message: "internal error",
		})
	}
}
