package controller

import (
	"errors"
	"net/http"

	"github.com/vibast-solutions/ms-go-menu/app/dto"
	"github.com/vibast-solutions/ms-go-menu/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

var (
	errInvalidBody  = dto.ErrorResponse{Error: "invalid request body"}
	errUnauthorized = dto.ErrorResponse{Error: "unauthorized"}
	errInternal     = dto.ErrorResponse{Error: "internal server error"}
)

// statusFor maps service errors onto HTTP statuses. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrDishNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrCategoryExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrCodeExpired),
		errors.Is(err, service.ErrInvalidCategories):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrTooManyRequests),
		errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrNotificationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx echo.Context, err error, entry *logrus.Entry, action string) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		entry.WithError(err).Error(action + " failed")
		return ctx.JSON(status, errInternal)
	}
	if status == http.StatusBadGateway {
		entry.WithError(err).Error(action + " failed")
	} else {
		entry.WithField("reason", err.Error()).Warn(action + " rejected")
	}
	return ctx.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func unauthorized(ctx echo.Context) error {
	logrus.Warn("Missing user_id in context")
	return ctx.JSON(http.StatusUnauthorized, errUnauthorized)
}
