package controller

import (
	"errors"
	"net/http"

	"github.com/vibast-solutions/ms-go-menu/app/dto"
	"github.com/vibast-solutions/ms-go-menu/app/middleware"
	"github.com/vibast-solutions/ms-go-menu/app/service"
	"github.com/vibast-solutions/ms-go-menu/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	authService service.AuthService
	cookies     middleware.CookieOptions
}

func NewAuthController(authService service.AuthService, cookies middleware.CookieOptions) *AuthController {
	return &AuthController{authService: authService, cookies: cookies}
}

func (c *AuthController) RequestCode(ctx echo.Context) error {
	req, err := types.NewRequestCodeRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind request code request")
		return ctx.JSON(http.StatusBadRequest, errInvalidBody)
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Request code validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithFields(logrus.Fields{
		"email":  req.Email,
		"signup": req.IsSignup(),
	}).Info("Verification code requested")
	result, err := c.authService.RequestCode(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			logrus.WithField("email", req.Email).Warn("Request code failed: user already exists")
			return ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("email", req.Email).Warn("Request code failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, service.ErrTooManyRequests) {
			logrus.WithField("email", req.Email).Warn("Request code failed: rate limited")
			return ctx.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, service.ErrNotificationFailed) {
			logrus.WithError(err).WithField("email", req.Email).Error("Request code failed: email not sent")
			return ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: service.ErrNotificationFailed.Error()})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Request code failed")
		return ctx.JSON(http.StatusInternalServerError, errInternal)
	}

	logrus.WithField("email", req.Email).Info("Verification code sent")
	return ctx.JSON(http.StatusOK, result)
}

func (c *AuthController) VerifyCode(ctx echo.Context) error {
	req, err := types.NewVerifyCodeRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind verify code request")
		return ctx.JSON(http.StatusBadRequest, errInvalidBody)
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Verify code validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	result, err := c.authService.VerifyCode(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("email", req.Email).Warn("Verify code failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, service.ErrInvalidCode) || errors.Is(err, service.ErrCodeExpired) {
			logrus.WithField("email", req.Email).Warn("Verify code failed: " + err.Error())
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, service.ErrTooManyAttempts) {
			logrus.WithField("email", req.Email).Warn("Verify code failed: too many attempts")
			return ctx.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: err.Error()})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Verify code failed")
		return ctx.JSON(http.StatusInternalServerError, errInternal)
	}

	middleware.WriteSessionCookie(ctx, result.SessionToken, result.ExpiresAt, c.cookies)

	logrus.WithFields(logrus.Fields{
		"user_id": result.User.ID,
		"email":   result.User.Email,
	}).Info("User signed in")
	return ctx.JSON(http.StatusOK, result)
}

// GetSession never fails: a missing or unusable session is reported as a null user.
func (c *AuthController) GetSession(ctx echo.Context) error {
	token := middleware.SessionTokenFromRequest(ctx)
	result := c.authService.GetSession(ctx.Request().Context(), token)

	if token != "" && result.User == nil {
		logrus.Debug("Discarding unusable session cookie")
		middleware.ClearSessionCookie(ctx, c.cookies)
	}
	return ctx.JSON(http.StatusOK, result)
}

func (c *AuthController) Logout(ctx echo.Context) error {
	middleware.ClearSessionCookie(ctx, c.cookies)
	return ctx.JSON(http.StatusOK, &types.LogoutResponse{Success: true})
}

func (c *AuthController) Me(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	profile, err := c.authService.Me(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("user_id", userID).Warn("Me failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Me failed")
		return ctx.JSON(http.StatusInternalServerError, errInternal)
	}

	return ctx.JSON(http.StatusOK, profile)
}
