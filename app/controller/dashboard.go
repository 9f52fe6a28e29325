package controller

import (
	"net/http"

	"github.com/vibast-solutions/ms-go-menu/app/dto"
	"github.com/vibast-solutions/ms-go-menu/app/middleware"
	"github.com/vibast-solutions/ms-go-menu/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type DashboardController struct{}

func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

func (c *DashboardController) GetEmail(ctx echo.Context) error {
	email, ok := middleware.UserEmail(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	return ctx.JSON(http.StatusOK, &types.EmailResponse{Email: email})
}

// StoreEmail confirms that the submitted email is the one the session belongs to.
func (c *DashboardController) StoreEmail(ctx echo.Context) error {
	email, ok := middleware.UserEmail(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	req, err := types.NewStoreEmailRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind store email request")
		return ctx.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	if req.Email != email {
		logrus.WithField("email", email).Warn("Store email rejected: email does not match session")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "provided email does not match authenticated user"})
	}

	return ctx.JSON(http.StatusOK, &types.StoreEmailResponse{Success: true, Email: email})
}
