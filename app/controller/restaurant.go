package controller

import (
	"net/http"

	"github.com/vibast-solutions/ms-go-menu/app/dto"
	"github.com/vibast-solutions/ms-go-menu/app/middleware"
	"github.com/vibast-solutions/ms-go-menu/app/service"
	"github.com/vibast-solutions/ms-go-menu/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type RestaurantController struct {
	restaurantService service.RestaurantService
}

func NewRestaurantController(restaurantService service.RestaurantService) *RestaurantController {
	return &RestaurantController{restaurantService: restaurantService}
}

func (c *RestaurantController) Create(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	req, err := types.NewCreateRestaurantRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create restaurant request")
		return ctx.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	entry := logrus.WithField("user_id", userID)
	result, err := c.restaurantService.Create(ctx.Request().Context(), userID, req)
	if err != nil {
		return respondError(ctx, err, entry, "Create restaurant")
	}

	entry.WithFields(logrus.Fields{
		"restaurant_id": result.ID,
		"slug":          result.Slug,
	}).Info("Restaurant created")
	return ctx.JSON(http.StatusCreated, result)
}

func (c *RestaurantController) List(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	result, err := c.restaurantService.List(ctx.Request().Context(), userID)
	if err != nil {
		return respondError(ctx, err, logrus.WithField("user_id", userID), "List restaurants")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (c *RestaurantController) Get(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id := ctx.Param("id")
	result, err := c.restaurantService.Get(ctx.Request().Context(), userID, id)
	if err != nil {
		return respondError(ctx, err, logrus.WithFields(logrus.Fields{"user_id": userID, "restaurant_id": id}), "Get restaurant")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (c *RestaurantController) Update(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	req, err := types.NewUpdateRestaurantRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update restaurant request")
		return ctx.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	id := ctx.Param("id")
	entry := logrus.WithFields(logrus.Fields{"user_id": userID, "restaurant_id": id})
	result, err := c.restaurantService.Update(ctx.Request().Context(), userID, id, req)
	if err != nil {
		return respondError(ctx, err, entry, "Update restaurant")
	}

	entry.Info("Restaurant updated")
	return ctx.JSON(http.StatusOK, result)
}

func (c *RestaurantController) Delete(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id := ctx.Param("id")
	entry := logrus.WithFields(logrus.Fields{"user_id": userID, "restaurant_id": id})
	if err := c.restaurantService.Delete(ctx.Request().Context(), userID, id); err != nil {
		return respondError(ctx, err, entry, "Delete restaurant")
	}

	entry.Info("Restaurant deleted")
	return ctx.JSON(http.StatusOK, &types.SuccessResponse{Success: true})
}

// Menu serves the public menu page data. No session is required.
func (c *RestaurantController) Menu(ctx echo.Context) error {
	req := &types.GetMenuRequest{Slug: ctx.Param("slug")}
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	result, err := c.restaurantService.GetMenu(ctx.Request().Context(), req)
	if err != nil {
		return respondError(ctx, err, logrus.WithField("slug", req.Slug), "Get menu")
	}
	return ctx.JSON(http.StatusOK, result)
}
