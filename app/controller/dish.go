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

type DishController struct {
	dishService service.DishService
}

func NewDishController(dishService service.DishService) *DishController {
	return &DishController{dishService: dishService}
}

func (c *DishController) Create(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	req, err := types.NewCreateDishRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create dish request")
		return ctx.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	restaurantID := ctx.Param("id")
	entry := logrus.WithFields(logrus.Fields{"user_id": userID, "restaurant_id": restaurantID})
	result, err := c.dishService.Create(ctx.Request().Context(), userID, restaurantID, req)
	if err != nil {
		return respondError(ctx, err, entry, "Create dish")
	}

	entry.WithField("dish_id", result.ID).Info("Dish created")
	return ctx.JSON(http.StatusCreated, result)
}

func (c *DishController) List(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	restaurantID := ctx.Param("id")
	result, err := c.dishService.List(ctx.Request().Context(), userID, restaurantID)
	if err != nil {
		return respondError(ctx, err, logrus.WithFields(logrus.Fields{"user_id": userID, "restaurant_id": restaurantID}), "List dishes")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (c *DishController) Get(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id := ctx.Param("id")
	result, err := c.dishService.Get(ctx.Request().Context(), userID, id)
	if err != nil {
		return respondError(ctx, err, logrus.WithFields(logrus.Fields{"user_id": userID, "dish_id": id}), "Get dish")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (c *DishController) Update(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	req, err := types.NewUpdateDishRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update dish request")
		return ctx.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	id := ctx.Param("id")
	entry := logrus.WithFields(logrus.Fields{"user_id": userID, "dish_id": id})
	result, err := c.dishService.Update(ctx.Request().Context(), userID, id, req)
	if err != nil {
		return respondError(ctx, err, entry, "Update dish")
	}

	entry.Info("Dish updated")
	return ctx.JSON(http.StatusOK, result)
}

func (c *DishController) Delete(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id := ctx.Param("id")
	entry := logrus.WithFields(logrus.Fields{"user_id": userID, "dish_id": id})
	if err := c.dishService.Delete(ctx.Request().Context(), userID, id); err != nil {
		return respondError(ctx, err, entry, "Delete dish")
	}

	entry.Info("Dish deleted")
	return ctx.JSON(http.StatusOK, &types.SuccessResponse{Success: true})
}
