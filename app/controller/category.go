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

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

func (c *CategoryController) Create(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	req, err := types.NewCreateCategoryRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create category request")
		return ctx.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	restaurantID := ctx.Param("id")
	entry := logrus.WithFields(logrus.Fields{"user_id": userID, "restaurant_id": restaurantID})
	result, err := c.categoryService.Create(ctx.Request().Context(), userID, restaurantID, req)
	if err != nil {
		return respondError(ctx, err, entry, "Create category")
	}

	entry.WithField("category_id", result.ID).Info("Category created")
	return ctx.JSON(http.StatusCreated, result)
}

func (c *CategoryController) List(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	restaurantID := ctx.Param("id")
	result, err := c.categoryService.List(ctx.Request().Context(), userID, restaurantID)
	if err != nil {
		return respondError(ctx, err, logrus.WithFields(logrus.Fields{"user_id": userID, "restaurant_id": restaurantID}), "List categories")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (c *CategoryController) Get(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id := ctx.Param("id")
	result, err := c.categoryService.Get(ctx.Request().Context(), userID, id)
	if err != nil {
		return respondError(ctx, err, logrus.WithFields(logrus.Fields{"user_id": userID, "category_id": id}), "Get category")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (c *CategoryController) Update(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	req, err := types.NewUpdateCategoryRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update category request")
		return ctx.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	id := ctx.Param("id")
	entry := logrus.WithFields(logrus.Fields{"user_id": userID, "category_id": id})
	result, err := c.categoryService.Update(ctx.Request().Context(), userID, id, req)
	if err != nil {
		return respondError(ctx, err, entry, "Update category")
	}

	entry.Info("Category updated")
	return ctx.JSON(http.StatusOK, result)
}

func (c *CategoryController) Delete(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id := ctx.Param("id")
	entry := logrus.WithFields(logrus.Fields{"user_id": userID, "category_id": id})
	if err := c.categoryService.Delete(ctx.Request().Context(), userID, id); err != nil {
		return respondError(ctx, err, entry, "Delete category")
	}

	entry.Info("Category deleted")
	return ctx.JSON(http.StatusOK, &types.SuccessResponse{Success: true})
}
