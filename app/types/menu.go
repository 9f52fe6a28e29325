package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	MinSpiceLevel = 1
	MaxSpiceLevel = 5
)

type CreateRestaurantRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type UpdateRestaurantRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
}

type CreateDishRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       *string  `json:"image,omitempty"`
	SpiceLevel  *int     `json:"spiceLevel,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
}

// UpdateDishRequest leaves omitted fields untouched; an explicit null clears image or spiceLevel.
type UpdateDishRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Image       Optional[string] `json:"image"`
	SpiceLevel  Optional[int]    `json:"spiceLevel"`
	CategoryIDs *[]string        `json:"categoryIds,omitempty"`
}

type StoreEmailRequest struct {
	Email string `json:"email"`
}

type GetMenuRequest struct {
	Slug string `json:"slug"`
}

type RestaurantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Slug      string    `json:"slug"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RestaurantCounts struct {
	Categories int `json:"categories"`
	Dishes     int `json:"dishes"`
}

type RestaurantSummaryResponse struct {
	RestaurantResponse
	Count RestaurantCounts `json:"_count"`
}

type RestaurantDetailResponse struct {
	RestaurantResponse
	Categories []*CategoryResponse `json:"categories"`
	Dishes     []*DishResponse     `json:"dishes"`
}

type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RestaurantID string    `json:"restaurantId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CategoryCounts struct {
	Dishes int `json:"dishes"`
}

type CategorySummaryResponse struct {
	CategoryResponse
	Count CategoryCounts `json:"_count"`
}

type CategoryDetailResponse struct {
	CategoryResponse
	Restaurant *RestaurantResponse `json:"restaurant"`
	Dishes     []*DishResponse     `json:"dishes"`
}

type DishResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Image        *string             `json:"image"`
	SpiceLevel   *int                `json:"spiceLevel"`
	RestaurantID string              `json:"restaurantId"`
	Categories   []*CategoryResponse `json:"categories"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type DishDetailResponse struct {
	DishResponse
	Restaurant *RestaurantResponse `json:"restaurant"`
}

type MenuCategory struct {
	CategoryResponse
	Dishes []*DishResponse `json:"dishes"`
}

type MenuResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Slug       string          `json:"slug"`
	Categories []*MenuCategory `json:"categories"`
	Dishes     []*DishResponse `json:"dishes"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type EmailResponse struct {
	Email string `json:"email"`
}

type StoreEmailResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}

func NewCreateRestaurantRequestFromContext(ctx echo.Context) (*CreateRestaurantRequest, error) {
	var body CreateRestaurantRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateRestaurantRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
	if r.Name == "" {
		return errors.New("restaurant name is required")
	}
	if r.Location == "" {
		return errors.New("location is required")
	}

	return nil
}

func NewUpdateRestaurantRequestFromContext(ctx echo.Context) (*UpdateRestaurantRequest, error) {
	var body UpdateRestaurantRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateRestaurantRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.Location != nil && strings.TrimSpace(*r.Location) == "" {
		return errors.New("location must not be empty")
	}

	return nil
}

func NewCreateCategoryRequestFromContext(ctx echo.Context) (*CreateCategoryRequest, error) {
	var body CreateCategoryRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateCategoryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("category name is required")
	}

	return nil
}

func NewUpdateCategoryRequestFromContext(ctx echo.Context) (*UpdateCategoryRequest, error) {
	var body UpdateCategoryRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateCategoryRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name must not be empty")
	}

	return nil
}

func NewCreateDishRequestFromContext(ctx echo.Context) (*CreateDishRequest, error) {
	var body CreateDishRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateDishRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if r.Name == "" {
		return errors.New("dish name is required")
	}
	if r.Description == "" {
		return errors.New("description is required")
	}
	if r.SpiceLevel != nil {
		if err := validateSpiceLevel(*r.SpiceLevel); err != nil {
			return err
		}
	}

	return nil
}

func NewUpdateDishRequestFromContext(ctx echo.Context) (*UpdateDishRequest, error) {
	var body UpdateDishRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateDishRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return errors.New("description must not be empty")
	}
	if r.SpiceLevel.Valid {
		if err := validateSpiceLevel(r.SpiceLevel.Value); err != nil {
			return err
		}
	}

	return nil
}

func NewStoreEmailRequestFromContext(ctx echo.Context) (*StoreEmailRequest, error) {
	var body StoreEmailRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *StoreEmailRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if !isEmail(r.Email) {
		return errors.New("email is invalid")
	}

	return nil
}

func (r *GetMenuRequest) Validate() error {
	if strings.TrimSpace(r.Slug) == "" {
		return errors.New("slug is required")
	}

	return nil
}

func validateSpiceLevel(level int) error {
	if level < MinSpiceLevel || level > MaxSpiceLevel {
		return errors.New("spiceLevel must be between 1 and 5")
	}
	return nil
}
