package entity

import (
	"database/sql"
	"time"
)

type Restaurant struct {
	ID        string
	Name      string
	Location  string
	Slug      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestaurantSummary is a restaurant row with its aggregate counts.
type RestaurantSummary struct {
	Restaurant
	CategoryCount int
	DishCount     int
}

type Category struct {
	ID           string
	Name         string
	RestaurantID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CategorySummary struct {
	Category
	DishCount int
}

type Dish struct {
	ID           string
	Name         string
	Description  string
	Image        sql.NullString
	SpiceLevel   sql.NullInt64
	RestaurantID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DishCategory links a dish to one of its categories.
type DishCategory struct {
	DishID     string
	CategoryID string
}
