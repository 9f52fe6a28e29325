package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-menu/app/entity"
)

const dishColumns = `d.id, d.name, d.description, d.image, d.spice_level, d.restaurant_id, d.created_at, d.updated_at`

type DishRepository struct {
	db DBTX
}

func NewDishRepository(db DBTX) *DishRepository {
	return &DishRepository{db: db}
}

func (r *DishRepository) Create(ctx context.Context, dish *entity.Dish) error {
	query := `
		INSERT INTO dishes (id, name, description, image, spice_level, restaurant_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		dish.ID,
		dish.Name,
		dish.Description,
		dish.Image,
		dish.SpiceLevel,
		dish.RestaurantID,
		dish.CreatedAt,
		dish.UpdatedAt,
	)
	return err
}

// FindByIDForOwner resolves a dish through its restaurant's owner.
func (r *DishRepository) FindByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Dish, error) {
	query := `
		SELECT ` + dishColumns + `
		FROM dishes d
		JOIN restaurants r ON r.id = d.restaurant_id
		WHERE d.id = ? AND r.owner_id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id, ownerID)
	dish, err := scanDish(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return dish, nil
}

func (r *DishRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*entity.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes d WHERE d.restaurant_id = ? ORDER BY d.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDishes(rows)
}

func (r *DishRepository) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Dish, error) {
	query := `
		SELECT ` + dishColumns + `
		FROM dishes d
		JOIN dish_categories dc ON dc.dish_id = d.id
		WHERE dc.category_id = ?
		ORDER BY d.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDishes(rows)
}

// ListCategoryLinks returns every dish/category link inside a restaurant.
func (r *DishRepository) ListCategoryLinks(ctx context.Context, restaurantID string) ([]entity.DishCategory, error) {
	query := `
		SELECT dc.dish_id, dc.category_id
		FROM dish_categories dc
		JOIN dishes d ON d.id = dc.dish_id
		WHERE d.restaurant_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]entity.DishCategory, 0)
	for rows.Next() {
		var link entity.DishCategory
		if err = rows.Scan(&link.DishID, &link.CategoryID); err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

func (r *DishRepository) Update(ctx context.Context, dish *entity.Dish) error {
	query := `
		UPDATE dishes SET
			name = ?,
			description = ?,
			image = ?,
			spice_level = ?,
			updated_at = ?
		WHERE id = ?
	`
	dish.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		dish.Name,
		dish.Description,
		dish.Image,
		dish.SpiceLevel,
		dish.UpdatedAt,
		dish.ID,
	)
	return err
}

func (r *DishRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dishes WHERE id = ?`, id)
	return err
}

func (r *DishRepository) AddCategories(ctx context.Context, dishID string, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	query := `INSERT INTO dish_categories (dish_id, category_id) VALUES (?, ?)`
	for _, categoryID := range categoryIDs {
		if _, err := r.db.ExecContext(ctx, query, dishID, categoryID); err != nil {
			return err
		}
	}
	return nil
}

func (r *DishRepository) ClearCategories(ctx context.Context, dishID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dish_categories WHERE dish_id = ?`, dishID)
	return err
}

func collectDishes(rows *sql.Rows) ([]*entity.Dish, error) {
	dishes := make([]*entity.Dish, 0)
	for rows.Next() {
		dish, err := scanDish(rows.Scan)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dishes, nil
}

func scanDish(scan rowScanner) (*entity.Dish, error) {
	dish := &entity.Dish{}
	if err := scan(
		&dish.ID,
		&dish.Name,
		&dish.Description,
		&dish.Image,
		&dish.SpiceLevel,
		&dish.RestaurantID,
		&dish.CreatedAt,
		&dish.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return dish, nil
}
