package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-menu/app/entity"
)

const categoryColumns = `c.id, c.name, c.restaurant_id, c.created_at, c.updated_at`

type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, restaurant_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.RestaurantID,
		category.CreatedAt,
		category.UpdatedAt,
	)
	return err
}

// FindByIDForOwner resolves a category through its restaurant's owner.
func (r *CategoryRepository) FindByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories c
		JOIN restaurants r ON r.id = c.restaurant_id
		WHERE c.id = ? AND r.owner_id = ?
	`
	return r.findOne(ctx, query, id, ownerID)
}

func (r *CategoryRepository) FindByRestaurantAndName(ctx context.Context, restaurantID, name string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.restaurant_id = ? AND c.name = ?`
	return r.findOne(ctx, query, restaurantID, name)
}

func (r *CategoryRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.restaurant_id = ? ORDER BY c.name ASC`
	rows, err := r.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategories(rows)
}

func (r *CategoryRepository) ListSummariesByRestaurant(ctx context.Context, restaurantID string) ([]*entity.CategorySummary, error) {
	query := `
		SELECT ` + categoryColumns + `,
		       (SELECT COUNT(*) FROM dish_categories dc WHERE dc.category_id = c.id) AS dish_count
		FROM categories c
		WHERE c.restaurant_id = ?
		ORDER BY c.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]*entity.CategorySummary, 0)
	for rows.Next() {
		s := &entity.CategorySummary{}
		if err = rows.Scan(
			&s.ID,
			&s.Name,
			&s.RestaurantID,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.DishCount,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListByDish returns the categories linked to a dish, ordered by name.
func (r *CategoryRepository) ListByDish(ctx context.Context, dishID string) ([]*entity.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories c
		JOIN dish_categories dc ON dc.category_id = c.id
		WHERE dc.dish_id = ?
		ORDER BY c.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, dishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategories(rows)
}

// CountInRestaurant counts how many of ids are categories of restaurantID.
func (r *CategoryRepository) CountInRestaurant(ctx context.Context, restaurantID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM categories WHERE restaurant_id = ? AND id IN (` + placeholders(len(ids)) + `)`
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, restaurantID)
	for _, id := range ids {
		args = append(args, id)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories SET
			name = ?,
			updated_at = ?
		WHERE id = ?
	`
	category.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, category.Name, category.UpdatedAt, category.ID)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

func (r *CategoryRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Category, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	category, err := scanCategory(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

func collectCategories(rows *sql.Rows) ([]*entity.Category, error) {
	categories := make([]*entity.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func scanCategory(scan rowScanner) (*entity.Category, error) {
	category := &entity.Category{}
	if err := scan(
		&category.ID,
		&category.Name,
		&category.RestaurantID,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return category, nil
}
