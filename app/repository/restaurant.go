package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-menu/app/entity"
)

const restaurantColumns = `r.id, r.name, r.location, r.slug, r.owner_id, r.created_at, r.updated_at`

type RestaurantRepository struct {
	db DBTX
}

func NewRestaurantRepository(db DBTX) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, location, slug, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		restaurant.ID,
		restaurant.Name,
		restaurant.Location,
		restaurant.Slug,
		restaurant.OwnerID,
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	)
	return err
}

// FindByIDForOwner returns nil when the restaurant does not exist or belongs to someone else.
func (r *RestaurantRepository) FindByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants r WHERE r.id = ? AND r.owner_id = ?`
	return r.findOne(ctx, query, id, ownerID)
}

func (r *RestaurantRepository) FindBySlug(ctx context.Context, slug string) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants r WHERE r.slug = ?`
	return r.findOne(ctx, query, slug)
}

// SlugTaken reports whether slug is used by a restaurant other than excludeID.
func (r *RestaurantRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants WHERE slug = ? AND id <> ?`, slug, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RestaurantRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.RestaurantSummary, error) {
	query := `
		SELECT ` + restaurantColumns + `,
		       (SELECT COUNT(*) FROM categories c WHERE c.restaurant_id = r.id) AS category_count,
		       (SELECT COUNT(*) FROM dishes d WHERE d.restaurant_id = r.id) AS dish_count
		FROM restaurants r
		WHERE r.owner_id = ?
		ORDER BY r.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]*entity.RestaurantSummary, 0)
	for rows.Next() {
		s := &entity.RestaurantSummary{}
		if err = rows.Scan(
			&s.ID,
			&s.Name,
			&s.Location,
			&s.Slug,
			&s.OwnerID,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.CategoryCount,
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

func (r *RestaurantRepository) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	query := `
		UPDATE restaurants SET
			name = ?,
			location = ?,
			slug = ?,
			updated_at = ?
		WHERE id = ?
	`
	restaurant.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		restaurant.Name,
		restaurant.Location,
		restaurant.Slug,
		restaurant.UpdatedAt,
		restaurant.ID,
	)
	return err
}

func (r *RestaurantRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id)
	return err
}

func (r *RestaurantRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Restaurant, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	restaurant, err := scanRestaurant(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return restaurant, nil
}

func scanRestaurant(scan rowScanner) (*entity.Restaurant, error) {
	restaurant := &entity.Restaurant{}
	if err := scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Location,
		&restaurant.Slug,
		&restaurant.OwnerID,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return restaurant, nil
}
