package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-menu/app/entity"
	"github.com/vibast-solutions/ms-go-menu/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

var restaurantColumns = []string{"id", "name", "location", "slug", "owner_id", "created_at", "updated_at"}

func TestRestaurantRepository_FindByIDForOwner(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewRestaurantRepository(db)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM restaurants r WHERE r.id = \? AND r.owner_id = \?`).
		WithArgs("rest-1", "owner-1").
		WillReturnRows(sqlmock.NewRows(restaurantColumns).AddRow("rest-1", "Bistro", "Cluj", "bistro", "owner-1", now, now))
	mock.ExpectQuery(`(?s)FROM restaurants r WHERE r.id = \? AND r.owner_id = \?`).
		WithArgs("rest-1", "intruder").
		WillReturnRows(sqlmock.NewRows(restaurantColumns))

	restaurant, err := repo.FindByIDForOwner(context.Background(), "rest-1", "owner-1")
	if err != nil || restaurant == nil || restaurant.Slug != "bistro" {
		t.Fatalf("unexpected result: %+v, %v", restaurant, err)
	}

	restaurant, err = repo.FindByIDForOwner(context.Background(), "rest-1", "intruder")
	if err != nil || restaurant != nil {
		t.Fatalf("expected no restaurant for a foreign owner, got %+v, %v", restaurant, err)
	}
}

func TestRestaurantRepository_SlugTaken(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewRestaurantRepository(db)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM restaurants WHERE slug = \? AND id <> \?`).
		WithArgs("bistro", "rest-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := repo.SlugTaken(context.Background(), "bistro", "rest-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if taken {
		t.Fatalf("expected slug to be free")
	}
}

func TestRestaurantRepository_ListByOwnerCounts(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewRestaurantRepository(db)
	now := time.Now()
	columns := append(append([]string{}, restaurantColumns...), "category_count", "dish_count")

	mock.ExpectQuery(`(?s)AS category_count.+AS dish_count\s+FROM restaurants r\s+WHERE r.owner_id = \?\s+ORDER BY r.created_at DESC`).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("rest-2", "Cafe", "Iasi", "cafe", "owner-1", now, now, 0, 0).
			AddRow("rest-1", "Bistro", "Cluj", "bistro", "owner-1", now, now, 2, 5))

	summaries, err := repo.ListByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 || summaries[1].CategoryCount != 2 || summaries[1].DishCount != 5 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestCategoryRepository_CountInRestaurant(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewCategoryRepository(db)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories WHERE restaurant_id = \? AND id IN \(\?, \?\)`).
		WithArgs("rest-1", "cat-1", "cat-2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountInRestaurant(context.Background(), "rest-1", []string{"cat-1", "cat-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1, got %d", count)
	}

	count, err = repo.CountInRestaurant(context.Background(), "rest-1", nil)
	if err != nil || count != 0 {
		t.Fatalf("expected no query for empty ids, got %d, %v", count, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCategoryRepository_FindByIDForOwnerJoinsRestaurant(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewCategoryRepository(db)
	mock.ExpectQuery(`(?s)FROM categories c\s+JOIN restaurants r ON r.id = c.restaurant_id\s+WHERE c.id = \? AND r.owner_id = \?`).
		WithArgs("cat-1", "intruder").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "restaurant_id", "created_at", "updated_at"}))

	category, err := repo.FindByIDForOwner(context.Background(), "cat-1", "intruder")
	if err != nil || category != nil {
		t.Fatalf("expected nil category, got %+v, %v", category, err)
	}
}

func TestDishRepository_CreateWithNullableFields(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewDishRepository(db)
	now := time.Now()
	dish := &entity.Dish{
		ID:           "dish-1",
		Name:         "Soup",
		Description:  "Hot",
		SpiceLevel:   sql.NullInt64{Int64: 3, Valid: true},
		RestaurantID: "rest-1",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec(`(?s)INSERT INTO dishes \(id, name, description, image, spice_level, restaurant_id, created_at, updated_at\)`).
		WithArgs("dish-1", "Soup", "Hot", sql.NullString{}, sql.NullInt64{Int64: 3, Valid: true}, "rest-1", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), dish); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDishRepository_CategoryLinks(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewDishRepository(db)
	insertLink := `INSERT INTO dish_categories \(dish_id, category_id\) VALUES \(\?, \?\)`

	mock.ExpectExec(`DELETE FROM dish_categories WHERE dish_id = \?`).WithArgs("dish-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(insertLink).WithArgs("dish-1", "cat-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertLink).WithArgs("dish-1", "cat-2").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`(?s)SELECT dc.dish_id, dc.category_id\s+FROM dish_categories dc\s+JOIN dishes d ON d.id = dc.dish_id\s+WHERE d.restaurant_id = \?`).
		WithArgs("rest-1").
		WillReturnRows(sqlmock.NewRows([]string{"dish_id", "category_id"}).AddRow("dish-1", "cat-1").AddRow("dish-1", "cat-2"))

	ctx := context.Background()
	if err := repo.ClearCategories(ctx, "dish-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := repo.AddCategories(ctx, "dish-1", []string{"cat-1", "cat-2"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	links, err := repo.ListCategoryLinks(ctx, "rest-1")
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	if len(links) != 2 || links[1] != (entity.DishCategory{DishID: "dish-1", CategoryID: "cat-2"}) {
		t.Fatalf("unexpected links: %+v", links)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDishRepository_ScansNullableFields(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewDishRepository(db)
	now := time.Now()
	columns := []string{"id", "name", "description", "image", "spice_level", "restaurant_id", "created_at", "updated_at"}
	mock.ExpectQuery(`(?s)FROM dishes d WHERE d.restaurant_id = \? ORDER BY d.created_at DESC`).
		WithArgs("rest-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("dish-1", "Soup", "", nil, nil, "rest-1", now, now).
			AddRow("dish-2", "Curry", "Hot", "https://img/curry.png", 5, "rest-1", now, now))

	dishes, err := repo.ListByRestaurant(context.Background(), "rest-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dishes) != 2 {
		t.Fatalf("expected 2 dishes, got %d", len(dishes))
	}
	if dishes[0].Image.Valid || dishes[0].SpiceLevel.Valid {
		t.Fatalf("expected null image and spice level, got %+v", dishes[0])
	}
	if dishes[1].Image.String != "https://img/curry.png" || dishes[1].SpiceLevel.Int64 != 5 {
		t.Fatalf("unexpected dish: %+v", dishes[1])
	}
}
