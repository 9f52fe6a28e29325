package service

import (
	"context"

	"github.com/vibast-solutions/ms-go-menu/app/entity"
	"github.com/vibast-solutions/ms-go-menu/app/repository"
)

// Every owner-scoped lookup goes through these helpers. A resource owned by
// someone else is reported exactly like a missing one.

func ownedRestaurant(ctx context.Context, repo *repository.RestaurantRepository, ownerID, id string) (*entity.Restaurant, error) {
	restaurant, err := repo.FindByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	return restaurant, nil
}

func ownedCategory(ctx context.Context, repo *repository.CategoryRepository, ownerID, id string) (*entity.Category, error) {
	category, err := repo.FindByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func ownedDish(ctx context.Context, repo *repository.DishRepository, ownerID, id string) (*entity.Dish, error) {
	dish, err := repo.FindByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, ErrDishNotFound
	}
	return dish, nil
}
