package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-menu/app/entity"
	"github.com/vibast-solutions/ms-go-menu/app/repository"
	"github.com/vibast-solutions/ms-go-menu/app/types"

	"github.com/google/uuid"
)

type DishService interface {
	Create(ctx context.Context, ownerID, restaurantID string, req *types.CreateDishRequest) (*types.DishResponse, error)
	List(ctx context.Context, ownerID, restaurantID string) ([]*types.DishResponse, error)
	Get(ctx context.Context, ownerID, id string) (*types.DishDetailResponse, error)
	Update(ctx context.Context, ownerID, id string, req *types.UpdateDishRequest) (*types.DishResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type dishService struct {
	db             *sql.DB
	restaurantRepo *repository.RestaurantRepository
	categoryRepo   *repository.CategoryRepository
	dishRepo       *repository.DishRepository
}

func NewDishService(
	db *sql.DB,
	restaurantRepo *repository.RestaurantRepository,
	categoryRepo *repository.CategoryRepository,
	dishRepo *repository.DishRepository,
) DishService {
	return &dishService{
		db:             db,
		restaurantRepo: restaurantRepo,
		categoryRepo:   categoryRepo,
		dishRepo:       dishRepo,
	}
}

func (s *dishService) Create(ctx context.Context, ownerID, restaurantID string, req *types.CreateDishRequest) (*types.DishResponse, error) {
	restaurant, err := ownedRestaurant(ctx, s.restaurantRepo, ownerID, restaurantID)
	if err != nil {
		return nil, err
	}

	categoryIDs := uniqueIDs(req.CategoryIDs)
	if err = s.checkCategories(ctx, restaurant.ID, categoryIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	dish := &entity.Dish{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		RestaurantID: restaurant.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Image != nil {
		dish.Image = sql.NullString{String: *req.Image, Valid: true}
	}
	if req.SpiceLevel != nil {
		dish.SpiceLevel = sql.NullInt64{Int64: int64(*req.SpiceLevel), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txDishRepo := repository.NewDishRepository(tx)
	if err = txDishRepo.Create(ctx, dish); err != nil {
		return nil, err
	}
	if err = txDishRepo.AddCategories(ctx, dish.ID, categoryIDs); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return s.withCategories(ctx, dish)
}

func (s *dishService) List(ctx context.Context, ownerID, restaurantID string) ([]*types.DishResponse, error) {
	restaurant, err := ownedRestaurant(ctx, s.restaurantRepo, ownerID, restaurantID)
	if err != nil {
		return nil, err
	}

	dishes, err := s.dishRepo.ListByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}
	links, err := s.dishRepo.ListCategoryLinks(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}

	return newMenuIndex(categories, dishes, links).dishResponses(dishes), nil
}

func (s *dishService) Get(ctx context.Context, ownerID, id string) (*types.DishDetailResponse, error) {
	dish, err := ownedDish(ctx, s.dishRepo, ownerID, id)
	if err != nil {
		return nil, err
	}

	restaurant, err := ownedRestaurant(ctx, s.restaurantRepo, ownerID, dish.RestaurantID)
	if err != nil {
		return nil, err
	}

	res, err := s.withCategories(ctx, dish)
	if err != nil {
		return nil, err
	}

	return &types.DishDetailResponse{
		DishResponse: *res,
		Restaurant:   types.NewRestaurantResponse(restaurant),
	}, nil
}

func (s *dishService) Update(ctx context.Context, ownerID, id string, req *types.UpdateDishRequest) (*types.DishResponse, error) {
	dish, err := ownedDish(ctx, s.dishRepo, ownerID, id)
	if err != nil {
		return nil, err
	}

	var categoryIDs []string
	if req.CategoryIDs != nil {
		categoryIDs = uniqueIDs(*req.CategoryIDs)
		if err = s.checkCategories(ctx, dish.RestaurantID, categoryIDs); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		dish.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		dish.Description = strings.TrimSpace(*req.Description)
	}
	if req.Image.Set {
		dish.Image = sql.NullString{String: req.Image.Value, Valid: req.Image.Valid}
	}
	if req.SpiceLevel.Set {
		dish.SpiceLevel = sql.NullInt64{Int64: int64(req.SpiceLevel.Value), Valid: req.SpiceLevel.Valid}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txDishRepo := repository.NewDishRepository(tx)
	if err = txDishRepo.Update(ctx, dish); err != nil {
		return nil, err
	}
	if req.CategoryIDs != nil {
		if err = txDishRepo.ClearCategories(ctx, dish.ID); err != nil {
			return nil, err
		}
		if err = txDishRepo.AddCategories(ctx, dish.ID, categoryIDs); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return s.withCategories(ctx, dish)
}

func (s *dishService) Delete(ctx context.Context, ownerID, id string) error {
	dish, err := ownedDish(ctx, s.dishRepo, ownerID, id)
	if err != nil {
		return err
	}
	return s.dishRepo.Delete(ctx, dish.ID)
}

// checkCategories requires every id to be a category of the restaurant.
func (s *dishService) checkCategories(ctx context.Context, restaurantID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	count, err := s.categoryRepo.CountInRestaurant(ctx, restaurantID, ids)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return ErrInvalidCategories
	}
	return nil
}

func (s *dishService) withCategories(ctx context.Context, dish *entity.Dish) (*types.DishResponse, error) {
	categories, err := s.categoryRepo.ListByDish(ctx, dish.ID)
	if err != nil {
		return nil, err
	}
	return types.NewDishResponse(dish, categories), nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
