package service

import (
	"context"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-menu/app/entity"
	"github.com/vibast-solutions/ms-go-menu/app/repository"
	"github.com/vibast-solutions/ms-go-menu/app/types"

	"github.com/google/uuid"
)

type CategoryService interface {
	Create(ctx context.Context, ownerID, restaurantID string, req *types.CreateCategoryRequest) (*types.CategoryResponse, error)
	List(ctx context.Context, ownerID, restaurantID string) ([]*types.CategorySummaryResponse, error)
	Get(ctx context.Context, ownerID, id string) (*types.CategoryDetailResponse, error)
	Update(ctx context.Context, ownerID, id string, req *types.UpdateCategoryRequest) (*types.CategoryResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type categoryService struct {
	restaurantRepo *repository.RestaurantRepository
	categoryRepo   *repository.CategoryRepository
	dishRepo       *repository.DishRepository
}

func NewCategoryService(
	restaurantRepo *repository.RestaurantRepository,
	categoryRepo *repository.CategoryRepository,
	dishRepo *repository.DishRepository,
) CategoryService {
	return &categoryService{
		restaurantRepo: restaurantRepo,
		categoryRepo:   categoryRepo,
		dishRepo:       dishRepo,
	}
}

func (s *categoryService) Create(ctx context.Context, ownerID, restaurantID string, req *types.CreateCategoryRequest) (*types.CategoryResponse, error) {
	restaurant, err := ownedRestaurant(ctx, s.restaurantRepo, ownerID, restaurantID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	existing, err := s.categoryRepo.FindByRestaurantAndName(ctx, restaurant.ID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	now := time.Now()
	category := &entity.Category{
		ID:           uuid.NewString(),
		Name:         name,
		RestaurantID: restaurant.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err = s.categoryRepo.Create(ctx, category); err != nil {
		if repository.IsDuplicateEntry(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	return types.NewCategoryResponse(category), nil
}

func (s *categoryService) List(ctx context.Context, ownerID, restaurantID string) ([]*types.CategorySummaryResponse, error) {
	restaurant, err := ownedRestaurant(ctx, s.restaurantRepo, ownerID, restaurantID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.categoryRepo.ListSummariesByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}

	out := make([]*types.CategorySummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, &types.CategorySummaryResponse{
			CategoryResponse: *types.NewCategoryResponse(&summary.Category),
			Count:            types.CategoryCounts{Dishes: summary.DishCount},
		})
	}
	return out, nil
}

func (s *categoryService) Get(ctx context.Context, ownerID, id string) (*types.CategoryDetailResponse, error) {
	category, err := ownedCategory(ctx, s.categoryRepo, ownerID, id)
	if err != nil {
		return nil, err
	}

	restaurant, err := ownedRestaurant(ctx, s.restaurantRepo, ownerID, category.RestaurantID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.ListByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}
	dishes, err := s.dishRepo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	links, err := s.dishRepo.ListCategoryLinks(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}

	return &types.CategoryDetailResponse{
		CategoryResponse: *types.NewCategoryResponse(category),
		Restaurant:       types.NewRestaurantResponse(restaurant),
		Dishes:           newMenuIndex(categories, dishes, links).dishResponses(dishes),
	}, nil
}

func (s *categoryService) Update(ctx context.Context, ownerID, id string, req *types.UpdateCategoryRequest) (*types.CategoryResponse, error) {
	category, err := ownedCategory(ctx, s.categoryRepo, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != category.Name {
			existing, findErr := s.categoryRepo.FindByRestaurantAndName(ctx, category.RestaurantID, name)
			if findErr != nil {
				return nil, findErr
			}
			if existing != nil && existing.ID != category.ID {
				return nil, ErrCategoryExists
			}
			category.Name = name
		}
	}

	if err = s.categoryRepo.Update(ctx, category); err != nil {
		if repository.IsDuplicateEntry(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	return types.NewCategoryResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, ownerID, id string) error {
	category, err := ownedCategory(ctx, s.categoryRepo, ownerID, id)
	if err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, category.ID)
}
