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

type RestaurantService interface {
	Create(ctx context.Context, ownerID string, req *types.CreateRestaurantRequest) (*types.RestaurantResponse, error)
	List(ctx context.Context, ownerID string) ([]*types.RestaurantSummaryResponse, error)
	Get(ctx context.Context, ownerID, id string) (*types.RestaurantDetailResponse, error)
	Update(ctx context.Context, ownerID, id string, req *types.UpdateRestaurantRequest) (*types.RestaurantResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
	GetMenu(ctx context.Context, req *types.GetMenuRequest) (*types.MenuResponse, error)
}

type restaurantService struct {
	restaurantRepo *repository.RestaurantRepository
	categoryRepo   *repository.CategoryRepository
	dishRepo       *repository.DishRepository
}

func NewRestaurantService(
	restaurantRepo *repository.RestaurantRepository,
	categoryRepo *repository.CategoryRepository,
	dishRepo *repository.DishRepository,
) RestaurantService {
	return &restaurantService{
		restaurantRepo: restaurantRepo,
		categoryRepo:   categoryRepo,
		dishRepo:       dishRepo,
	}
}

func (s *restaurantService) Create(ctx context.Context, ownerID string, req *types.CreateRestaurantRequest) (*types.RestaurantResponse, error) {
	base := GenerateSlug(req.Name)
	slug, err := ensureUniqueSlug(ctx, s.restaurantRepo, base, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	restaurant := &entity.Restaurant{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Location:  strings.TrimSpace(req.Location),
		Slug:      slug,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.restaurantRepo.Create(ctx, restaurant)
	if repository.IsDuplicateEntry(err) {
		// Another restaurant claimed the slug between the check and the insert.
		if restaurant.Slug, err = ensureUniqueSlug(ctx, s.restaurantRepo, base, ""); err != nil {
			return nil, err
		}
		err = s.restaurantRepo.Create(ctx, restaurant)
	}
	if err != nil {
		return nil, err
	}

	return types.NewRestaurantResponse(restaurant), nil
}

func (s *restaurantService) List(ctx context.Context, ownerID string) ([]*types.RestaurantSummaryResponse, error) {
	summaries, err := s.restaurantRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]*types.RestaurantSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, &types.RestaurantSummaryResponse{
			RestaurantResponse: *types.NewRestaurantResponse(&summary.Restaurant),
			Count: types.RestaurantCounts{
				Categories: summary.CategoryCount,
				Dishes:     summary.DishCount,
			},
		})
	}
	return out, nil
}

func (s *restaurantService) Get(ctx context.Context, ownerID, id string) (*types.RestaurantDetailResponse, error) {
	restaurant, err := ownedRestaurant(ctx, s.restaurantRepo, ownerID, id)
	if err != nil {
		return nil, err
	}

	categories, dishes, idx, err := s.loadMenu(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}

	return &types.RestaurantDetailResponse{
		RestaurantResponse: *types.NewRestaurantResponse(restaurant),
		Categories:         types.NewCategoryResponses(categories),
		Dishes:             idx.dishResponses(dishes),
	}, nil
}

func (s *restaurantService) Update(ctx context.Context, ownerID, id string, req *types.UpdateRestaurantRequest) (*types.RestaurantResponse, error) {
	restaurant, err := ownedRestaurant(ctx, s.restaurantRepo, ownerID, id)
	if err != nil {
		return nil, err
	}

	var base string
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != restaurant.Name {
			base = GenerateSlug(name)
			slug, slugErr := ensureUniqueSlug(ctx, s.restaurantRepo, base, restaurant.ID)
			if slugErr != nil {
				return nil, slugErr
			}
			restaurant.Name = name
			restaurant.Slug = slug
		}
	}
	if req.Location != nil {
		restaurant.Location = strings.TrimSpace(*req.Location)
	}

	err = s.restaurantRepo.Update(ctx, restaurant)
	if base != "" && repository.IsDuplicateEntry(err) {
		// Another restaurant claimed the new slug between the check and the write.
		if restaurant.Slug, err = ensureUniqueSlug(ctx, s.restaurantRepo, base, restaurant.ID); err != nil {
			return nil, err
		}
		err = s.restaurantRepo.Update(ctx, restaurant)
	}
	if err != nil {
		return nil, err
	}

	return types.NewRestaurantResponse(restaurant), nil
}

func (s *restaurantService) Delete(ctx context.Context, ownerID, id string) error {
	restaurant, err := ownedRestaurant(ctx, s.restaurantRepo, ownerID, id)
	if err != nil {
		return err
	}
	return s.restaurantRepo.Delete(ctx, restaurant.ID)
}

// GetMenu is the public, unauthenticated view of a restaurant.
func (s *restaurantService) GetMenu(ctx context.Context, req *types.GetMenuRequest) (*types.MenuResponse, error) {
	restaurant, err := s.restaurantRepo.FindBySlug(ctx, strings.TrimSpace(req.Slug))
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	categories, dishes, idx, err := s.loadMenu(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}

	return &types.MenuResponse{
		ID:         restaurant.ID,
		Name:       restaurant.Name,
		Location:   restaurant.Location,
		Slug:       restaurant.Slug,
		Categories: idx.menuCategories(categories),
		Dishes:     idx.dishResponses(dishes),
	}, nil
}

func (s *restaurantService) loadMenu(ctx context.Context, restaurantID string) ([]*entity.Category, []*entity.Dish, *menuIndex, error) {
	categories, err := s.categoryRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, nil, nil, err
	}
	dishes, err := s.dishRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, nil, nil, err
	}
	links, err := s.dishRepo.ListCategoryLinks(ctx, restaurantID)
	if err != nil {
		return nil, nil, nil, err
	}

	return categories, dishes, newMenuIndex(categories, dishes, links), nil
}
