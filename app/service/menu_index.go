package service

import (
	"github.com/vibast-solutions/ms-go-menu/app/entity"
	"github.com/vibast-solutions/ms-go-menu/app/types"
)

// menuIndex joins the dishes and categories of one restaurant through their links.
// Both sides keep the order they were loaded in.
type menuIndex struct {
	categoriesByDish map[string][]*entity.Category
	dishesByCategory map[string][]*entity.Dish
}

func newMenuIndex(categories []*entity.Category, dishes []*entity.Dish, links []entity.DishCategory) *menuIndex {
	linked := make(map[entity.DishCategory]struct{}, len(links))
	for _, link := range links {
		linked[link] = struct{}{}
	}

	idx := &menuIndex{
		categoriesByDish: make(map[string][]*entity.Category, len(dishes)),
		dishesByCategory: make(map[string][]*entity.Dish, len(categories)),
	}
	for _, dish := range dishes {
		for _, category := range categories {
			if _, ok := linked[entity.DishCategory{DishID: dish.ID, CategoryID: category.ID}]; !ok {
				continue
			}
			idx.categoriesByDish[dish.ID] = append(idx.categoriesByDish[dish.ID], category)
			idx.dishesByCategory[category.ID] = append(idx.dishesByCategory[category.ID], dish)
		}
	}
	return idx
}

func (idx *menuIndex) dishResponses(dishes []*entity.Dish) []*types.DishResponse {
	out := make([]*types.DishResponse, 0, len(dishes))
	for _, dish := range dishes {
		out = append(out, types.NewDishResponse(dish, idx.categoriesByDish[dish.ID]))
	}
	return out
}

func (idx *menuIndex) menuCategories(categories []*entity.Category) []*types.MenuCategory {
	out := make([]*types.MenuCategory, 0, len(categories))
	for _, category := range categories {
		out = append(out, &types.MenuCategory{
			CategoryResponse: *types.NewCategoryResponse(category),
			Dishes:           idx.dishResponses(idx.dishesByCategory[category.ID]),
		})
	}
	return out
}
