package types

import "github.com/vibast-solutions/ms-go-menu/app/entity"

func NewProfile(user *entity.User) *Profile {
	if user == nil {
		return nil
	}
	return &Profile{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Country:       user.Country,
		EmailVerified: user.EmailVerified,
	}
}

func NewRestaurantResponse(r *entity.Restaurant) *RestaurantResponse {
	return &RestaurantResponse{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		Slug:      r.Slug,
		OwnerID:   r.OwnerID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewCategoryResponse(c *entity.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		RestaurantID: c.RestaurantID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func NewCategoryResponses(categories []*entity.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}

func NewDishResponse(d *entity.Dish, categories []*entity.Category) *DishResponse {
	res := &DishResponse{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		RestaurantID: d.RestaurantID,
		Categories:   NewCategoryResponses(categories),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Image.Valid {
		image := d.Image.String
		res.Image = &image
	}
	if d.SpiceLevel.Valid {
		level := int(d.SpiceLevel.Int64)
		res.SpiceLevel = &level
	}
	return res
}
