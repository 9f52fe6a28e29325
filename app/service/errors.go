package service

import "errors"

var (
	ErrUserExists         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("no account found with this email")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrCodeExpired        = errors.New("verification code has expired")
	ErrNotificationFailed = errors.New("failed to send verification email")
	ErrTooManyRequests    = errors.New("too many verification code requests")
	ErrTooManyAttempts    = errors.New("too many failed verification attempts; request a new code")
	ErrNoSession          = errors.New("no session")

	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrDishNotFound       = errors.New("dish not found")
	ErrCategoryExists     = errors.New("category with this name already exists")
	ErrInvalidCategories  = errors.New("one or more categories not found or don't belong to this restaurant")
)
