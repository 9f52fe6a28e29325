package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const defaultSlug = "restaurant"

var (
	slugDisallowed = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators = regexp.MustCompile(`[\s_-]+`)
)

type slugChecker interface {
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
}

// GenerateSlug turns a restaurant name into a URL-safe identifier.
func GenerateSlug(name string) string {
	slug := strings.TrimSpace(strings.ToLower(name))
	slug = slugDisallowed.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return defaultSlug
	}
	return slug
}

// ensureUniqueSlug appends -1, -2, ... until no other restaurant uses the slug.
func ensureUniqueSlug(ctx context.Context, repo slugChecker, base, excludeID string) (string, error) {
	slug := base
	for counter := 1; ; counter++ {
		taken, err := repo.SlugTaken(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
