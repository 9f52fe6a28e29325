package cmd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-menu/app/ratelimit"
	"github.com/vibast-solutions/ms-go-menu/app/repository"
	"github.com/vibast-solutions/ms-go-menu/app/service"
	"github.com/vibast-solutions/ms-go-menu/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
)

func TestHTTPRoutes(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	restaurantRepo := repository.NewRestaurantRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	dishRepo := repository.NewDishRepository(db)
	sessions := service.NewSessionManager("secret", time.Hour)
	cfg := &config.Config{Env: "development"}

	svc := &services{
		sessions:    sessions,
		auth:        service.NewAuthService(db, repository.NewUserRepository(db), sessions, nil, cfg),
		restaurants: service.NewRestaurantService(restaurantRepo, categoryRepo, dishRepo),
		categories:  service.NewCategoryService(restaurantRepo, categoryRepo, dishRepo),
		dishes:      service.NewDishService(db, restaurantRepo, categoryRepo, dishRepo),
	}
	e := newHTTPServer(cfg, db, svc)

	mock.ExpectPing()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	protected := []struct{ method, path string }{
		{http.MethodGet, "/auth/me"},
		{http.MethodGet, "/dashboard/email"},
		{http.MethodPost, "/dashboard/email"},
		{http.MethodGet, "/restaurants"},
		{http.MethodPost, "/restaurants"},
		{http.MethodPut, "/restaurants/r1"},
		{http.MethodGet, "/restaurants/r1/categories"},
		{http.MethodPost, "/restaurants/r1/dishes"},
		{http.MethodDelete, "/categories/c1"},
		{http.MethodGet, "/dishes/d1"},
	}
	for _, route := range protected {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, rec.Code)
		}
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/session", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("session: expected 200, got %d", rec.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNewLimitersFallsBackWithoutRedis(t *testing.T) {
	limiter, attempts := newLimiters(&config.Config{})
	if _, ok := limiter.(ratelimit.NoopLimiter); !ok {
		t.Fatalf("expected noop limiter, got %T", limiter)
	}
	if _, ok := attempts.(ratelimit.NoopAttemptCounter); !ok {
		t.Fatalf("expected noop attempt counter, got %T", attempts)
	}
}

func TestNewLimitersUsesRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Redis: config.RedisConfig{Addr: mr.Addr()},
		OTP:   config.OTPConfig{CodeTTL: 10 * time.Minute, MaxAttempts: 2},
	}

	_, attempts := newLimiters(cfg)
	if _, ok := attempts.(*ratelimit.RedisAttemptCounter); !ok {
		t.Fatalf("expected redis attempt counter, got %T", attempts)
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := attempts.Fail(ctx, "owner@example.com"); err != nil {
			t.Fatalf("fail: %v", err)
		}
	}
	if err := attempts.Check(ctx, "owner@example.com"); !errors.Is(err, ratelimit.ErrAttemptsExceeded) {
		t.Fatalf("expected CODE_MAX_ATTEMPTS to be honoured, got %v", err)
	}
}
