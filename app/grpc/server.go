package grpc

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-menu/app/service"
	"github.com/vibast-solutions/ms-go-menu/app/types"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type AuthServer struct {
	authService       service.AuthService
	restaurantService service.RestaurantService
}

func NewAuthServer(authService service.AuthService, restaurantService service.RestaurantService) *AuthServer {
	return &AuthServer{
		authService:       authService,
		restaurantService: restaurantService,
	}
}

func (s *AuthServer) RequestCode(ctx context.Context, req *types.RequestCodeRequest) (*types.RequestCodeResponse, error) {
	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Request code validation failed (grpc)")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	logrus.WithField("email", req.Email).Info("Verification code requested (grpc)")
	res, err := s.authService.RequestCode(ctx, req)
	if err != nil {
		return nil, statusError(err, logrus.WithField("email", req.Email), "Request code")
	}

	return res, nil
}

func (s *AuthServer) VerifyCode(ctx context.Context, req *types.VerifyCodeRequest) (*types.VerifyCodeResponse, error) {
	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Verify code validation failed (grpc)")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := s.authService.VerifyCode(ctx, req)
	if err != nil {
		return nil, statusError(err, logrus.WithField("email", req.Email), "Verify code")
	}

	logrus.WithField("user_id", res.User.ID).Info("Session issued (grpc)")
	return res, nil
}

func (s *AuthServer) ValidateSession(ctx context.Context, req *types.ValidateSessionRequest) (*types.ValidateSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := s.authService.ValidateSession(ctx, req)
	if err != nil {
		logrus.WithError(err).Error("Validate session failed (grpc)")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return res, nil
}

func (s *AuthServer) GetMenu(ctx context.Context, req *types.GetMenuRequest) (*types.MenuResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := s.restaurantService.GetMenu(ctx, req)
	if err != nil {
		return nil, statusError(err, logrus.WithField("slug", req.Slug), "Get menu")
	}

	return res, nil
}

// statusError maps service errors to gRPC codes. Unknown errors are logged and hidden.
func statusError(err error, entry *logrus.Entry, action string) error {
	var code codes.Code
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrDishNotFound):
		code = codes.NotFound
	case errors.Is(err, service.ErrUserExists), errors.Is(err, service.ErrCategoryExists):
		code = codes.AlreadyExists
	case errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrCodeExpired),
		errors.Is(err, service.ErrInvalidCategories):
		code = codes.InvalidArgument
	case errors.Is(err, service.ErrNoSession):
		code = codes.Unauthenticated
	case errors.Is(err, service.ErrTooManyRequests), errors.Is(err, service.ErrTooManyAttempts):
		code = codes.ResourceExhausted
	case errors.Is(err, service.ErrNotificationFailed):
		entry.WithError(err).Error(action + " failed: notification not delivered (grpc)")
		return status.Error(codes.Unavailable, service.ErrNotificationFailed.Error())
	default:
		entry.WithError(err).Error(action + " failed (grpc)")
		return status.Error(codes.Internal, "internal server error")
	}

	entry.WithError(err).Warn(action + " failed (grpc)")
	return status.Error(code, rootMessage(err))
}

// rootMessage strips wrapped detail so internal context never reaches callers.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		service.ErrUserNotFound, service.ErrRestaurantNotFound, service.ErrCategoryNotFound,
		service.ErrDishNotFound, service.ErrUserExists, service.ErrCategoryExists,
		service.ErrInvalidCode, service.ErrCodeExpired, service.ErrInvalidCategories,
		service.ErrNoSession, service.ErrTooManyRequests, service.ErrTooManyAttempts,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
