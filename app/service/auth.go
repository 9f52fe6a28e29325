package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-menu/app/entity"
	"github.com/vibast-solutions/ms-go-menu/app/ratelimit"
	"github.com/vibast-solutions/ms-go-menu/app/repository"
	"github.com/vibast-solutions/ms-go-menu/app/types"
	"github.com/vibast-solutions/ms-go-menu/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const codeSentMessage = "Verification code sent to your email"

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ConsumeVerificationCode(ctx context.Context, user *entity.User, storedCode string) (bool, error)
	ClearVerificationCode(ctx context.Context, user *entity.User, storedCode string) error
}

// Notifier delivers verification codes to an email address.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

type AuthService interface {
	RequestCode(ctx context.Context, req *types.RequestCodeRequest) (*types.RequestCodeResponse, error)
	VerifyCode(ctx context.Context, req *types.VerifyCodeRequest) (*types.VerifyCodeResponse, error)
	GetSession(ctx context.Context, token string) *types.SessionResponse
	Me(ctx context.Context, userID string) (*types.Profile, error)
	ValidateSession(ctx context.Context, req *types.ValidateSessionRequest) (*types.ValidateSessionResponse, error)
}

type AuthServiceOption func(*authService)

type authService struct {
	db       *sql.DB
	userRepo userRepository
	sessions *SessionManager
	notifier Notifier
	limiter  ratelimit.Limiter
	attempts ratelimit.AttemptCounter
	cfg      *config.Config
	codeGen  CodeGenerator
	now      func() time.Time
}

func NewAuthService(
	db *sql.DB,
	userRepo userRepository,
	sessions *SessionManager,
	notifier Notifier,
	cfg *config.Config,
	opts ...AuthServiceOption,
) AuthService {
	svc := &authService{
		db:       db,
		userRepo: userRepo,
		sessions: sessions,
		notifier: notifier,
		limiter:  ratelimit.NoopLimiter{},
		attempts: ratelimit.NoopAttemptCounter{},
		cfg:      cfg,
		codeGen:  GenerateVerificationCode,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithCodeGenerator(gen CodeGenerator) AuthServiceOption {
	return func(s *authService) {
		if gen != nil {
			s.codeGen = gen
		}
	}
}

func WithLimiter(limiter ratelimit.Limiter) AuthServiceOption {
	return func(s *authService) {
		if limiter != nil {
			s.limiter = limiter
		}
	}
}

func WithAttemptCounter(attempts ratelimit.AttemptCounter) AuthServiceOption {
	return func(s *authService) {
		if attempts != nil {
			s.attempts = attempts
		}
	}
}

func WithClock(now func() time.Time) AuthServiceOption {
	return func(s *authService) {
		if now != nil {
			s.now = now
		}
	}
}

func (s *authService) RequestCode(ctx context.Context, req *types.RequestCodeRequest) (*types.RequestCodeResponse, error) {
	email := strings.TrimSpace(req.Email)

	if err := s.limiter.Allow(ctx, email); err != nil {
		if ratelimit.IsLimited(err) {
			return nil, fmt.Errorf("%w: %s", ErrTooManyRequests, err.Error())
		}
		// A broken limiter backend must not lock owners out.
		logrus.WithError(err).WithField("email", email).Warn("Rate limiter unavailable, allowing code request")
	}

	// Only requests that end with a delivered code count against the cooldown and quota.
	delivered := false
	defer func() {
		if delivered {
			return
		}
		if err := s.limiter.Release(ctx, email); err != nil {
			logrus.WithError(err).WithField("email", email).Warn("Failed to release code request quota")
		}
	}()

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	signup := req.IsSignup()
	if signup && existing != nil {
		return nil, ErrUserExists
	}
	if !signup && existing == nil {
		return nil, ErrUserNotFound
	}

	code, err := s.codeGen()
	if err != nil {
		return nil, err
	}
	hashedCode, err := hashVerificationCode(code)
	if err != nil {
		return nil, err
	}

	now := s.now()
	storedCode := sql.NullString{String: hashedCode, Valid: true}
	expiresAt := sql.NullTime{Time: now.Add(s.cfg.OTP.CodeTTL), Valid: true}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txUserRepo := repository.NewUserRepository(tx)
	if signup {
		user := &entity.User{
			ID:                      uuid.NewString(),
			Email:                   email,
			Name:                    strings.TrimSpace(req.Name),
			Country:                 strings.TrimSpace(req.Country),
			VerificationCode:        storedCode,
			VerificationCodeExpires: expiresAt,
			EmailVerified:           false,
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		if err = txUserRepo.Create(ctx, user); err != nil {
			if repository.IsDuplicateEntry(err) {
				return nil, ErrUserExists
			}
			return nil, err
		}
	} else {
		existing.VerificationCode = storedCode
		existing.VerificationCodeExpires = expiresAt
		existing.UpdatedAt = now
		if err = txUserRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
	}

	// The code is only persisted once the owner has actually been sent it.
	if err = s.notifier.SendVerificationCode(ctx, email, code); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotificationFailed, err.Error())
	}
	delivered = true

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	// A fresh code starts with a clean slate of attempts.
	if err = s.attempts.Reset(ctx, email); err != nil {
		logrus.WithError(err).WithField("email", email).Warn("Failed to reset verification attempts")
	}

	return &types.RequestCodeResponse{
		Success: true,
		Message: codeSentMessage,
	}, nil
}

func (s *authService) VerifyCode(ctx context.Context, req *types.VerifyCodeRequest) (*types.VerifyCodeResponse, error) {
	email := strings.TrimSpace(req.Email)
	code := strings.TrimSpace(req.Code)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if s.isMockCode(code) {
		logrus.WithField("email", email).Warn("Mock verification code accepted")
		user.EmailVerified = true
		user.VerificationCode = sql.NullString{}
		user.VerificationCodeExpires = sql.NullTime{}
		user.UpdatedAt = s.now()
		if err = s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	} else if err = s.consumeCode(ctx, user, code); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.sessions.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &types.VerifyCodeResponse{
		Success:      true,
		SessionToken: token,
		ExpiresAt:    expiresAt,
		User:         types.NewProfile(user),
	}, nil
}

// GetSession resolves a token to a profile. Any failure yields an empty session.
func (s *authService) GetSession(ctx context.Context, token string) *types.SessionResponse {
	claims, err := s.sessions.Parse(token)
	if err != nil {
		return &types.SessionResponse{}
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", claims.UserID).Error("Failed to load session user")
		return &types.SessionResponse{}
	}

	return &types.SessionResponse{User: types.NewProfile(user)}
}

func (s *authService) Me(ctx context.Context, userID string) (*types.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return types.NewProfile(user), nil
}

func (s *authService) ValidateSession(_ context.Context, req *types.ValidateSessionRequest) (*types.ValidateSessionResponse, error) {
	claims, err := s.sessions.Parse(req.Token)
	if err != nil {
		return &types.ValidateSessionResponse{Valid: false}, nil
	}

	return &types.ValidateSessionResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

func (s *authService) isMockCode(code string) bool {
	return s.cfg.MockOTPEnabled() && s.cfg.OTP.MockCode != "" && code == s.cfg.OTP.MockCode
}

// consumeCode verifies code against the stored hash and spends it. Two requests racing with the
// same code cannot both succeed because the write is conditional on the hash still being stored.
func (s *authService) consumeCode(ctx context.Context, user *entity.User, code string) error {
	if err := s.attempts.Check(ctx, user.Email); err != nil {
		if ratelimit.IsLimited(err) {
			return ErrTooManyAttempts
		}
		logrus.WithError(err).WithField("email", user.Email).Warn("Attempt counter unavailable, checking code")
	}

	if err := s.checkCode(user, code); err != nil {
		if errors.Is(err, ErrInvalidCode) {
			return s.recordFailedAttempt(ctx, user)
		}
		return err
	}

	user.UpdatedAt = s.now()
	ok, err := s.userRepo.ConsumeVerificationCode(ctx, user, user.VerificationCode.String)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCode
	}

	if err = s.attempts.Reset(ctx, user.Email); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Warn("Failed to reset verification attempts")
	}
	return nil
}

// recordFailedAttempt burns the stored code once the attempt limit is reached.
func (s *authService) recordFailedAttempt(ctx context.Context, user *entity.User) error {
	locked, err := s.attempts.Fail(ctx, user.Email)
	if err != nil {
		logrus.WithError(err).WithField("email", user.Email).Warn("Failed to record verification attempt")
		return ErrInvalidCode
	}
	if !locked {
		return ErrInvalidCode
	}

	if user.VerificationCode.Valid {
		user.UpdatedAt = s.now()
		if err = s.userRepo.ClearVerificationCode(ctx, user, user.VerificationCode.String); err != nil {
			return err
		}
	}
	logrus.WithField("email", user.Email).Warn("Verification code revoked after repeated failures")
	return ErrTooManyAttempts
}

// checkCode does not distinguish a wrong code from a missing one.
func (s *authService) checkCode(user *entity.User, code string) error {
	if !user.VerificationCode.Valid || !verificationCodeMatches(user.VerificationCode.String, code) {
		return ErrInvalidCode
	}
	if !user.VerificationCodeExpires.Valid || !s.now().Before(user.VerificationCodeExpires.Time) {
		return ErrCodeExpired
	}
	return nil
}
