package middleware

import (
	"net/http"

	"github.com/vibast-solutions/ms-go-menu/app/dto"
	"github.com/vibast-solutions/ms-go-menu/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

type sessionParser interface {
	Parse(tokenString string) (*service.SessionClaims, error)
}

type AuthMiddleware struct {
	sessions sessionParser
}

func NewAuthMiddleware(sessions sessionParser) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireAuth rejects the request with 401 before the handler runs when no valid session is present.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := SessionTokenFromRequest(c)
		if token == "" {
			logrus.Debug("Missing session token")
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		}

		claims, err := m.sessions.Parse(token)
		if err != nil {
			logrus.Debug("Invalid or expired session token")
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserEmail, claims.Email)

		return next(c)
	}
}

func UserID(c echo.Context) (string, bool) {
	userID, ok := c.Get(ContextKeyUserID).(string)
	return userID, ok && userID != ""
}

func UserEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(ContextKeyUserEmail).(string)
	return email, ok && email != ""
}
