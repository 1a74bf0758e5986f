package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sportsconnect/api/internal/constants"
	"github.com/sportsconnect/api/internal/model"
	"github.com/sportsconnect/api/internal/service"
	"github.com/sportsconnect/api/pkg/logger"
)

// Context keys set by the auth middleware.
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "current_user"
)

// UserLoader resolves the account behind a token subject.
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

type AuthMiddleware struct {
	tokens *service.TokenService
	users  UserLoader
}

func NewAuthMiddleware(tokens *service.TokenService, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
	c.Abort()
}

// RequireUser validates a user-scope bearer token, loads the account
// behind it and rejects inactive accounts. The loaded user is stored in
// the request context.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			unauthorized(c)
			return
		}

		claims, err := m.tokens.ValidateToken(tokenString)
		if err != nil {
			unauthorized(c)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			// Admin tokens do not open user endpoints.
			unauthorized(c)
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			logger.GetLogger().Warn("Token subject no longer exists",
				zap.Uint("user_id", userID),
				zap.String("path", c.Request.URL.Path),
			)
			unauthorized(c)
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, constants.BuildErrorResponse("Account is inactive", nil))
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAdmin validates an admin-scope bearer token. The admin identity
// is the configured credential pair; there is no store lookup.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			unauthorized(c)
			return
		}

		claims, err := m.tokens.ValidateToken(tokenString)
		if err != nil {
			unauthorized(c)
			return
		}

		if !claims.IsAdmin() {
			// User tokens do not open the dashboard.
			c.JSON(http.StatusForbidden, constants.BuildErrorResponse(constants.MsgForbidden, nil))
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by RequireUser.
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
