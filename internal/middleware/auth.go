package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/internal/repositories"
	"github.com/mroshb/raffle_api/internal/security"
	"github.com/mroshb/raffle_api/pkg/errors"
	"github.com/mroshb/raffle_api/pkg/logger"
)

const userContextKey = "currentUser"

// RequireAuth loads the active user named by the bearer token.
func RequireAuth(secret string, users *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortWithError(c, errors.New(errors.ErrCodeUnauthorized, "Not authorized, no token"))
			return
		}

		claims, err := security.ValidateJWT(strings.TrimSpace(token), secret)
		if err != nil {
			logger.Debug("Rejected token", "error", err)
			abortWithError(c, errors.New(errors.ErrCodeUnauthorized, "Not authorized, token failed"))
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeNotFound) {
				abortWithError(c, errors.New(errors.ErrCodeUnauthorized, "Not authorized, user not found"))
				return
			}
			abortWithError(c, err)
			return
		}
		if !user.IsActive {
			abortWithError(c, errors.New(errors.ErrCodeForbidden, "Account is disabled"))
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireRoles lets through only users holding one of roles. It must run
// after RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWithError(c, errors.New(errors.ErrCodeUnauthorized, "Not authorized"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		abortWithError(c, errors.New(errors.ErrCodeForbidden, "Access denied"))
	}
}

// CurrentUser returns the user stored by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// SetCurrentUser stores user as the authenticated caller.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(userContextKey, user)
}
