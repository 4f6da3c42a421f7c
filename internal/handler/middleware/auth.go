package middleware

import (
	"strings"

	"studio-booking/internal/domain/user"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxKeyUserID = "auth.user_id"
	ctxKeyRole   = "auth.role"

	bearerPrefix = "Bearer "
)

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator usecase.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			httperr.Unauthorized(c, "missing bearer token")
			return
		}

		userID, role, err := validator.Validate(token)
		if err != nil {
			httperr.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ctxKeyUserID, userID)
		c.Set(ctxKeyRole, role)
		c.Next()
	}
}

// OptionalAuth resolves a role when a token is present and lets anonymous
// requests through as customers. Availability and booking creation are open
// endpoints; the role only widens what staff can see and do.
func OptionalAuth(validator usecase.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		userID, role, err := validator.Validate(token)
		if err != nil {
			httperr.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ctxKeyUserID, userID)
		c.Set(ctxKeyRole, role)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RoleFrom(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "insufficient role")
	}
}

// RoleFrom returns the authenticated role, defaulting to customer for
// anonymous requests.
func RoleFrom(c *gin.Context) user.Role {
	if v, ok := c.Get(ctxKeyRole); ok {
		if role, ok := v.(user.Role); ok {
			return role
		}
	}
	return user.RoleCustomer
}

func UserIDFrom(c *gin.Context) (uuid.UUID, bool) {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	return token, token != ""
}
