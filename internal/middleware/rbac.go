package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
	"github.com/noah-isme/eschool-api/pkg/response"
)

// RequireRoles only lets through callers holding one of roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
