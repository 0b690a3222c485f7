package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/middleware"
	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
	"github.com/noah-isme/eschool-api/pkg/response"
)

// actorFromContext builds the authenticated actor, writing 401 when absent.
func actorFromContext(c *gin.Context) (models.Actor, bool) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Actor{}, false
	}
	return models.Actor{
		AccountID: claims.AccountID,
		Role:      claims.Role,
		ProfileID: claims.ProfileID,
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}, true
}

// queryInt parses an integer query parameter, falling back on absence or garbage.
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func bindError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
