package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/middleware"
	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/response"
)

func userFromContext(c *gin.Context) (models.UserInfo, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return models.UserInfo{}, false
	}
	user, ok := value.(models.UserInfo)
	if !ok || user.ID == "" {
		return models.UserInfo{}, false
	}
	return user, true
}

// requireUser answers 401 and returns false when no session user is attached.
func requireUser(c *gin.Context) (models.UserInfo, bool) {
	user, ok := userFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
	}
	return user, ok
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message))
		return false
	}
	return true
}
