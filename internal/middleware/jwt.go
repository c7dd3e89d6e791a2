package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/response"
)

// ContextUserKey is the gin context key storing the session user.
const ContextUserKey = "currentUser"

// Authenticator resolves a bearer token into the active session user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// JWT protects routes by requiring a valid access token backed by an open session.
func JWT(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user.Info())
		c.Next()
	}
}
