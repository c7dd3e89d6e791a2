package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
)

type authenticatorStub struct {
	token string
	user  models.User
}

func (a authenticatorStub) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token != a.token {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	user := a.user
	return &user, nil
}

func newProtectedRouter(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWT(auth))
	router.GET("/me", func(c *gin.Context) {
		user := c.MustGet(ContextUserKey).(models.UserInfo)
		c.String(http.StatusOK, user.ID)
	})
	return router
}

func TestJWTMiddleware(t *testing.T) {
	router := newProtectedRouter(authenticatorStub{token: "good", user: models.User{ID: "u1", Password: "secret"}})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "u1", rec.Body.String())
			}
		})
	}
}

type httpObserverStub struct {
	paths    []string
	statuses []int
}

func (o *httpObserverStub) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	o.paths = append(o.paths, method+" "+path)
	o.statuses = append(o.statuses, status)
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &httpObserverStub{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/timesheets/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/timesheets/2024-1-1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, []string{"GET /timesheets/:id", "GET unmatched"}, observer.paths)
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNotFound}, observer.statuses)
}
