package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(allowed []string, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(allowed))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, "/x", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAllowedOrigin(t *testing.T) {
	w := serve([]string{"https://app.vetflow.test/"}, http.MethodGet, "https://app.vetflow.test")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.vetflow.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestRejectedOrigin(t *testing.T) {
	w := serve([]string{"https://app.vetflow.test"}, http.MethodGet, "https://evil.test")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflight(t *testing.T) {
	w := serve(nil, http.MethodOptions, "https://any.test")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://any.test", w.Header().Get("Access-Control-Allow-Origin"))
}
