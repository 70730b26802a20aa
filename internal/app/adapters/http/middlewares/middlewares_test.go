package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opfobo/taxmate-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func do(r http.Handler, header, value, remote string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	if remote != "" {
		req.RemoteAddr = remote
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuth(t *testing.T) {
	m := New(logger.Discard())

	tests := []struct {
		name     string
		expected string
		header   string
		want     int
	}{
		{name: "disabled", expected: "", header: "", want: http.StatusOK},
		{name: "valid", expected: "secret", header: "Bearer secret", want: http.StatusOK},
		{name: "missing", expected: "secret", header: "", want: http.StatusUnauthorized},
		{name: "wrong", expected: "secret", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "not bearer", expected: "secret", header: "Basic secret", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(m.Auth(tt.expected))
			assert.Equal(t, tt.want, do(r, "Authorization", tt.header, ""))
		})
	}
}

func TestRateLimit(t *testing.T) {
	m := New(logger.Discard())
	r := newEngine(m.RateLimit(NewRateLimiter(2, time.Hour)))

	assert.Equal(t, http.StatusOK, do(r, "", "", "10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do(r, "", "", "10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do(r, "", "", "10.0.0.1:1002"))

	assert.Equal(t, http.StatusOK, do(r, "", "", "10.0.0.2:1000"))
}

func TestRateLimit_Nil(t *testing.T) {
	r := newEngine(New(logger.Discard()).RateLimit(nil))
	for range 5 {
		assert.Equal(t, http.StatusOK, do(r, "", "", ""))
	}
}

func TestMetrics(t *testing.T) {
	r := newEngine(New(logger.Discard()).Metrics())
	assert.Equal(t, http.StatusOK, do(r, "", "", ""))
}
