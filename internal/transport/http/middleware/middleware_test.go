package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-blog/internal/core/auth"
	"go-gin-blog/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthJWT(t *testing.T) {
	j := auth.NewJWTer("secret", "test", time.Hour)
	userTok, err := j.Issue(domain.AuthContext{UserID: "u1", Email: "u@example.com", Role: domain.RoleUser})
	require.NoError(t, err)
	adminTok, err := j.Issue(domain.AuthContext{UserID: "a1", Email: "a@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)
	other, err := auth.NewJWTer("other", "test", time.Hour).Issue(domain.AuthContext{UserID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	r := gin.New()
	ok := func(c *gin.Context) {
		a, _ := auth.FromGin(c)
		c.String(http.StatusOK, a.UserID)
	}
	r.GET("/user", AuthJWT(j, ""), ok)
	r.GET("/admin", AuthJWT(j, domain.RoleAdmin), ok)

	cases := []struct {
		name, path, header string
		status             int
		body               string
	}{
		{"missing", "/user", "", 401, MsgTokenRequired},
		{"wrong scheme", "/user", "Basic " + userTok, 401, MsgTokenRequired},
		{"garbage", "/user", "Bearer nope", 401, MsgTokenInvalid},
		{"foreign secret", "/user", "Bearer " + other, 401, MsgTokenInvalid},
		{"user ok", "/user", "Bearer " + userTok, 200, "u1"},
		{"lowercase scheme", "/user", "bearer " + userTok, 200, "u1"},
		{"user on admin", "/admin", "Bearer " + userTok, 403, MsgAdminRequired},
		{"admin ok", "/admin", "Bearer " + adminTok, 200, "a1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := serve(r, req)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimitPerIP(1, 2), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := func(ip string) *http.Request {
		q := httptest.NewRequest(http.MethodGet, "/", nil)
		q.RemoteAddr = ip + ":1234"
		return q
	}
	assert.Equal(t, http.StatusNoContent, serve(r, req("10.0.0.1")).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, req("10.0.0.1")).Code)
	w := serve(r, req("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")

	// 另一个 IP 有独立的桶
	assert.Equal(t, http.StatusNoContent, serve(r, req("10.0.0.2")).Code)
}

func TestRateLimitPerIP_Disabled(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimitPerIP(0, 0), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/", RequestID(), func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	rid := w.Header().Get(HeaderRequestID)
	assert.Len(t, rid, 36)
	assert.Equal(t, rid, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	assert.Equal(t, "abc", serve(r, req).Header().Get(HeaderRequestID))
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.POST("/", MaxBodyBytes(8), func(c *gin.Context) {
		var v map[string]any
		if err := c.ShouldBindJSON(&v); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"0123456789"}`))
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(r, req).Code)
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.GET("/slow", Timeout(20*time.Millisecond), func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	w := serve(r, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "Request timeout")
}

func TestConcurrencyLimit(t *testing.T) {
	r := gin.New()
	release := make(chan struct{})
	entered := make(chan struct{})
	r.GET("/", ConcurrencyLimit(1), func(c *gin.Context) {
		close(entered)
		<-release
		c.Status(http.StatusOK)
	})

	done := make(chan int)
	go func() { done <- serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code }()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := gin.New()
	r.Use(m.Handler())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/items/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/items/2", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, counterValue(t, reg, "/items/:id", "200"))
	assert.Equal(t, 1.0, counterValue(t, reg, "unmatched", "404"))
}

func counterValue(t *testing.T, reg *prometheus.Registry, path, status string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["path"] == path && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
