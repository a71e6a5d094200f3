package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"booking-be/internal/jwt"
	"booking-be/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubChecker struct {
	admins map[uint]bool
	err    error
	calls  int
}

func (s *stubChecker) IsAdmin(_ context.Context, id uint) (bool, error) {
	s.calls++
	return s.admins[id], s.err
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func protectedRouter(svc *jwt.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(svc)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := UserID(c)
		claims, _ := Claims(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "email": claims.Email})
	})
	r.GET("/private", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Hour)
	valid, err := svc.GenerateToken(7, "Ann", "ann@x.com")
	require.NoError(t, err)
	expired, err := jwt.NewJWTService("secret", -time.Minute).GenerateToken(7, "Ann", "ann@x.com")
	require.NoError(t, err)
	foreign, err := jwt.NewJWTService("other", time.Hour).GenerateToken(7, "Ann", "ann@x.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		cookie  string
		status  int
		message string
	}{
		{"no cookie", "", http.StatusUnauthorized, "Invalid token format"},
		{"garbage", "abc.def", http.StatusUnauthorized, "Invalid token"},
		{"expired", expired, http.StatusUnauthorized, "Invalid token"},
		{"wrong secret", foreign, http.StatusUnauthorized, "Invalid token"},
		{"valid", valid, http.StatusOK, ""},
	}

	r := protectedRouter(svc)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, decode(t, w).Message)
			} else {
				assert.JSONEq(t, `{"id":7,"email":"ann@x.com"}`, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareIgnoresAuthorizationHeader(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Hour)
	tok, err := svc.GenerateToken(1, "A", "a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	protectedRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Hour)
	checker := &stubChecker{admins: map[uint]bool{1: true}}
	r := protectedRouter(svc, AdminMiddleware(checker))

	call := func(id uint) *httptest.ResponseRecorder {
		tok, err := svc.GenerateToken(id, "U", "u@x.com")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tok})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call(1).Code)

	w := call(2)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied. Admin only.", decode(t, w).Message)

	// role changes take effect without a new token
	checker.admins[2] = true
	assert.Equal(t, http.StatusOK, call(2).Code)
	assert.Equal(t, 3, checker.calls)

	checker.err = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError, call(1).Code)
}

func TestAdminMiddlewareWithoutIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminMiddleware(&stubChecker{}), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "User not authenticated", decode(t, w).Message)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	t.Cleanup(rl.Stop)

	r := gin.New()
	r.GET("/", rl.LimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"), "budgets are per IP")
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	t.Cleanup(rl.Stop)

	rl.getVisitor("10.0.0.1")
	rl.sweep(time.Hour)
	assert.Len(t, rl.visitors, 1)

	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Hour)
	rl.sweep(time.Hour)
	assert.Empty(t, rl.visitors)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(RequestIDHeader))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, "fixed-id", entries[1].ContextMap()["request_id"])
}

func TestCORSAllowsClientOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:3001"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3001")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3001", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
