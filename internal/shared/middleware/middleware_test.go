package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"findmyrave/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func newTestEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/me", JWTAuthWithConfig(cfg), func(c *gin.Context) {
		id, _ := UserID(c)
		c.String(http.StatusOK, id)
	})
	engine.GET("/admin", JWTAuthWithConfig(cfg), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return engine
}

func TestJWTAuthWithConfig(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}
	engine := newTestEngine(cfg)

	valid := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user-1",
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	expired := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongSecret := signToken(t, "other", jwt.MapClaims{"user_id": "user-1"})
	noUser := signToken(t, "test-secret", jwt.MapClaims{"role": "ADMIN"})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + wrongSecret, http.StatusUnauthorized},
		{"missing user id", "Bearer " + noUser, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusOK && w.Body.String() != "user-1" {
				t.Errorf("expected user-1 in body, got %q", w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}
	engine := newTestEngine(cfg)

	user := signToken(t, "test-secret", jwt.MapClaims{"user_id": "u", "role": "USER"})
	admin := signToken(t, "test-secret", jwt.MapClaims{"user_id": "a", "role": "admin"})

	for token, want := range map[string]int{user: http.StatusForbidden, admin: http.StatusNoContent} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("expected status %d, got %d", want, w.Code)
		}
	}
}
