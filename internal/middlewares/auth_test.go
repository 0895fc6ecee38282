package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"raffle-api/internal/lib/jwt"
	"raffle-api/internal/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	email, password string
	id              uuid.UUID
	deleted         string
	lookupErr       error
}

func (s stubAuthenticator) Authenticate(_ context.Context, email, password string) (uuid.UUID, error) {
	if email == s.email && password == s.password {
		return s.id, nil
	}
	return uuid.Nil, errors.New("bad credentials")
}

func (s stubAuthenticator) UserExists(_ context.Context, userID string) (bool, error) {
	if s.lookupErr != nil {
		return false, s.lookupErr
	}
	return userID != s.deleted, nil
}

func newProtectedRouter(gen *jwt.Generator, auth middlewares.Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.NewAuthMiddleware(gen, auth).Handle())
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middlewares.UserIDKey))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	gen := jwt.NewGenerator("secret", time.Minute, time.Hour)
	basicID := uuid.New()
	router := newProtectedRouter(gen, stubAuthenticator{
		email: "juan@example.com", password: "secret123", id: basicID, deleted: "user-gone",
	})

	access, refresh, err := gen.GeneratePair("user-42")
	require.NoError(t, err)
	goneAccess, _, err := gen.GeneratePair("user-gone")
	require.NoError(t, err)

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		wantCode int
		wantBody string
	}{
		{"no header", func(r *http.Request) {}, http.StatusUnauthorized, ""},
		{"bearer access", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+access) }, http.StatusOK, "user-42"},
		{"bearer refresh rejected", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+refresh) }, http.StatusUnauthorized, ""},
		{"bearer for deleted user", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+goneAccess) }, http.StatusUnauthorized, ""},
		{"bearer garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, ""},
		{"basic ok", func(r *http.Request) { r.SetBasicAuth("juan@example.com", "secret123") }, http.StatusOK, basicID.String()},
		{"basic wrong password", func(r *http.Request) { r.SetBasicAuth("juan@example.com", "nope") }, http.StatusUnauthorized, ""},
		{"unknown scheme", func(r *http.Request) { r.Header.Set("Authorization", "Digest abc") }, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			tt.setup(req)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_BasicDisabled(t *testing.T) {
	router := newProtectedRouter(jwt.NewGenerator("secret", 0, 0), nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.SetBasicAuth("juan@example.com", "secret123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_UserLookupFailure(t *testing.T) {
	gen := jwt.NewGenerator("secret", time.Minute, time.Hour)
	router := newProtectedRouter(gen, stubAuthenticator{lookupErr: errors.New("db down")})

	access, _, err := gen.GeneratePair("user-42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
