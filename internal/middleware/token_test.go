package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedEcho(secret string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", TokenGuard(secret))
	g.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	return e
}

func TestMintedTokenPassesGuard(t *testing.T) {
	secret, err := NewSecret()
	require.NoError(t, err)
	token, err := MintToken(secret, time.Hour)
	require.NoError(t, err)

	e := newGuardedEcho(secret)
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestMissingTokenRejected(t *testing.T) {
	secret, err := NewSecret()
	require.NoError(t, err)

	e := newGuardedEcho(secret)
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	secret, err := NewSecret()
	require.NoError(t, err)
	otherSecret, err := NewSecret()
	require.NoError(t, err)
	token, err := MintToken(otherSecret, time.Hour)
	require.NoError(t, err)

	e := newGuardedEcho(secret)
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	secret, err := NewSecret()
	require.NoError(t, err)
	token, err := MintToken(secret, -time.Minute)
	require.NoError(t, err)

	e := newGuardedEcho(secret)
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
