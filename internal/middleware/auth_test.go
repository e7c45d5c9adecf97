package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint/court-booking/internal/utils"
)

const testSecret = "test-secret"

func echoCtx(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJWTAuthValidToken(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 7, "PLAYER", 15)
	require.NoError(t, err)

	c, _ := echoCtx(t, "Bearer "+access.Token)
	called := false
	next := func(c echo.Context) error {
		called = true
		// JSON decoding turns the numeric sub claim into a float64;
		// handlers normalize it via their own helper.
		require.Equal(t, float64(7), c.Get("user_id"))
		require.Equal(t, "PLAYER", c.Get("role"))
		return nil
	}

	require.NoError(t, JWTAuth(testSecret)(next)(c))
	require.True(t, called)
}

func TestJWTAuthRejects(t *testing.T) {
	otherSecret, err := utils.NewAccessToken("another-secret", 7, "PLAYER", 15)
	require.NoError(t, err)
	expired, err := utils.NewAccessToken(testSecret, 7, "PLAYER", -15)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "wrong secret", header: "Bearer " + otherSecret.Token},
		{name: "expired", header: "Bearer " + expired.Token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := echoCtx(t, tt.header)
			next := func(c echo.Context) error {
				t.Fatal("next must not run")
				return nil
			}
			require.NoError(t, JWTAuth(testSecret)(next)(c))
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     interface{}
		allowed  []string
		wantCode int
	}{
		{name: "allowed", role: "OWNER", allowed: []string{"OWNER"}, wantCode: http.StatusOK},
		{name: "one of several", role: "PLAYER", allowed: []string{"PLAYER", "OWNER"}, wantCode: http.StatusOK},
		{name: "wrong role", role: "PLAYER", allowed: []string{"OWNER"}, wantCode: http.StatusForbidden},
		{name: "missing role", role: nil, allowed: []string{"OWNER"}, wantCode: http.StatusForbidden},
		{name: "non string role", role: 42, allowed: []string{"OWNER"}, wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := echoCtx(t, "")
			if tt.role != nil {
				c.Set("role", tt.role)
			}
			next := func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}
			require.NoError(t, RequireRole(tt.allowed...)(next)(c))
			require.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
