package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/rest/middleware/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) *bunrouter.Router {
	t.Helper()

	middleware := auth.New(zap.NewNop())

	router := bunrouter.New()
	router.Use(middleware.AsRESTMiddleware).GET("/whoami", func(w http.ResponseWriter, req bunrouter.Request) error {
		userID, ok := auth.UserID(req.Context())
		require.True(t, ok)

		return bunrouter.JSON(w, map[string]int64{"userId": userID})
	})

	return router
}

func TestAuthenticatedRequest(t *testing.T) {
	t.Parallel()

	router := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(auth.Header, "42")

	rec := httptest.NewRecorder()
	require.NoError(t, router.ServeHTTPError(rec, req))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":42}`, rec.Body.String())
}

func TestMissingHeader(t *testing.T) {
	t.Parallel()

	router := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, router.ServeHTTPError(rec, req))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMalformedHeader(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"abc", "-1", "0", "1.5"} {
		router := setupTest(t)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(auth.Header, value)

		rec := httptest.NewRecorder()
		require.NoError(t, router.ServeHTTPError(rec, req))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "value %q", value)
	}
}

func TestUserIDAbsent(t *testing.T) {
	t.Parallel()

	_, ok := auth.UserID(context.Background())
	assert.False(t, ok)
}
