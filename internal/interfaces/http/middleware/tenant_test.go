package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTenantTestRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Tenant())

	var seen string
	engine.GET("/api/v1/payables", func(c *gin.Context) {
		seen = GetTenantID(c)
		c.Status(http.StatusOK)
	})
	engine.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine, &seen
}

func TestTenantMiddleware(t *testing.T) {
	t.Run("extracts tenant from header", func(t *testing.T) {
		engine, seen := newTenantTestRouter()
		tenantID := uuid.New().String()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/payables", nil)
		req.Header.Set(TenantHeaderKey, tenantID)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tenantID, *seen)
	})

	t.Run("rejects missing tenant", func(t *testing.T) {
		engine, _ := newTenantTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/payables", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Tenant identification required")
	})

	t.Run("rejects malformed tenant ID", func(t *testing.T) {
		engine, _ := newTenantTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/payables", nil)
		req.Header.Set(TenantHeaderKey, "not-a-uuid")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("skips health endpoints", func(t *testing.T) {
		engine, _ := newTenantTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetTenantUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	id := uuid.New()
	c.Set(TenantIDKey, id.String())

	got, err := GetTenantUUID(c)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
