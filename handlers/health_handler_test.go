package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekpsgroup/contractorjobcosting-backend/services"
	"github.com/thekpsgroup/contractorjobcosting-backend/types"
)

func setupHealthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHealthHandler(services.NewHealthService("test"))

	r := gin.New()
	r.GET("/health", handler.DetailedHealth)
	r.GET("/health/liveness", handler.LivenessCheck)
	r.GET("/health/readiness", handler.ReadinessCheck)
	return r
}

func TestLivenessCheck(t *testing.T) {
	r := setupHealthRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/liveness", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDetailedHealth(t *testing.T) {
	r := setupHealthRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var health types.HealthCheck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, types.HealthStatusUp, health.Status)
	assert.Equal(t, "test", health.Version)
	assert.NotEmpty(t, health.Uptime)
}
