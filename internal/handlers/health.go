package handlers

import (
	"net/http"
	"time"

	"github.com/codelancer/api/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	ServiceName = "CODELANCER AI"
	Version     = "0.1.0"
)

// Features lists the capabilities exposed by the API
var Features = []models.Feature{
	{Name: "Code Analysis", Endpoint: "POST /analyze"},
	{Name: "Code Generation", Endpoint: "POST /generate"},
	{Name: "Auto-Correction", Endpoint: "POST /correct"},
}

// HealthHandler serves the service information endpoints
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// RootResponse is returned by the root endpoint
type RootResponse struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// FeaturesResponse lists the service capabilities
type FeaturesResponse struct {
	Features []models.Feature `json:"features"`
}

// Root returns the service banner
//
//	@Summary	Service information
//	@Tags		service
//	@Produce	json
//	@Success	200	{object}	RootResponse
//	@Router		/ [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Message:   ServiceName,
		Status:    "running",
		Version:   Version,
		Timestamp: h.now(),
	})
}

// Health returns basic health status
//
//	@Summary	Health check
//	@Tags		service
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now(),
	})
}

// ListFeatures returns the static capability list
//
//	@Summary	List features
//	@Tags		service
//	@Produce	json
//	@Success	200	{object}	FeaturesResponse
//	@Router		/features [get]
func (h *HealthHandler) ListFeatures(c *gin.Context) {
	c.JSON(http.StatusOK, FeaturesResponse{Features: Features})
}
