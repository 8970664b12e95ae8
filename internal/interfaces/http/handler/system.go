package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supplypulse/backend/internal/infrastructure/persistence"
)

// SystemHandler handles health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	env     string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName, env: env}
}

// RegisterRoutes registers system routes on the API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// HealthResponse reports service and database health
type HealthResponse struct {
	Status   string    `json:"status"`
	App      string    `json:"app"`
	Env      string    `json:"env"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// Health reports liveness and pings the database
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		App:      h.appName,
		Env:      h.env,
		Database: "up",
		Time:     time.Now().UTC(),
	}

	status := http.StatusOK
	if err := h.db.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, resp)
}
