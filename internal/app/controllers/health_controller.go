package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clgres/resultapi/internal/app/models/dto"
)

// StorePinger reports document store reachability
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves liveness checks
type HealthController struct {
	store     StorePinger
	storeName string
}

// NewHealthController creates a new HealthController
func NewHealthController(store StorePinger, storeName string) *HealthController {
	return &HealthController{store: store, storeName: storeName}
}

// Health pings the document store
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if err := c.store.Ping(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Store: c.storeName})
		return
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Store: c.storeName})
}

// Ping answers without touching the store
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}
