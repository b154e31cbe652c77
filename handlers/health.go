package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealth registers liveness and readiness endpoints.
// GET /health always answers 200; GET /ready answers 503 while the store cannot be loaded.
func RegisterHealth(r gin.IRoutes, store Pinger, backend string, started time.Time) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		uptime := time.Since(started).Truncate(time.Second).String()
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "store": backend, "error": err.Error(), "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "store": backend, "uptime": uptime})
	})
}
