package monitoring

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsHandler serves request and runtime metrics as JSON
func MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"application": GetMetrics(),
			"system":      GetSystemMetrics(),
			"timestamp":   time.Now().UTC(),
		})
	}
}

// HealthHandler runs every check and answers 503 if any failed
func HealthHandler(health *HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := health.Run()

		status, code := StatusHealthy, http.StatusOK
		if !allHealthy(checks) {
			status, code = StatusUnhealthy, http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"checks":    checks,
			"timestamp": time.Now().UTC(),
		})
	}
}

// ReadinessHandler reports whether the process can serve traffic
func ReadinessHandler(health *HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allHealthy(health.Run()) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// LivenessHandler only proves the process is responding
func LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "alive",
			"uptime": GetSystemMetrics().Uptime.String(),
		})
	}
}
