package server

import (
	"net/http"
	"os"
	"strings"
	"time"

	"task-logger/internal/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func (s *Server) setupRoutes() *gin.Engine {
	r := gin.New()

	// Order matters: the request id must exist before anything logs.
	r.Use(RequestID())
	r.Use(AccessLog())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(RecoveryWithLog())
	r.Use(cors.New(s.corsConfig()))

	if rpm := s.cfg.RateLimit.RequestsPerMinute; rpm > 0 {
		r.Use(RateLimiter(rate.Limit(float64(rpm)/60.0), s.cfg.RateLimit.Burst))
	}

	r.GET("/health", monitoring.HealthHandler(s.health))
	r.GET("/ready", monitoring.ReadinessHandler(s.health))
	r.GET("/live", monitoring.LivenessHandler())
	r.GET("/metrics", monitoring.MetricsHandler())

	h := newTaskHandler(s.api, s.cfg)

	apiRoutes := r.Group("/api")
	{
		taskRoutes := apiRoutes.Group("/tasks")
		{
			taskRoutes.GET("", h.ListTasks)
			taskRoutes.GET("/:id", h.GetTask)
			taskRoutes.POST("", h.CreateTask)
			taskRoutes.PUT("/:id", h.UpdateTask)
			taskRoutes.DELETE("/:id", h.DeleteTask)
		}

		apiRoutes.GET("/stats", h.GetStats)
		apiRoutes.GET("/export", h.ExportCSV)
		apiRoutes.GET("/users", h.GetUsers)
	}

	r.NoRoute(s.staticHandler())

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range s.cfg.Server.AllowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = s.cfg.Server.AllowedOrigins
	return cfg
}

// staticHandler serves the pre-built web client for any unmatched GET.
// Unknown API paths and other methods get a JSON 404.
func (s *Server) staticHandler() gin.HandlerFunc {
	dir := s.cfg.Server.StaticDir
	files := http.FileServer(http.Dir(dir))

	return func(c *gin.Context) {
		method := c.Request.Method
		isRead := method == http.MethodGet || method == http.MethodHead
		if isRead && dir != "" && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				files.ServeHTTP(c.Writer, c.Request)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "code": "NOT_FOUND"})
	}
}
