package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/thekpsgroup/contractorjobcosting-backend/config"
)

// CORSMiddleware restricts cross-origin requests to the site's configured
// origins. The contact pipeline re-checks the Origin header itself, so this
// is belt-level browser enforcement, not the forgery guard.
func CORSMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Accept",
			"X-Requested-With",
		},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if cfg.Environment != config.EnvProduction {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins,
			"http://localhost:3000", "http://localhost")
	}

	return cors.New(corsConfig)
}
