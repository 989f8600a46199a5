// Package httpapi wires the keep-alive HTTP server (Gin). The bot itself
// talks to Telegram over long polling; this server only exists so hosting
// platforms that probe an HTTP port see the process as alive, and to expose
// health and Prometheus metrics endpoints.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tbourn/go-fileshare-bot/internal/config"
	"github.com/tbourn/go-fileshare-bot/internal/http/middleware"
)

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Metrics and the /metrics endpoint
//  6. CORS (allow-all; every endpoint here is public and read-only)
func RegisterRoutes(r *gin.Engine, cfg config.Config) {
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{"X-Request-ID", "Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	// Hosting-platform probe target.
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bot is running")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
}

// NewServer builds the keep-alive *http.Server with the configured port and
// timeouts. Callers own ListenAndServe and Shutdown.
func NewServer(cfg config.Config) *http.Server {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	RegisterRoutes(r, cfg)

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
