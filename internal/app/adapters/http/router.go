package http

import (
	"context"
	"errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/opfobo/taxmate-sub000/internal/app/adapters/http/handlers"
	"github.com/opfobo/taxmate-sub000/internal/app/adapters/http/middlewares"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/config"
	"github.com/opfobo/taxmate-sub000/internal/app/ports"
	"github.com/opfobo/taxmate-sub000/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"slices"
	"time"
)

type Router struct {
	router      *gin.Engine
	handlers    *handlers.Handlers
	middlewares *middlewares.Middlewares
	server      *http.Server

	log     logger.Logger
	manager *config.Manager
}

func NewRouter(log logger.Logger, manager *config.Manager, address ports.AddressPort, sessions ports.SessionsPort, store ports.AddressStorePort) *Router {
	r := &Router{
		router:      gin.New(),
		handlers:    handlers.New(log, manager, address, sessions, store),
		middlewares: middlewares.New(log),
		log:         log,
		manager:     manager,
	}
	cfg := manager.Get()
	r.server = r.newServer(cfg.App.Addr, r.router)

	r.router.Use(gin.Recovery(), r.middlewares.Metrics(), cors.New(corsConfig(cfg.Cors)))

	if cfg.App.AuthToken != "" {
		admin := gin.BasicAuth(gin.Accounts{
			"admin": cfg.App.AuthToken,
		})
		pprof.Register(r.router.Group("/", admin))
		r.router.GET("/metrics", admin, gin.WrapH(promhttp.Handler()))
	}

	var limiter *middlewares.RateLimiter
	if cfg.Limiter.Requests > 0 && cfg.Limiter.Per > 0 {
		limiter = middlewares.NewRateLimiter(cfg.Limiter.Requests, cfg.Limiter.Per)
	}

	r.router.GET("/status", r.handlers.StatusHandler)
	r.router.GET("/ws/preview", r.middlewares.RateLimit(limiter), r.middlewares.Auth(cfg.App.AuthToken), r.handlers.PreviewHandler)

	api := r.router.Group("/api/v1", r.middlewares.RateLimit(limiter), r.middlewares.Auth(cfg.App.AuthToken))
	{
		api.POST("/detect", r.handlers.DetectHandler)
		api.POST("/transliterate", r.handlers.TransliterateHandler)
		api.POST("/parse", r.handlers.ParseHandler)

		api.GET("/sessions/:id", r.handlers.GetSessionHandler)
		api.POST("/sessions/:id/edits", r.handlers.EditSessionHandler)
		api.POST("/sessions/:id/undo", r.handlers.UndoSessionHandler)
		api.POST("/sessions/:id/commit", r.handlers.CommitSessionHandler)

		api.GET("/addresses", r.handlers.ListAddressesHandler)
		api.GET("/addresses/export.xlsx", r.handlers.ExportAddressesHandler)
		api.GET("/addresses/:id", r.handlers.GetAddressHandler)
	}

	return r
}

func corsConfig(c config.Cors) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
	cc.ExposeHeaders = []string{"Content-Disposition"}
	if len(c.AllowOrigins) == 0 || slices.Contains(c.AllowOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowOrigins
	}
	return cc
}

func (r *Router) Handler() http.Handler {
	return r.router
}

// Run serves until Shutdown is called.
func (r *Router) Run() error {
	r.log.Info("HTTP server started", "addr", r.server.Addr)

	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func (r *Router) newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
