package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	addrsvc "github.com/opfobo/taxmate-sub000/internal/app/adapters/address"
	router "github.com/opfobo/taxmate-sub000/internal/app/adapters/http"
	"github.com/opfobo/taxmate-sub000/internal/app/adapters/metrics"
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/config"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/storage"
	"github.com/opfobo/taxmate-sub000/internal/app/ports"
	"github.com/opfobo/taxmate-sub000/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/proxy"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	configPath      = "config.json"
	shutdownTimeout = 10 * time.Second
	gaugeInterval   = 30 * time.Second
)

// New wires the service from config.json and serves until SIGINT or SIGTERM.
func New() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot := logger.New(logger.WithFile(""))
	manager, err := config.New(configPath)
	if err != nil {
		boot.Fatal("Error loading config", err)
	}

	cfg := manager.Get()
	log := logger.New(logger.WithFile(cfg.App.LogFile), logger.WithLevel(cfg.App.LogLevel))
	gin.SetMode(cfg.App.GinMode)

	prometheus.MustRegister(metrics.ParseDuration)

	cache := storage.NewCache[address.FieldSet](cfg.Cache.Capacity, cfg.Cache.TTL, cfg.Cache.Persist, false, cfg.Cache.FilePath, time.Minute)
	defer func() {
		if err := cache.Close(); err != nil {
			log.Error("Error flushing parse cache", err)
		}
	}()

	sessions := storage.NewSessions(cfg.Sessions.Shards, cfg.Sessions.TTL, cfg.Sessions.MaxHistory, sweepInterval(cfg.Sessions.TTL))
	defer sessions.Close()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Error("Error opening address store", err)
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error("Error closing address store", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(gaugeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.SessionsActive.Set(float64(sessions.Len()))
			}
		}
	}()

	service := addrsvc.New(log, cfg.Parser, cache)
	r := router.NewRouter(log, manager, service, sessions, store)

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server stopped", err)
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", err)
		return err
	}
	return <-errCh
}

// sweepInterval runs the session janitor a few times per ttl.
func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Second)
}

func newStore(ctx context.Context, cfg *config.Config) (ports.AddressStorePort, error) {
	if cfg.Storage.MongoURI == "" {
		fs, err := storage.NewFileStore(cfg.Storage.FilePath)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}

	opts := storage.MongoOptions{
		URI:        cfg.Storage.MongoURI,
		Database:   cfg.Storage.Database,
		Collection: cfg.Storage.Collection,
		Timeout:    cfg.Storage.Timeout,
	}

	if cfg.Proxy != nil && cfg.Proxy.Address != "" && cfg.Proxy.Port != 0 {
		var auth *proxy.Auth
		if cfg.Proxy.Username != "" {
			auth = &proxy.Auth{User: cfg.Proxy.Username, Password: cfg.Proxy.Password}
		}

		dialer, err := proxy.SOCKS5("tcp", fmt.Sprintf("%s:%d", cfg.Proxy.Address, cfg.Proxy.Port), auth, proxy.Direct)
		if err != nil {
			return nil, err
		}
		cd, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, errors.New("socks5 dialer does not support contexts")
		}
		opts.Dialer = cd
	}

	return storage.NewMongoStore(ctx, opts)
}
