package config

import (
	"errors"
	"fmt"
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"net/url"
	"slices"
	"time"
)

func (m *Manager) validate(cfg *Config) error {
	// app
	validLevels := []string{"trace", "debug", "info", "warn", "error"}
	if cfg.App.LogLevel != "" && !slices.Contains(validLevels, cfg.App.LogLevel) {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error; got %s", cfg.App.LogLevel)
	}

	validModes := []string{"debug", "release", "test"}
	if cfg.App.GinMode != "" && !slices.Contains(validModes, cfg.App.GinMode) {
		return fmt.Errorf("app.gin_mode must be one of debug, release, test; got %s", cfg.App.GinMode)
	}
	if cfg.App.Addr == "" {
		return errors.New("app.addr is required")
	}

	// proxy
	if cfg.Proxy != nil {
		if cfg.Proxy.Address == "" {
			return errors.New("proxy.address is required when proxy is set")
		}
		if cfg.Proxy.Port <= 0 || cfg.Proxy.Port > 65535 {
			return fmt.Errorf("proxy.port must be in [1,65535]; got %d", cfg.Proxy.Port)
		}
	}

	// limiter
	if (cfg.Limiter.Requests != 0 && cfg.Limiter.Per == 0) || (cfg.Limiter.Requests == 0 && cfg.Limiter.Per != 0) {
		return errors.New("limiter.requests and limiter.per must both be set or both be zero")
	}
	if cfg.Limiter.Requests < 0 || cfg.Limiter.Per < 0 {
		return errors.New("limiter.requests and limiter.per must not be negative")
	}

	// parser
	strategy, err := address.ParseStrategy(cfg.Parser.DefaultStrategy)
	if err != nil {
		return fmt.Errorf("parser.default_strategy: %w", err)
	}
	cfg.Parser.Strategy = strategy

	if len(cfg.Parser.MandatoryFields) == 0 {
		cfg.Parser.Mandatory = slices.Clone(address.DefaultMandatory)
	} else {
		keys, err := address.ParseFieldKeys(cfg.Parser.MandatoryFields)
		if err != nil {
			return fmt.Errorf("parser.mandatory_fields: %w", err)
		}
		cfg.Parser.Mandatory = keys
	}

	// cache
	if cfg.Cache.Capacity <= 0 {
		return fmt.Errorf("cache.capacity must be positive; got %d", cfg.Cache.Capacity)
	}
	if cfg.Cache.TTL < 0 {
		return errors.New("cache.ttl must not be negative")
	}
	if cfg.Cache.Persist && cfg.Cache.FilePath == "" {
		return errors.New("cache.file_path is required when cache.persist is enabled")
	}

	// sessions
	if cfg.Sessions.Shards <= 0 || cfg.Sessions.Shards > 1024 {
		return fmt.Errorf("sessions.shards must be in [1,1024]; got %d", cfg.Sessions.Shards)
	}
	if cfg.Sessions.TTL < time.Second {
		return errors.New("sessions.ttl must be at least 1s")
	}
	if cfg.Sessions.MaxHistory < 0 {
		return errors.New("sessions.max_history must not be negative")
	}

	// storage
	if cfg.Storage.MongoURI != "" {
		u, err := url.Parse(cfg.Storage.MongoURI)
		if err != nil || (u.Scheme != "mongodb" && u.Scheme != "mongodb+srv") {
			return fmt.Errorf("storage.mongo_uri must be a mongodb:// or mongodb+srv:// url; got %s", cfg.Storage.MongoURI)
		}
		if cfg.Storage.Database == "" {
			return errors.New("storage.database is required with storage.mongo_uri")
		}
		if cfg.Storage.Collection == "" {
			return errors.New("storage.collection is required with storage.mongo_uri")
		}
	} else if cfg.Storage.FilePath == "" {
		return errors.New("storage.file_path is required without storage.mongo_uri")
	}
	if cfg.Storage.Timeout <= 0 {
		cfg.Storage.Timeout = 5 * time.Second
	}

	// cors
	for i, origin := range cfg.Cors.AllowOrigins {
		if origin == "*" {
			continue
		}
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("cors.allow_origins[%d] must be \"*\" or an absolute origin; got %s", i, origin)
		}
	}

	return nil
}
