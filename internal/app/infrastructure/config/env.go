package config

import (
	"strings"
)

// Переменные окружения перекрывают значения из config.json при запуске.
const (
	EnvAddr      = "TAXMATE_ADDR"
	EnvLogLevel  = "TAXMATE_LOG_LEVEL"
	EnvAuthToken = "TAXMATE_AUTH_TOKEN"
	EnvMongoURI  = "TAXMATE_MONGO_URI"
)

func applyEnv(cfg *Config, lookup func(string) (string, bool)) bool {
	changed := false
	set := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = strings.TrimSpace(v)
			changed = true
		}
	}

	set(EnvAddr, &cfg.App.Addr)
	set(EnvLogLevel, &cfg.App.LogLevel)
	set(EnvAuthToken, &cfg.App.AuthToken)
	set(EnvMongoURI, &cfg.Storage.MongoURI)
	return changed
}
