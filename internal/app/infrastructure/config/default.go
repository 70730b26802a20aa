package config

import "time"

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel: "info",
			LogFile:  "logs/addrparse.log",
			GinMode:  "release",
			Addr:     ":8080",
		},
		Limiter: Limiter{
			Requests: 20,
			Per:      time.Second,
		},
		Parser: Parser{
			DefaultStrategy: "auto",
			MandatoryFields: []string{"name", "street", "house_number", "postal_code", "city", "country"},
		},
		Cache: Cache{
			Capacity: 10_000,
			TTL:      30 * time.Minute,
			Persist:  false,
			FilePath: "cache/parse.json",
		},
		Sessions: Sessions{
			Shards:     16,
			TTL:        time.Hour,
			MaxHistory: 50,
		},
		Storage: Storage{
			Database:   "taxmate",
			Collection: "addresses",
			Timeout:    5 * time.Second,
			FilePath:   "data/addresses.json",
		},
		Cors: Cors{
			AllowOrigins: []string{"*"},
		},
	}
}
