package config

import (
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"time"
)

type Config struct {
	App      App      `json:"app"`
	Proxy    *Proxy   `json:"proxy"`
	Limiter  Limiter  `json:"limiter"`
	Parser   Parser   `json:"parser"`
	Cache    Cache    `json:"cache"`
	Sessions Sessions `json:"sessions"`
	Storage  Storage  `json:"storage"`
	Cors     Cors     `json:"cors"`
}

type App struct {
	LogLevel  string `json:"log_level"`
	LogFile   string `json:"log_file"`
	GinMode   string `json:"gin_mode"`
	Addr      string `json:"addr"`
	AuthToken string `json:"auth_token"` // пустой токен отключает авторизацию /api
}

// Proxy используется только для исходящих соединений с MongoDB.
type Proxy struct {
	Address  string `json:"address"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Limiter ограничивает запросы одного клиента к /api и /ws.
type Limiter struct {
	Requests int           `json:"requests"` // сколько запросов
	Per      time.Duration `json:"per"`      // за какое время
}

type Parser struct {
	DefaultStrategy string   `json:"default_strategy"`
	MandatoryFields []string `json:"mandatory_fields"`

	Strategy  address.Strategy   `json:"-"`
	Mandatory []address.FieldKey `json:"-"`
}

type Cache struct {
	Capacity int           `json:"capacity"`
	TTL      time.Duration `json:"ttl"`
	Persist  bool          `json:"persist"`
	FilePath string        `json:"file_path"`
}

type Sessions struct {
	Shards     int           `json:"shards"`
	TTL        time.Duration `json:"ttl"`
	MaxHistory int           `json:"max_history"`
}

// Storage: при пустом mongo_uri адреса сохраняются в file_path.
type Storage struct {
	MongoURI   string        `json:"mongo_uri"`
	Database   string        `json:"database"`
	Collection string        `json:"collection"`
	Timeout    time.Duration `json:"timeout"`
	FilePath   string        `json:"file_path"`
}

type Cors struct {
	AllowOrigins []string `json:"allow_origins"`
}
