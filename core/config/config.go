package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"booker-api/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	GoogleAPI GoogleAPIConfig
	Overlay   OverlayConfig
	Queue     QueueConfig
	Logger    logger.Config
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret    string
	Issuer    string
	AccessTTL time.Duration
}

type GoogleAPIConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type OverlayConfig struct {
	DefaultTimezone string
	// LocalTimezone is the runtime zone busy intervals are re-based from. Empty means time.Local.
	LocalTimezone string
	CacheTTL      time.Duration
}

type QueueConfig struct {
	Concurrency int
}

var (
	mu       sync.RWMutex
	instance *Config
)

// Init loads .env (if present), the optional config file and the environment.
// Env keys use "_" for nesting: SERVER_PORT, DATABASE_HOST, OVERLAY_CACHETTL.
func Init(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("Config:Init:DotEnvNotLoaded", "error", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", configFile, err)
		}
	}

	// AutomaticEnv only applies to keys viper already knows; bind every key explicitly.
	for _, key := range v.AllKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %q: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	Set(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.baseurl", "")

	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "booker")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "booker-api")
	v.SetDefault("jwt.accessttl", "24h")

	v.SetDefault("googleapi.clientid", "")
	v.SetDefault("googleapi.clientsecret", "")
	v.SetDefault("googleapi.redirecturi", "")

	v.SetDefault("overlay.defaulttimezone", "Europe/London")
	v.SetDefault("overlay.localtimezone", "")
	v.SetDefault("overlay.cachettl", "60s")

	v.SetDefault("queue.concurrency", 5)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
}

func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

// Get panics when Init has not run; use GetSafe where that is possible.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config is not initialized")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
