package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/estatewave/inquiry-service/internal/cache"
	"github.com/estatewave/inquiry-service/internal/hub"
	pkgconfig "github.com/estatewave/inquiry-service/pkg/config"
	"github.com/estatewave/inquiry-service/pkg/log"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Database  DatabaseConfig   `mapstructure:"database"`
	Cache     CacheConfig      `mapstructure:"cache"`
	JWT       JWTConfig        `mapstructure:"jwt"`
	Stream    StreamConfig     `mapstructure:"stream"`
	Websocket hub.ClientConfig `mapstructure:"websocket"`
	Log       log.Config       `mapstructure:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds relational storage settings.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	FilePath        string `mapstructure:"filepath"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// CacheConfig holds the directory cache settings. When disabled, all
// lookups go straight to the database.
type CacheConfig struct {
	Enabled bool         `mapstructure:"enabled"`
	Redis   cache.Config `mapstructure:",squash"`
}

// JWTConfig holds access token verification settings.
type JWTConfig struct {
	Secret   string        `mapstructure:"secret"`
	Duration time.Duration `mapstructure:"duration"`
	Issuer   string        `mapstructure:"issuer"`
}

// StreamConfig tunes the notification stream sessions.
type StreamConfig struct {
	Buffer      int           `mapstructure:"buffer"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// Load reads the configuration file and environment overrides.
func Load(configPath, configName string) (*Config, error) {
	v, err := pkgconfig.Load(configPath, configName)
	if err != nil {
		return nil, err
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "estatewave")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.prefix", "estatewave")
	v.SetDefault("cache.ttl", 5*time.Minute)

	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.duration", 24*time.Hour)
	v.SetDefault("jwt.issuer", "estatewave")

	v.SetDefault("stream.buffer", 64)
	v.SetDefault("stream.idle_timeout", 30*time.Minute)

	v.SetDefault("websocket.ping_interval", 30*time.Second)
	v.SetDefault("websocket.pong_wait", 60*time.Second)
	v.SetDefault("websocket.write_wait", 10*time.Second)
	v.SetDefault("websocket.max_message_size", 4096)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.service_name", "inquiry-service")
}
