package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Catalog   CatalogConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Minio     MinioConfig
	GigaChat  GigaChatConfig  `mapstructure:"gigachat"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Path of the file the config was read from, used by the watcher.
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// StorageConfig selects the progress persistence backend: memory, database
// (driver chosen by DatabaseConfig.Driver), redis or minio.
type StorageConfig struct {
	Type string `mapstructure:"type"`
}

const (
	StorageMemory   = "memory"
	StorageDatabase = "database"
	StorageRedis    = "redis"
	StorageMinio    = "minio"
)

type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool   `mapstructure:"parse_time"`
	SQLite    string `mapstructure:"sqlite_path"`
	LogSQL    bool   `mapstructure:"log_sql"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Key      string
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Object    string `mapstructure:"object"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type GigaChatConfig struct {
	AuthKey            string        `mapstructure:"auth_key"`
	Scope              string        `mapstructure:"scope"`
	OAuthURL           string        `mapstructure:"oauth_url"`
	CompletionsURL     string        `mapstructure:"completions_url"`
	Model              string        `mapstructure:"model"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	AuthTimeout        time.Duration `mapstructure:"auth_timeout"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("catalog.path", "configs/modules.yaml")
	v.SetDefault("storage.type", StorageMemory)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite_path", "data/progress.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key", "triz-progress")

	v.SetDefault("minio.bucket", "triz-progress")
	v.SetDefault("minio.object", "triz-progress.json")

	v.SetDefault("gigachat.scope", "GIGACHAT_API_PERS")
	v.SetDefault("gigachat.oauth_url", "https://ngw.devices.sberbank.ru:9443/api/v2/oauth")
	v.SetDefault("gigachat.completions_url", "https://gigachat.devices.sberbank.ru/api/v1/chat/completions")
	v.SetDefault("gigachat.model", "GigaChat")
	v.SetDefault("gigachat.auth_timeout", 30*time.Second)

	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig reads config.yaml from path, overlaying TRIZ_EDU_* and the
// explicitly bound environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TRIZ_EDU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// GigaChat
	v.BindEnv("gigachat.auth_key", "GIGACHAT_AUTH_KEY")
	v.BindEnv("gigachat.scope", "GIGACHAT_SCOPE")
	v.BindEnv("gigachat.model", "GIGACHAT_MODEL")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "PORT")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("minio.endpoint", "MINIO_ENDPOINT")
	v.BindEnv("minio.access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("minio.secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("minio.bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory, StorageRedis, StorageMinio:
	case StorageDatabase:
		switch c.Database.Driver {
		case "sqlite", "mysql", "postgres":
		default:
			return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}
	if c.Storage.Type == StorageMinio && c.Minio.Endpoint == "" {
		return fmt.Errorf("minio storage requires minio.endpoint")
	}
	if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowMinutes <= 0 {
		return fmt.Errorf("rate_limit values must be positive")
	}
	return nil
}
