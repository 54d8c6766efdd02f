package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Name        string
	Version     string
	LogLevel    string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	JWT         JWTConfig
	S3          S3Config
	Redis       RedisConfig
	Flash       FlashConfig
	Metrics     MetricsConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHeaderMB  int
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
}

type JWTConfig struct {
	SigningKey      string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

// RedisConfig is optional. An empty Host means flash notices stay in process memory.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type FlashConfig struct {
	TTL time.Duration
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// source resolves a setting from the environment first, then from the optional TOML file.
type source struct {
	file map[string]string
}

// NewConfig reads CONFIG_FILE (TOML) when set and lets environment variables override it.
// A key "port" in table [http] is the same setting as HTTP_PORT.
func NewConfig() (*Config, error) {
	src := source{file: map[string]string{}}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		values, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		src.file = values
	}

	return src.build()
}

func (s source) build() (*Config, error) {
	httpReadTimeout, err := s.getDuration("HTTP_READ_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := s.getDuration("HTTP_WRITE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := s.getDuration("POSTGRES_MAX_LIFETIME", "5m")
	if err != nil {
		return nil, err
	}

	jwtAccessTokenTTL, err := s.getDuration("JWT_ACCESS_TOKEN_TTL", "15m")
	if err != nil {
		return nil, err
	}

	jwtRefreshTokenTTL, err := s.getDuration("JWT_REFRESH_TOKEN_TTL", "24h")
	if err != nil {
		return nil, err
	}

	flashTTL, err := s.getDuration("FLASH_TTL", "5m")
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment: s.getEnv("APP_ENV", "development"),
		Name:        s.getEnv("APP_NAME", "bookadmin"),
		Version:     s.getEnv("APP_VERSION", "1.0.0"),
		LogLevel:    s.getEnv("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Port:         s.getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
			MaxHeaderMB:  s.getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
		},
		Postgres: PostgresConfig{
			Host:               s.getEnv("POSTGRES_HOST", "localhost"),
			Port:               s.getEnv("POSTGRES_PORT", "5432"),
			Username:           s.getEnv("POSTGRES_USER", "postgres"),
			Password:           s.getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             s.getEnv("POSTGRES_DB", "bookadmin"),
			SSLMode:            s.getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     s.getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: s.getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
		},
		JWT: JWTConfig{
			SigningKey:      s.getEnv("JWT_SIGNING_KEY", "your_secret_key"),
			AccessTokenTTL:  jwtAccessTokenTTL,
			RefreshTokenTTL: jwtRefreshTokenTTL,
		},
		S3: S3Config{
			Endpoint:        s.getEnv("S3_ENDPOINT", ""),
			Region:          s.getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     s.getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: s.getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          s.getEnv("S3_BUCKET", "bookadmin"),
			UseSSL:          s.getEnv("S3_USE_SSL", "true") == "true",
		},
		Redis: RedisConfig{
			Host:     s.getEnv("REDIS_HOST", ""),
			Port:     s.getEnv("REDIS_PORT", "6379"),
			Password: s.getEnv("REDIS_PASSWORD", ""),
			DB:       s.getEnvAsInt("REDIS_DB", 0),
		},
		Flash: FlashConfig{
			TTL: flashTTL,
		},
		Metrics: MetricsConfig{
			Enabled: s.getEnv("METRICS_ENABLED", "true") == "true",
			Path:    s.getEnv("METRICS_PATH", "/metrics"),
		},
	}, nil
}

func loadFile(path string) (map[string]string, error) {
	var raw map[string]interface{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("ошибка чтения файла конфигурации %s: %w", path, err)
	}

	values := make(map[string]string)
	flatten("", raw, values)
	return values, nil
}

func flatten(prefix string, raw map[string]interface{}, out map[string]string) {
	for k, v := range raw {
		name := strings.ToUpper(k)
		if prefix != "" {
			name = prefix + "_" + name
		}

		switch value := v.(type) {
		case map[string]interface{}:
			flatten(name, value, out)
		default:
			out[name] = fmt.Sprint(value)
		}
	}
}

func (s source) getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value, ok := s.file[key]; ok && value != "" {
		return value
	}
	return defaultValue
}

func (s source) getEnvAsInt(key string, defaultValue int) int {
	valueStr := s.getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}

func (s source) getDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(s.getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("некорректное значение %s: %w", key, err)
	}
	return d, nil
}
