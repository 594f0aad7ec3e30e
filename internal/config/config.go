package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Kakao     KakaoConfig     `mapstructure:"kakao"`
	Report    ReportConfig    `mapstructure:"report"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`

	// TrustedProxies are the peers whose X-Forwarded-For and X-Real-IP headers are honoured.
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"dive,ip_or_cidr"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,origin"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"min=0"`
}

// RedisConfig configures the shared rate-limit store. An empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"omitempty,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours" validate:"min=1"`
}

type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds" validate:"min=1"`
	LockSeconds   int `mapstructure:"lock_seconds" validate:"min=1"`
	MaxAttempts   int `mapstructure:"max_attempts" validate:"min=1"`
}

type KakaoConfig struct {
	RESTAPIKey       string `mapstructure:"rest_api_key"`
	BaseURL          string `mapstructure:"base_url" validate:"url"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
}

type ReportConfig struct {
	Template string `mapstructure:"template" validate:"omitempty,file"`
}

type LoggingConfig struct {
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/imjang")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "imjang")
	v.SetDefault("database.username", "user")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.token_ttl_hours", 720)
	v.SetDefault("rate_limit.window_seconds", 600)
	v.SetDefault("rate_limit.lock_seconds", 900)
	v.SetDefault("rate_limit.max_attempts", 5)
	v.SetDefault("kakao.base_url", "https://dapi.kakao.com")
	v.SetDefault("kakao.max_retry_attempts", 3)
	// Report template is optional - if not specified, the embedded template is used
	v.SetDefault("report.template", "")
	v.SetDefault("logging.format", "text")

	// Secrets are bound to environment variables so they can stay out of the config file
	envBindings := map[string]string{
		"database.password":  "DB_PASSWORD",
		"redis.password":     "REDIS_PASSWORD",
		"auth.jwt_secret":    "IMJANG_JWT_SECRET",
		"kakao.rest_api_key": "KAKAO_REST_API_KEY",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
