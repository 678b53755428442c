// Package config 加载服务配置：默认值 < 配置文件 < .env < 环境变量
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/matinfathi/oo-backend/pkg/database"
	"github.com/matinfathi/oo-backend/pkg/logger"
)

// DefaultJWTSecret 仅用于本地开发，生产环境必须覆盖
const DefaultJWTSecret = "change-me"

// Config 全局配置，cmd 构建一次后按值传递
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  database.Config `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Log       logger.Config   `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Security  SecurityConfig  `mapstructure:"security"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"` // development / production
}

// IsProduction 是否生产环境
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	Swagger         bool          `mapstructure:"swagger"`
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Issuer     string        `mapstructure:"issuer"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

// AdminConfig 启动时保证存在的超级管理员
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// RateLimitConfig 公开接口（登录、注册、刷新）按 IP 限流，登录后的接口按用户限流
type RateLimitConfig struct {
	RPS       float64 `mapstructure:"rps"`
	Burst     int     `mapstructure:"burst"`
	UserRPS   float64 `mapstructure:"user_rps"` // <= 0 不限流
	UserBurst int     `mapstructure:"user_burst"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "oo-backend")
	v.SetDefault("app.env", "development")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.swagger", true)

	v.SetDefault("database.driver", database.DriverPostgres)
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=oo port=5432 sslmode=disable")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.slow_threshold", 200*time.Millisecond)

	v.SetDefault("jwt.secret", DefaultJWTSecret)
	v.SetDefault("jwt.issuer", "oo-backend")
	v.SetDefault("jwt.access_ttl", 30*time.Minute)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.email", "admin@example.com")
	v.SetDefault("admin.password", "admin")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("rate_limit.rps", 5)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.user_rps", 20)
	v.SetDefault("rate_limit.user_burst", 40)

	v.SetDefault("security.bcrypt_cost", 10)
}

// LoadOptions 加载选项
type LoadOptions struct {
	File    string // 可选 YAML/JSON/TOML 配置文件
	EnvFile string // 可选 .env 文件，不存在时忽略
}

// Load 读取并校验配置
func Load(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	// database.dsn -> DATABASE_DSN
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver must be %q or %q, got %q",
			database.DriverPostgres, database.DriverSQLite, c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.App.IsProduction() && c.JWT.Secret == DefaultJWTSecret {
		errs = append(errs, errors.New("jwt.secret must be overridden in production"))
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		errs = append(errs, errors.New("jwt ttl must be positive"))
	}
	if c.Admin.Username == "" || c.Admin.Email == "" || c.Admin.Password == "" {
		errs = append(errs, errors.New("admin username, email and password are required"))
	}
	if c.Security.BcryptCost != 0 && (c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31) {
		errs = append(errs, fmt.Errorf("security.bcrypt_cost out of range: %d", c.Security.BcryptCost))
	}

	return errors.Join(errs...)
}
