package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Store struct {
		// memory / redis / postgres / sqlite
		Backend          string `env:"BACKEND" envDefault:"memory"`
		Key              string `env:"KEY" envDefault:"ipt_demo_v1"`
		AuthTokenKey     string `env:"AUTH_TOKEN_KEY" envDefault:"auth_token"`
		UnverifiedKey    string `env:"UNVERIFIED_KEY" envDefault:"unverified_email"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"5"`
	} `envPrefix:"STORE_"`
	Database struct {
		DSN            string `env:"DSN"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"4"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"4"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	SQLite struct {
		Path string `env:"PATH" envDefault:"./portal.db"`
	} `envPrefix:"SQLITE_"`
	Redis struct {
		Host           string `env:"HOST" envDefault:"localhost"`
		Port           int    `env:"PORT" envDefault:"6379"`
		Password       string `env:"PASSWORD"`
		DB             int    `env:"DB" envDefault:"0"`
		KeyPrefix      string `env:"KEY_PREFIX" envDefault:"portal:"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	// 种子数据中的管理员账户，仅用于演示，正式环境必须替换
	SeedAdmin struct {
		FirstName string `env:"FIRST_NAME" envDefault:"Admin"`
		LastName  string `env:"LAST_NAME" envDefault:"User"`
		Email     string `env:"EMAIL" envDefault:"admin@example.com"`
		Password  string `env:"PASSWORD" envDefault:"Password123!"`
	} `envPrefix:"SEED_ADMIN_"`
	Seed struct {
		User struct {
			Password string `env:"PASSWORD" envDefault:"changeme1"`
		} `envPrefix:"USER_"`
	} `envPrefix:"SEED_"`
	Email struct {
		UserDomain string `env:"USER_DOMAIN" envDefault:"example.com"`
		VerifyURL  string `env:"VERIFY_URL" envDefault:"http://localhost:3000/auth/verify-email"`
		SMTP       struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		// 为空时不投递验证邮件
		DSN            string `env:"DSN"`
		Queue          string `env:"QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var (
	ErrUnknownBackend = errors.New("STORE_BACKEND must be one of memory, redis, postgres, sqlite")
	ErrMissingDSN     = errors.New("DATABASE_DSN is required for the postgres backend")
	ErrWeakSeedAdmin  = errors.New("SEED_ADMIN_PASSWORD must be at least 6 characters")
)

// Validate 校验与存储后端相关的组合配置
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "redis", "sqlite":
	case "postgres":
		if c.Database.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return ErrUnknownBackend
	}

	if len(c.SeedAdmin.Password) < 6 {
		return ErrWeakSeedAdmin
	}

	return nil
}
