package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "souvenirs"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SOUVENIRS_DB_DSN"
	EnvDBHost = "SOUVENIRS_DB_HOST"
	EnvDBUser = "SOUVENIRS_DB_USER"
	EnvDBName = "SOUVENIRS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOUVENIRS_APP_ENV" required:"true"`
	Port         string `envconfig:"SOUVENIRS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SOUVENIRS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOUVENIRS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SOUVENIRS_DB_DSN"`
	Driver string `envconfig:"SOUVENIRS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SOUVENIRS_DB_HOST"`
	LegacyPort     int    `envconfig:"SOUVENIRS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SOUVENIRS_DB_USER"`
	LegacyPassword string `envconfig:"SOUVENIRS_DB_PASSWORD"`
	LegacyName     string `envconfig:"SOUVENIRS_DB_NAME"`
	LegacySSLMode  string `envconfig:"SOUVENIRS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOUVENIRS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOUVENIRS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOUVENIRS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOUVENIRS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SOUVENIRS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SOUVENIRS_REDIS_ADDR"`
	Password     string        `envconfig:"SOUVENIRS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOUVENIRS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOUVENIRS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOUVENIRS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOUVENIRS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOUVENIRS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOUVENIRS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	TTLHours   int    `envconfig:"SOUVENIRS_SESSION_TTL_HOURS" default:"336"`
	CookieName string `envconfig:"SOUVENIRS_SESSION_COOKIE" default:"souvenirs_session"`
}

// TTL returns the session lifetime configured in hours.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLHours <= 0 {
		return 0
	}
	return time.Duration(s.TTLHours) * time.Hour
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SOUVENIRS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
