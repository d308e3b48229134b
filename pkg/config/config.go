package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cron         CronConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"TABLEMAPS_APP_ENV" required:"true"`
	Port         string `envconfig:"TABLEMAPS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TABLEMAPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TABLEMAPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"TABLEMAPS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"TABLEMAPS_DB_DSN"`
	Driver string `envconfig:"TABLEMAPS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TABLEMAPS_DB_HOST"`
	LegacyPort     int    `envconfig:"TABLEMAPS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TABLEMAPS_DB_USER"`
	LegacyPassword string `envconfig:"TABLEMAPS_DB_PASSWORD"`
	LegacyName     string `envconfig:"TABLEMAPS_DB_NAME"`
	LegacySSLMode  string `envconfig:"TABLEMAPS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TABLEMAPS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TABLEMAPS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TABLEMAPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TABLEMAPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TABLEMAPS_REDIS_URL"`
	Address      string        `envconfig:"TABLEMAPS_REDIS_ADDR"`
	Password     string        `envconfig:"TABLEMAPS_REDIS_PASSWORD"`
	DB           int           `envconfig:"TABLEMAPS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TABLEMAPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TABLEMAPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TABLEMAPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TABLEMAPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TABLEMAPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TABLEMAPS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TABLEMAPS_JWT_ISSUER" default:"tablemaps"`
	ExpirationMinutes int    `envconfig:"TABLEMAPS_JWT_EXPIRATION_MINUTES" default:"43200"`
	CookieExpireDays  int    `envconfig:"TABLEMAPS_JWT_COOKIE_EXPIRE_DAYS" default:"30"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// CookieExpiry returns the auth cookie lifetime.
func (j JWTConfig) CookieExpiry() time.Duration {
	if j.CookieExpireDays <= 0 {
		return 0
	}
	return time.Duration(j.CookieExpireDays) * 24 * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TABLEMAPS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TABLEMAPS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TABLEMAPS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TABLEMAPS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TABLEMAPS_ARGON_KEY_LEN" default:"32"`
}

type CronConfig struct {
	// ResetHour and ResetMinute pick the local wall-clock time for the
	// daily dish availability reset.
	ResetHour   int           `envconfig:"TABLEMAPS_CRON_RESET_HOUR" default:"1"`
	ResetMinute int           `envconfig:"TABLEMAPS_CRON_RESET_MINUTE" default:"0"`
	Interval    time.Duration `envconfig:"TABLEMAPS_CRON_INTERVAL"`
	LockTTL     time.Duration `envconfig:"TABLEMAPS_CRON_LOCK_TTL" default:"10m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"TABLEMAPS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TABLEMAPS_AUTO_MIGRATE" default:"false"`
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
