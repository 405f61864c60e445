package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "medimart"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MEDIMART_DB_DSN"
	EnvDBHost = "MEDIMART_DB_HOST"
	EnvDBUser = "MEDIMART_DB_USER"
	EnvDBName = "MEDIMART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	TokenLimit   TokenRateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Stripe       StripeConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
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
	Env          string `envconfig:"MEDIMART_APP_ENV" required:"true"`
	Port         string `envconfig:"MEDIMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MEDIMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEDIMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MEDIMART_DB_DSN"`
	Driver string `envconfig:"MEDIMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MEDIMART_DB_HOST"`
	LegacyPort     int    `envconfig:"MEDIMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MEDIMART_DB_USER"`
	LegacyPassword string `envconfig:"MEDIMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"MEDIMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"MEDIMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MEDIMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MEDIMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MEDIMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MEDIMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MEDIMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MEDIMART_REDIS_ADDR"`
	Password     string        `envconfig:"MEDIMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEDIMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEDIMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEDIMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEDIMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEDIMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEDIMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MEDIMART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MEDIMART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MEDIMART_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MEDIMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MEDIMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MEDIMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MEDIMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MEDIMART_ARGON_KEY_LEN" default:"32"`
}

type TokenRateLimitConfig struct {
	Window     time.Duration `envconfig:"MEDIMART_TOKEN_RATE_LIMIT_WINDOW" default:"1m"`
	EmailLimit int           `envconfig:"MEDIMART_TOKEN_RATE_LIMIT_EMAIL_LIMIT" default:"10"`
	IPLimit    int           `envconfig:"MEDIMART_TOKEN_RATE_LIMIT_IP_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MEDIMART_AUTO_MIGRATE" default:"false"`
}

type StripeConfig struct {
	APIKey   string `envconfig:"MEDIMART_STRIPE_API_KEY"`
	Env      string `envconfig:"MEDIMART_STRIPE_ENV" default:"test"`
	Currency string `envconfig:"MEDIMART_STRIPE_CURRENCY" default:"usd"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type GCPConfig struct {
	ProjectID string `envconfig:"MEDIMART_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	PaymentTopic string `envconfig:"MEDIMART_PUBSUB_PAYMENT_TOPIC" default:"mm-payment-events"`
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
