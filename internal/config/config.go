package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Auth         AuthConfig         `yaml:"auth"`
	Mail         MailConfig         `yaml:"mail"`
	Matching     MatchingConfig     `yaml:"matching"`
	Notification NotificationConfig `yaml:"notification"`
	Redis        RedisConfig        `yaml:"redis"`
	Log          LogConfig          `yaml:"log"`
	CORS         CORSConfig         `yaml:"cors"`
}

// CORSConfig holds CORS settings.
//
// Booleans are phrased so that false is the default: cleanenv applies
// env-default to any zero-valued field, which would override an explicit
// false in YAML.
type CORSConfig struct {
	AllowedOrigins     string `yaml:"allowed_origins"     env:"CORS_ALLOWED_ORIGINS"     env-default:"*"`
	AllowedMethods     string `yaml:"allowed_methods"     env:"CORS_ALLOWED_METHODS"     env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders     string `yaml:"allowed_headers"     env:"CORS_ALLOWED_HEADERS"     env-default:"Authorization,Content-Type"`
	DisableCredentials bool   `yaml:"disable_credentials" env:"CORS_DISABLE_CREDENTIALS"`
	MaxAge             int    `yaml:"max_age"             env:"CORS_MAX_AGE"             env-default:"86400"`
}

// AllowCredentials reports whether Access-Control-Allow-Credentials is sent.
func (c CORSConfig) AllowCredentials() bool {
	return !c.DisableCredentials
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// RateLimit is requests per minute per client on the auth and email routes.
	RateLimit int `yaml:"rate_limit" env:"SERVER_RATE_LIMIT" env-default:"30"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"lostfound"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"1h"`
	BcryptCost     int           `yaml:"bcrypt_cost"      env:"AUTH_BCRYPT_COST"      env-default:"10"`
}

// MailConfig holds SMTP transport and delivery queue settings.
type MailConfig struct {
	Host        string        `yaml:"host"         env:"MAIL_HOST"         env-default:"smtp.gmail.com"`
	Port        int           `yaml:"port"         env:"MAIL_PORT"         env-default:"587"`
	Username    string        `yaml:"username"     env:"MAIL_USERNAME"`
	Password    string        `yaml:"password"     env:"MAIL_PASSWORD"`
	From        string        `yaml:"from"         env:"MAIL_FROM"`
	FromName    string        `yaml:"from_name"    env:"MAIL_FROM_NAME"    env-default:"Lost & Found"`
	QueueSize   int           `yaml:"queue_size"   env:"MAIL_QUEUE_SIZE"   env-default:"100"`
	SendTimeout time.Duration `yaml:"send_timeout" env:"MAIL_SEND_TIMEOUT" env-default:"30s"`
}

// Sender returns the envelope sender address, falling back to the SMTP username.
func (c MailConfig) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}

// MatchingConfig controls the found-item workflow.
type MatchingConfig struct {
	DisableAutoEmail bool `yaml:"disable_auto_email" env:"MATCHING_DISABLE_AUTO_EMAIL"`
	// EmailWaitTimeout caps how long the email endpoints wait for delivery.
	// It must stay below server.write_timeout. Zero means no cap.
	EmailWaitTimeout time.Duration `yaml:"email_wait_timeout" env:"MATCHING_EMAIL_WAIT_TIMEOUT" env-default:"45s"`
}

// AutoEmail reports whether a found report emails the owner without a
// separate client request.
func (c MatchingConfig) AutoEmail() bool {
	return !c.DisableAutoEmail
}

// NotificationConfig holds notification retention settings.
type NotificationConfig struct {
	ReadRetentionDays int `yaml:"read_retention_days" env:"NOTIFICATION_READ_RETENTION_DAYS" env-default:"90"`
}

// RedisConfig holds the optional cross-instance relay settings.
// An empty URL disables the relay.
type RedisConfig struct {
	URL     string `yaml:"url"     env:"REDIS_URL"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"lostfound:notifications"`
}

// Enabled reports whether the relay should be started.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
