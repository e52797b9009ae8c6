package pgengine

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by LoadConfig.
const EnvPrefix = "STRINGQL_"

/*
Config holds PostgreSQL connection parameters.

Either DSN or the discrete Host, User and Database fields must be set.
DSN can be a libpq keyword string ("host=localhost dbname=test") or a
postgres:// URL; when set, the discrete fields are ignored.
*/
type Config struct {
	DSN      string `koanf:"dsn"`
	Host     string `koanf:"host" validate:"required_without=DSN"`
	Port     int    `koanf:"port" validate:"omitempty,min=1,max=65535"`
	User     string `koanf:"user" validate:"required_without=DSN"`
	Password string `koanf:"password"`
	Database string `koanf:"database" validate:"required_without=DSN"`
	SSLMode  string `koanf:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	// Schema is created if missing and set as search_path by Connect
	// when no schema is passed explicitly.
	Schema string `koanf:"schema"`
	// LogLevel is the pgx trace log level: trace, debug, info, warn, error or none.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=trace debug info warn error none"`
}

/*
LoadConfig reads configuration from STRINGQL_ environment variables.

	STRINGQL_DSN, STRINGQL_HOST, STRINGQL_PORT, STRINGQL_USER,
	STRINGQL_PASSWORD, STRINGQL_DATABASE, STRINGQL_SSL_MODE,
	STRINGQL_SCHEMA, STRINGQL_LOG_LEVEL
*/
func LoadConfig() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	cfg := &Config{}
	if err = k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that enough connection parameters are present.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid database config: %w", err)
	}
	return nil
}

// ConnString returns DSN if set, or a postgres:// URL built from the discrete fields.
func (c *Config) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	port := c.Port
	if port == 0 {
		port = 5432
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(port)),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	if c.Password == "" {
		u.User = url.User(c.User)
	}
	return u.String()
}
