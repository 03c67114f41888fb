package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Store drivers.
const (
	StoreJSON     = "json"
	StoreMySQL    = "mysql"
	StorePostgres = "postgres"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"4000"`
	DBPath      string `envconfig:"DB_PATH" default:"db.json"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"json"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`

	ServiceName string `envconfig:"SERVICE_NAME" default:"hotelbooking-api"`
	OTelStdout  bool   `envconfig:"OTEL_STDOUT" default:"false"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

// ServerURL is the base URL advertised in the API description.
func (c Config) ServerURL() string { return "http://localhost:" + c.Port }

// AllowedOrigins splits CORS_ORIGINS; "*" means any origin.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
