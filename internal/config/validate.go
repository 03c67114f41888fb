package config

import (
	"fmt"
	"strconv"
)

func (c Config) validate() error {
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("config: PORT must be a number in 1..65535, got %q", c.Port)
	}
	switch c.StoreDriver {
	case StoreJSON:
		if c.DBPath == "" {
			return fmt.Errorf("config: DB_PATH is required for the json store")
		}
	case StoreMySQL, StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the %s store", c.StoreDriver)
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}
