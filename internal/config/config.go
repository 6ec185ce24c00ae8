package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Notify    NotifyConfig    `yaml:"notify"`
	// DevMode enables the mock-clock endpoints for testing day rollover
	// and statistics against arbitrary dates.
	DevMode bool `yaml:"dev_mode"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	// Driver selects the store backend: "sqlite" (default) or "postgres".
	Driver string `yaml:"driver"`
	// Path is the SQLite database file.
	Path string `yaml:"path"`
	// Postgres connection settings, used when driver is "postgres".
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	// APIKey protects mutating endpoints. Empty disables the check, which
	// is fine when the server is only reachable over the tailnet.
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type NotifyConfig struct {
	// NtfyURL is the base URL of an ntfy server; empty disables reminder
	// notifications entirely.
	NtfyURL string `yaml:"ntfy_url"`
	Topic   string `yaml:"topic"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix GTG_ and underscore-separated paths:
//
//	GTG_SERVER_HOST, GTG_SERVER_PORT,
//	GTG_DB_DRIVER, GTG_DB_PATH, GTG_DB_HOST, GTG_DB_PORT, GTG_DB_NAME,
//	GTG_DB_USER, GTG_DB_PASSWORD, GTG_DB_SSLMODE,
//	GTG_AUTH_API_KEY, GTG_NTFY_URL, GTG_NTFY_TOPIC, GTG_DEV_MODE
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GTG_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GTG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GTG_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("GTG_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("GTG_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("GTG_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("GTG_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("GTG_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("GTG_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("GTG_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("GTG_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("GTG_NTFY_URL"); v != "" {
		cfg.Notify.NtfyURL = v
	}
	if v := os.Getenv("GTG_NTFY_TOPIC"); v != "" {
		cfg.Notify.Topic = v
	}
	if v := os.Getenv("GTG_DEV_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DevMode = b
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "data/gtg.db"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required for the postgres driver")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required for the postgres driver")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required for the postgres driver")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required for the postgres driver")
		}
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Notify.NtfyURL != "" && c.Notify.Topic == "" {
		return fmt.Errorf("notify.topic is required when notify.ntfy_url is set")
	}
	return nil
}
