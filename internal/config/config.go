package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Database is optional; without it /api/database answers 404.
	DBType string `yaml:"dbType"` // postgres | sqlite
	DBURL  string `yaml:"dbUrl"`

	LogLevel string `yaml:"logLevel"`
	SeqURL   string `yaml:"seqUrl"` // empty = console only
}

func def() Config {
	return Config{
		Port:     "8080",
		DBType:   "postgres",
		DBURL:    "",
		LogLevel: "info",
		SeqURL:   "",
	}
}

// loadFile reads YAML (and therefore JSON) over the defaults.
func loadFile(path string) (Config, error) {
	c := def()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return def(), err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// LoadWithPath reads the file at path if it exists, then applies
// SCHEMATA_* environment overrides. Flags are applied by the caller.
func LoadWithPath(path string) (Config, error) {
	cfg := def()

	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		c2, err := loadFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = c2
	}

	cfg.Port = getenv("SCHEMATA_PORT", cfg.Port)
	cfg.DBType = getenv("SCHEMATA_DB_TYPE", cfg.DBType)
	cfg.DBURL = getenv("SCHEMATA_DB_URL", cfg.DBURL)
	cfg.LogLevel = getenv("SCHEMATA_LOG_LEVEL", cfg.LogLevel)
	cfg.SeqURL = getenv("SCHEMATA_SEQ_URL", cfg.SeqURL)

	return cfg, nil
}

// Vars exposes cfg as interpolation variables for CLI flag defaults.
func (c Config) Vars() map[string]string {
	return map[string]string{
		"port":     c.Port,
		"dbType":   c.DBType,
		"dbUrl":    c.DBURL,
		"logLevel": c.LogLevel,
		"seqUrl":   c.SeqURL,
	}
}
