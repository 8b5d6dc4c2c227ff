package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	CoversDir                 string
	DatabaseBusyTimeout       time.Duration
	DatabaseConnectRetryCount int
	DatabaseConnectRetryDelay time.Duration
	DatabaseDebug             bool
	DatabaseFilePath          string
	DatabaseMaxRetries        int
	FrontendURL               string
	Hostname                  string
	ServerHost                string
	ServerPort                int
}

const configFileENV = "CONFIG_FILE"

// New loads config in layers: defaults, then an optional YAML file (path from
// CONFIG_FILE, default ./config.yaml), then environment variables. A .env
// file in the working directory is read into the environment first.
func New() (*Config, error) {
	_ = godotenv.Load()

	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		CoversDir:                 "./covers",
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        5,
		Hostname:                  hostname,
		ServerHost:                "127.0.0.1",
		ServerPort:                5000,
	}

	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = "./config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	// Environment variables override the file, mapped by lowercasing, e.g.
	// DATABASE_FILE_PATH -> database_file_path. Vars set to the empty string
	// are skipped so they can't clobber file-provided values.
	err = k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	applyString(k, "covers_dir", &cfg.CoversDir)
	applyDuration(k, "database_busy_timeout", &cfg.DatabaseBusyTimeout)
	applyInt(k, "database_connect_retry_count", &cfg.DatabaseConnectRetryCount)
	applyDuration(k, "database_connect_retry_delay", &cfg.DatabaseConnectRetryDelay)
	applyBool(k, "database_debug", &cfg.DatabaseDebug)
	applyString(k, "database_file_path", &cfg.DatabaseFilePath)
	applyInt(k, "database_max_retries", &cfg.DatabaseMaxRetries)
	applyString(k, "frontend_url", &cfg.FrontendURL)
	applyString(k, "server_host", &cfg.ServerHost)
	applyInt(k, "server_port", &cfg.ServerPort)

	if cfg.DatabaseFilePath == "" {
		return nil, errors.New("missing required config: DATABASE_FILE_PATH (database_file_path)")
	}

	return cfg, nil
}

func applyString(k *koanf.Koanf, key string, dst *string) {
	if v := k.String(key); v != "" {
		*dst = v
	}
}

func applyInt(k *koanf.Koanf, key string, dst *int) {
	// Empty string values (e.g. an unset-but-present env var) don't override.
	if k.String(key) != "" {
		*dst = k.Int(key)
	}
}

func applyBool(k *koanf.Koanf, key string, dst *bool) {
	if k.String(key) != "" {
		*dst = k.Bool(key)
	}
}

func applyDuration(k *koanf.Koanf, key string, dst *time.Duration) {
	if k.String(key) != "" {
		*dst = k.Duration(key)
	}
}
