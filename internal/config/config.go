package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type RemoteConfig struct {
	Endpoint            string  `yaml:"endpoint"`
	ProjectID           string  `yaml:"project_id"`
	DatabaseID          string  `yaml:"database_id"`
	UsersCollectionID   string  `yaml:"users_collection_id"`
	CartCollectionID    string  `yaml:"cart_collection_id"`
	Timeout             string  `yaml:"timeout"`
	RateLimitPerSecond  float64 `yaml:"rate_limit_per_second"`
	RateBurst           int     `yaml:"rate_burst"`
}

type ConfigFile struct {
	App    AppConfig    `yaml:"app"`
	Remote RemoteConfig `yaml:"remote"`
}

type Config struct {
	Port              string
	GinMode           string
	RemoteEndpoint    string
	ProjectID         string
	DatabaseID        string
	UsersCollectionID string
	CartCollectionID  string
	RemoteTimeout     time.Duration
	RateLimit         float64
	RateBurst         int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("YAAKAI_CONFIG", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	timeout, err := time.ParseDuration(configFile.Remote.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid remote timeout: %w", err)
	}

	port := configFile.App.Port
	if v := os.Getenv("PORT"); v != "" {
		if port, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
	}

	cfg := &Config{
		Port:              strconv.Itoa(port),
		GinMode:           env("GIN_MODE", configFile.App.GinMode),
		RemoteEndpoint:    env("YAAKAI_REMOTE_ENDPOINT", configFile.Remote.Endpoint),
		ProjectID:         env("YAAKAI_PROJECT_ID", configFile.Remote.ProjectID),
		DatabaseID:        env("YAAKAI_DATABASE_ID", configFile.Remote.DatabaseID),
		UsersCollectionID: env("YAAKAI_USERS_COLLECTION_ID", configFile.Remote.UsersCollectionID),
		CartCollectionID:  env("YAAKAI_CART_COLLECTION_ID", configFile.Remote.CartCollectionID),
		RemoteTimeout:     timeout,
		RateLimit:         configFile.Remote.RateLimitPerSecond,
		RateBurst:         configFile.Remote.RateBurst,
	}

	if cfg.RemoteEndpoint == "" {
		return nil, fmt.Errorf("remote endpoint is required")
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("remote project id is required")
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf ConfigFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Defaults for fields the file may omit.
	if cf.App.Port == 0 {
		cf.App.Port = 8080
	}
	if cf.App.GinMode == "" {
		cf.App.GinMode = "release"
	}
	if cf.Remote.Timeout == "" {
		cf.Remote.Timeout = "15s"
	}
	if cf.Remote.RateLimitPerSecond == 0 {
		cf.Remote.RateLimitPerSecond = 10
	}
	if cf.Remote.RateBurst == 0 {
		cf.Remote.RateBurst = 20
	}

	return &cf, nil
}
