package config

import (
	"fmt"
	"os"

	"github.com/go-core-fx/config"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`

	OpenAPI openAPIConfig `koanf:"openapi"`
}

type openAPIConfig struct {
	Enabled    bool   `koanf:"enabled"`
	PublicHost string `koanf:"public_host"`
	PublicPath string `koanf:"public_path"`
}

type storageConfig struct {
	Driver        string `koanf:"driver"`
	JSONPath      string `koanf:"json_path"`
	DataDir       string `koanf:"data_dir"`
	BadgerVerbose bool   `koanf:"badger_verbose"`
	PostgresDSN   string `koanf:"postgres_dsn"`
}

type redisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type queueConfig struct {
	Driver  string      `koanf:"driver"`
	Workers int         `koanf:"workers"`
	Buffer  int         `koanf:"buffer"`
	Key     string      `koanf:"key"`
	Redis   redisConfig `koanf:"redis"`
}

type boundsConfig struct {
	Min  int    `koanf:"min"`
	Max  int    `koanf:"max"`
	Unit string `koanf:"unit"`
}

type membershipsConfig struct {
	ActingUserID int64                   `koanf:"acting_user_id"`
	Types        []string                `koanf:"types"`
	Bounds       map[string]boundsConfig `koanf:"bounds"`
}

type seedUserConfig struct {
	Username  string `koanf:"username"`
	Email     string `koanf:"email"`
	FirstName string `koanf:"first_name"`
	LastName  string `koanf:"last_name"`
	Role      string `koanf:"role"`
}

type usersConfig struct {
	Seed []seedUserConfig `koanf:"seed"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage     storageConfig     `koanf:"storage"`
	Queue       queueConfig       `koanf:"queue"`
	Memberships membershipsConfig `koanf:"memberships"`
	Users       usersConfig       `koanf:"users"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
			OpenAPI: openAPIConfig{
				Enabled: true,
			},
		},

		Storage: storageConfig{
			Driver:   "json",
			JSONPath: "data.json",
			DataDir:  "./data",
		},

		Queue: queueConfig{
			Driver:  "memory",
			Workers: 2,
			Buffer:  100,
			Key:     "memberships:export:v1",
			Redis: redisConfig{
				Address: "localhost:6379",
			},
		},

		Memberships: membershipsConfig{
			ActingUserID: 1,
			Types:        []string{"Gold Plan", "Platinum Plan", "Silver Plan"},
		},

		Users: usersConfig{
			Seed: []seedUserConfig{
				{Username: "admin", Email: "admin@example.com", FirstName: "Admin", LastName: "User", Role: "admin"},
			},
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
