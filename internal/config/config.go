package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Firestore struct {
		Enabled         bool   `yaml:"enabled"`
		CredentialsFile string `yaml:"credentials_file"`
		Collection      string `yaml:"collection"`
	} `yaml:"firestore"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Discovery struct {
		InitialPoolSize int `yaml:"initial_pool_size"`
		PageSize        int `yaml:"page_size"`
		PromotedLimit   int `yaml:"promoted_limit"`
		DebounceMS      int `yaml:"debounce_ms"`
	} `yaml:"discovery"`
	Promotions struct {
		Cost          float64 `yaml:"cost"`
		SweepEnabled  bool    `yaml:"sweep_enabled"`
		SweepInterval int     `yaml:"sweep_interval_minutes"`
	} `yaml:"promotions"`
}

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}
	return cfg
}
