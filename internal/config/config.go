package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env-default:"8080"`
	StaticDir  string `yaml:"static-dir" env-default:"./web"`
	Bot        Bot    `yaml:"bot"`
}

type Bot struct {
	DefaultDifficulty string        `yaml:"default-difficulty" env-default:"medium"`
	SearchTimeout     time.Duration `yaml:"search-timeout" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}
