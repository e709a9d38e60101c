package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"RELEARN_LOG_LEVEL" env-default:"info"`
	Storage   string `yaml:"storage" env:"RELEARN_STORAGE" env-default:"file"`
	PolicyDir string `yaml:"policy-dir" env:"RELEARN_POLICY_DIR" env-default:"."`
	Workers   int    `yaml:"workers" env:"RELEARN_WORKERS" env-default:"0"`
	Redis     Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"RELEARN_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"RELEARN_REDIS_PORT" env-default:"6379"`
}

// MustLoad - reads the config file when it exists and falls back to
// environment variables and defaults otherwise, so the CLI runs without
// any config file present.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read environment config: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
