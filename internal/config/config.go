package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeWeb      = "web"
	ModeTerminal = "terminal"

	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	Mode       string `yaml:"mode" env:"TTT_MODE" env-default:"web"`
	HTTPPort   string `yaml:"http-port" env:"TTT_HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"TTT_SOCKET_PORT" env-default:"9091"`
	Storage    string `yaml:"storage" env:"TTT_STORAGE" env-default:"memory"`
	GameID     string `yaml:"game-id" env:"TTT_GAME_ID" env-default:"local"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"TTT_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TTT_REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
