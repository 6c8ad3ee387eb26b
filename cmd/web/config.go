package main

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default config values.
const (
	DefaultPort     int    = 8080
	DefaultDistDir  string = "dist/url-shortener-ng/browser"
	DefaultLogLevel string = "INFO"

	PortFlag     string = "port"
	DistFlag     string = "dist"
	LogLevelFlag string = "log-level"
	ConfigFlag   string = "config"
)

var ErrInvalidPort = errors.New("invalid port")

// Config is configuration of the static server.
type Config struct {
	// Порт HTTP-сервера. Пример: 8080
	Port int `env:"PORT"`
	// Каталог собранного приложения, должен содержать index.html
	DistDir  string `env:"DIST_DIR"`
	LogLevel string `env:"LOG_LEVEL"`
	// Путь к файлу конфигурации (JSON/YAML)
	Config string `env:"CONFIG"`
}

// NewConfig reads config in order defaults < config file < flags < env.
func NewConfig(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("web", pflag.ContinueOnError)
	fs.Int(PortFlag, DefaultPort, "HTTP server port. env: PORT")
	fs.String(DistFlag, DefaultDistDir, "directory with compiled application. env: DIST_DIR")
	fs.String(LogLevelFlag, DefaultLogLevel, "log level. env: LOG_LEVEL")
	fs.StringP(ConfigFlag, "c", "", "config file. env: CONFIG")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	c := &Config{}
	// файл конфигурации может быть задан и флагом, и переменной окружения
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	configFile := c.Config
	if configFile == "" {
		configFile = v.GetString(ConfigFlag)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	c.Port = v.GetInt(PortFlag)
	c.DistDir = v.GetString(DistFlag)
	c.LogLevel = v.GetString(LogLevelFlag)
	c.Config = configFile

	if err := env.Parse(c); err != nil {
		return nil, err
	}

	if c.Port <= 0 || c.Port > 65535 {
		return nil, ErrInvalidPort
	}
	return c, nil
}
