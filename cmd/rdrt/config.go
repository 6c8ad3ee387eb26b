package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/MisterMaks/rdrt-client/internal/environment"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default config values.
const (
	DefaultLogLevel  string = "INFO"
	DefaultQRDir     string = "."
	StorageDirName   string = ".rdrt"
	StorageFileName  string = "storage.jsonl"
	ProfileFlag      string = "env"
	APIVersionFlag   string = "api-version"
	ShortenerURLFlag string = "shortener-url"
	AuthURLFlag      string = "auth-url"
	TokenPathFlag    string = "token-path"
	ClientIDFlag     string = "client-id"
	StorageFlag      string = "storage"
	LogLevelFlag     string = "log-level"
	QRDirFlag        string = "qr-dir"
	ConfigFlag       string = "config"
	InMemoryStorage  string = "-"
)

var ErrEmptyLogLevel = errors.New("empty log level")

// Config is configuration of the terminal client.
type Config struct {
	// Профиль окружения: development, docker, production
	Profile string `env:"RDRT_ENV"`
	environment.Environment
	// Файл хранилища токена, "-" для хранения только в памяти
	StoragePath string `env:"TOKEN_STORAGE_PATH"`
	LogLevel    string `env:"LOG_LEVEL"`
	// Каталог для сохранения QR-карточек
	QRDir string `env:"QR_DIR"`
	// Путь к файлу конфигурации (JSON/YAML)
	Config string `env:"CONFIG"`
}

// DefaultStoragePath returns $HOME/.rdrt/storage.jsonl, empty if there is no home dir.
func DefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, StorageDirName, StorageFileName)
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("rdrt", pflag.ContinueOnError)
	fs.String(ProfileFlag, "", "environment profile: development, docker, production. env: RDRT_ENV")
	fs.String(APIVersionFlag, "", "shortener API version. env: API_VERSION")
	fs.String(ShortenerURLFlag, "", "shortener API base URL. env: SHORTENER_API_BASE_URL")
	fs.String(AuthURLFlag, "", "auth API base URL. env: AUTH_API_BASE_URL")
	fs.String(TokenPathFlag, "", "auth token path. env: AUTH_TOKEN_PATH")
	fs.String(ClientIDFlag, "", "auth client id. env: AUTH_CLIENT_ID")
	fs.String(StorageFlag, "", "token storage file, \"-\" keeps token in memory. env: TOKEN_STORAGE_PATH")
	fs.String(LogLevelFlag, DefaultLogLevel, "log level. env: LOG_LEVEL")
	fs.String(QRDirFlag, DefaultQRDir, "directory for QR cards. env: QR_DIR")
	fs.StringP(ConfigFlag, "c", "", "config file. env: CONFIG")
	return fs
}

// NewConfig reads config in order profile defaults < config file < flags < env.
func NewConfig(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	c := &Config{}
	// профиль и файл конфигурации нужны раньше остальных полей
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

	profile := c.Profile
	if profile == "" {
		profile = v.GetString(ProfileFlag)
	}
	if profile == "" {
		profile = environment.Development
	}
	defaults, err := environment.Get(profile)
	if err != nil {
		return nil, err
	}

	c.Profile = profile
	c.Environment = defaults
	c.APIVersion = getOrDefault(v, APIVersionFlag, defaults.APIVersion)
	c.ShortenerAPIBaseURL = getOrDefault(v, ShortenerURLFlag, defaults.ShortenerAPIBaseURL)
	c.AuthAPIBaseURL = getOrDefault(v, AuthURLFlag, defaults.AuthAPIBaseURL)
	c.AuthTokenPath = getOrDefault(v, TokenPathFlag, defaults.AuthTokenPath)
	c.AuthClientID = getOrDefault(v, ClientIDFlag, defaults.AuthClientID)
	c.StoragePath = getOrDefault(v, StorageFlag, DefaultStoragePath())
	c.LogLevel = v.GetString(LogLevelFlag)
	c.QRDir = v.GetString(QRDirFlag)
	c.Config = configFile

	if err = env.Parse(c); err != nil {
		return nil, err
	}
	if c.LogLevel == "" {
		return nil, ErrEmptyLogLevel
	}
	if err = c.Environment.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func getOrDefault(v *viper.Viper, key, defaultValue string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

// StorageFile returns path of the token storage, empty for in-memory storage.
func (c *Config) StorageFile() string {
	if c.StoragePath == InMemoryStorage {
		return ""
	}
	return c.StoragePath
}
