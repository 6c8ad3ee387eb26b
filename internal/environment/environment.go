// Package environment holds backend endpoints of the client per deployment profile.
package environment

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Profile names.
const (
	Development string = "development"
	Docker      string = "docker"
	Production  string = "production"
)

var (
	ErrUnknownProfile    = errors.New("unknown environment profile")
	ErrInvalidBaseURL    = errors.New("invalid base URL")
	ErrInvalidAPIVersion = errors.New("invalid API version")
	ErrInvalidTokenPath  = errors.New("auth token path must start with /")
	ErrEmptyAuthClientID = errors.New("auth client id is empty")
)

// Environment is configuration surface of the backends.
type Environment struct {
	Production          bool   `env:"-" mapstructure:"-"`
	APIVersion          string `env:"API_VERSION" mapstructure:"api_version"`
	ShortenerAPIBaseURL string `env:"SHORTENER_API_BASE_URL" mapstructure:"shortener_api_base_url"`
	AuthAPIBaseURL      string `env:"AUTH_API_BASE_URL" mapstructure:"auth_api_base_url"`
	AuthTokenPath       string `env:"AUTH_TOKEN_PATH" mapstructure:"auth_token_path"`
	AuthClientID        string `env:"AUTH_CLIENT_ID" mapstructure:"auth_client_id"`
}

var profiles = map[string]Environment{
	Development: {
		Production:          false,
		APIVersion:          "1",
		ShortenerAPIBaseURL: "http://localhost:8000",
		AuthAPIBaseURL:      "http://localhost:8001",
		AuthTokenPath:       "/auth/login",
		AuthClientID:        "angular-web",
	},
	Docker: {
		Production:          true,
		APIVersion:          "1",
		ShortenerAPIBaseURL: "http://localhost:8000",
		AuthAPIBaseURL:      "http://localhost:8001",
		AuthTokenPath:       "/auth/login",
		AuthClientID:        "angular-web",
	},
	Production: {
		Production:          true,
		APIVersion:          "1",
		ShortenerAPIBaseURL: "http://localhost:8000",
		AuthAPIBaseURL:      "http://localhost:8001",
		AuthTokenPath:       "/auth/login",
		AuthClientID:        "angular-web",
	},
}

// Get returns defaults of the profile.
func Get(name string) (Environment, error) {
	env, ok := profiles[name]
	if !ok {
		return Environment{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return env, nil
}

// Names returns known profile names.
func Names() []string {
	return []string{Development, Docker, Production}
}

// ShortenerAPIURL returns versioned API root, e.g. http://localhost:8000/api/v1.
func (e Environment) ShortenerAPIURL() string {
	return strings.TrimRight(e.ShortenerAPIBaseURL, "/") + "/api/v" + e.APIVersion
}

// AuthTokenURL returns login endpoint.
func (e Environment) AuthTokenURL() string {
	return strings.TrimRight(e.AuthAPIBaseURL, "/") + e.AuthTokenPath
}

// AuthRegisterURL returns registration endpoint.
func (e Environment) AuthRegisterURL() string {
	return strings.TrimRight(e.AuthAPIBaseURL, "/") + "/auth/register"
}

// Validate checks the environment.
func (e Environment) Validate() error {
	for _, raw := range []string{e.ShortenerAPIBaseURL, e.AuthAPIBaseURL} {
		u, err := url.ParseRequestURI(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
		}
	}
	if _, err := strconv.ParseUint(e.APIVersion, 10, 32); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAPIVersion, e.APIVersion)
	}
	if !strings.HasPrefix(e.AuthTokenPath, "/") {
		return ErrInvalidTokenPath
	}
	if e.AuthClientID == "" {
		return ErrEmptyAuthClientID
	}
	return nil
}
