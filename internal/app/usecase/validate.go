package usecase

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// DefaultScheme is prepended to input without scheme.
const DefaultScheme string = "https://"

// Client-side validation errors. They never reach the network.
var (
	ErrEmptyURL      = errors.New("empty URL")
	ErrInvalidURL    = errors.New("invalid URL")
	ErrInvalidScheme = errors.New("URL scheme is not http or https")
	ErrInvalidHost   = errors.New("URL host is empty or has no dot")

	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

var (
	schemeRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

	// mailto:, javascript: и т.п.; host:port сюда не попадает
	opaqueSchemeRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:[^/0-9]`)
)

// NormalizeURL trims input and prefixes https:// when it has no scheme.
// Input with a scheme, including one without "//", is returned as is.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || schemeRegexp.MatchString(rawURL) || opaqueSchemeRegexp.MatchString(rawURL) {
		return rawURL
	}
	return DefaultScheme + rawURL
}

// ValidateURL accepts absolute http(s) URLs whose host contains a dot.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return ErrEmptyURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURL
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return ErrInvalidScheme
	}
	host := u.Hostname()
	if host == "" || !strings.Contains(host, ".") {
		return ErrInvalidHost
	}
	return nil
}

// ShortURLLabel strips the leading scheme for display.
func ShortURLLabel(shortURL string) string {
	return schemeRegexp.ReplaceAllString(shortURL, "")
}

// ValidateCredentials checks auth form before any request is sent.
func ValidateCredentials(mode AuthMode, email, password, confirmPassword string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if mode == AuthModeRegister && password != confirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}
