package usecase

import (
	"errors"

	"github.com/MisterMaks/rdrt-client/internal/httpclient"
	userClient "github.com/MisterMaks/rdrt-client/internal/user/client"
)

// Texts shown to the user.
const (
	ShortenFailedMessage   string = "Failed to shorten URL. Please try again."
	LinksFailedMessage     string = "Failed to load your links."
	StatsFailedMessage     string = "Failed to load stats."
	UpdateFailedMessage    string = "Failed to update link."
	AuthFailedMessage      string = "Something went wrong. Please try again."
	SessionExpiredMessage  string = "Session expired. Please log in again."
	LoggedInMessage        string = "Logged in"
	AccountCreatedMessage  string = "Account created"
	LoggedOutMessage       string = "Logged out"
	CopiedMessage          string = "Copied!"
	CopyFailedMessage      string = "Failed to copy."
	ClipboardMissedMessage string = "Clipboard not available"
)

var validationMessages = map[error]string{
	ErrEmptyURL:         "Please enter a URL.",
	ErrInvalidURL:       "Please enter a valid URL.",
	ErrInvalidScheme:    "Only http and https links can be shortened.",
	ErrInvalidHost:      "Please enter a URL with a valid domain, e.g. example.com.",
	ErrEmailRequired:    "Please enter your email.",
	ErrPasswordRequired: "Please enter your password.",
	ErrPasswordMismatch: "Passwords do not match.",
	ErrEmptyCode:        "Please enter a short code.",
}

// Message returns text for the user describing err.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	for target, msg := range validationMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	var authErr *userClient.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return httpclient.Message(err, fallback)
}
