package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MisterMaks/rdrt-client/internal/environment"
	"github.com/MisterMaks/rdrt-client/internal/httpclient"
	"github.com/MisterMaks/rdrt-client/internal/logger"
	"github.com/MisterMaks/rdrt-client/internal/user"
	"go.uber.org/zap"
)

// Messages of AuthError when the backend gave no detail.
const (
	UnavailableMessage    string = "Auth service unavailable. Please try again later."
	LoginFailedMessage    string = "Login failed."
	RegisterFailedMessage string = "Registration failed."
	NoTokenMessage        string = "Auth service returned no access token."

	UsernameKey string = "username"
	PasswordKey string = "password"
	ClientIDKey string = "client_id"
	EmailKey    string = "email"
)

// AuthError is failed login or registration.
type AuthError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements error.
func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap returns the backend error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

func newAuthError(err error, fallback string) *AuthError {
	var apiErr *httpclient.APIError
	if !errors.As(err, &apiErr) {
		return &AuthError{Message: fallback, Err: err}
	}
	if apiErr.StatusCode == 0 {
		return &AuthError{StatusCode: 0, Message: UnavailableMessage, Err: err}
	}
	return &AuthError{
		StatusCode: apiErr.StatusCode,
		Message:    httpclient.Message(err, fallback),
		Err:        err,
	}
}

// TokenStoreInterface contains the necessary functions of the token store.
type TokenStoreInterface interface {
	Get() string
	Set(token string) error
	Clear() error
}

// AuthClient talks to the auth backend.
type AuthClient struct {
	HTTP   *httpclient.Client
	Tokens TokenStoreInterface

	TokenURL    string
	RegisterURL string
	ClientID    string
}

// NewAuthClient creates *AuthClient.
func NewAuthClient(env environment.Environment, httpClient *http.Client, tokens TokenStoreInterface) *AuthClient {
	return &AuthClient{
		HTTP:        httpclient.New(httpClient, nil),
		Tokens:      tokens,
		TokenURL:    env.AuthTokenURL(),
		RegisterURL: env.AuthRegisterURL(),
		ClientID:    env.AuthClientID,
	}
}

// Login exchanges credentials for an access token.
// The token is stored before Login returns.
func (ac *AuthClient) Login(ctx context.Context, email, password string) (*user.TokenResponse, error) {
	form := url.Values{}
	form.Set(UsernameKey, email)
	form.Set(PasswordKey, password)
	form.Set(ClientIDKey, ac.ClientID)

	var resp user.TokenResponse
	err := ac.HTTP.Do(ctx, httpclient.Request{
		Method:      http.MethodPost,
		URL:         ac.TokenURL,
		Body:        strings.NewReader(form.Encode()),
		ContentType: httpclient.FormURLEncodedKey,
	}, &resp)
	if err != nil {
		logger.GetContextLogger(ctx).Info("Login failed", zap.String(EmailKey, email), zap.Error(err))
		return nil, newAuthError(err, LoginFailedMessage)
	}
	if resp.AccessToken == "" {
		return nil, &AuthError{StatusCode: http.StatusOK, Message: NoTokenMessage}
	}

	if err := ac.Tokens.Set(resp.AccessToken); err != nil {
		return nil, fmt.Errorf("store access token: %w", err)
	}

	return &resp, nil
}

// Register creates an account. It does not log in.
func (ac *AuthClient) Register(ctx context.Context, email, password string) error {
	body, err := httpclient.JSONBody(user.RegisterRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	err = ac.HTTP.Do(ctx, httpclient.Request{
		Method:      http.MethodPost,
		URL:         ac.RegisterURL,
		Body:        body,
		ContentType: httpclient.ApplicationJSONKey,
	}, nil)
	if err != nil {
		logger.GetContextLogger(ctx).Info("Registration failed", zap.String(EmailKey, email), zap.Error(err))
		return newAuthError(err, RegisterFailedMessage)
	}
	return nil
}

// Logout forgets the token.
func (ac *AuthClient) Logout() error {
	return ac.Tokens.Clear()
}

// IsLoggedIn reports token presence.
func (ac *AuthClient) IsLoggedIn() bool {
	return ac.Tokens.Get() != ""
}
