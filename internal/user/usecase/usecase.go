package usecase

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/MisterMaks/rdrt-client/internal/logger"
	"github.com/MisterMaks/rdrt-client/internal/user"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ExpClaimKey is name of the expiry claim.
const ExpClaimKey string = "exp"

// StorageInterface contains the necessary functions for durable client storage.
type StorageInterface interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Close() error
}

// TokenUsecase holds the current access token.
// Nil Storage means the environment can not persist anything: Set and Clear are no-ops.
type TokenUsecase struct {
	Storage StorageInterface
	Clock   clockwork.Clock

	mu          sync.RWMutex
	token       string
	subscribers []func(token string)
}

// NewTokenUsecase creates *TokenUsecase and reads the persisted token.
func NewTokenUsecase(storage StorageInterface, clk clockwork.Clock) *TokenUsecase {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	tu := &TokenUsecase{
		Storage: storage,
		Clock:   clk,
	}
	tu.token = tu.read()
	return tu
}

func (tu *TokenUsecase) read() string {
	if tu.Storage == nil {
		return ""
	}
	token, ok, err := tu.Storage.GetItem(user.StorageKey)
	if err != nil {
		logger.Log.Warn("Failed to read token from storage", zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// Set persists token and updates the in-memory value.
func (tu *TokenUsecase) Set(token string) error {
	if tu.Storage == nil {
		return nil
	}
	if err := tu.Storage.SetItem(user.StorageKey, token); err != nil {
		return err
	}

	tu.mu.Lock()
	tu.token = token
	subscribers := tu.subscribers
	tu.mu.Unlock()

	for _, f := range subscribers {
		f(token)
	}
	return nil
}

// Clear removes the persisted token.
func (tu *TokenUsecase) Clear() error {
	if tu.Storage == nil {
		return nil
	}
	if err := tu.Storage.RemoveItem(user.StorageKey); err != nil {
		return err
	}

	tu.mu.Lock()
	tu.token = ""
	subscribers := tu.subscribers
	tu.mu.Unlock()

	for _, f := range subscribers {
		f("")
	}
	return nil
}

// Get returns current token, empty string if there is none.
func (tu *TokenUsecase) Get() string {
	tu.mu.RLock()
	defer tu.mu.RUnlock()
	return tu.token
}

// Subscribe registers f to be called on every token change.
func (tu *TokenUsecase) Subscribe(f func(token string)) {
	tu.mu.Lock()
	defer tu.mu.Unlock()
	tu.subscribers = append(tu.subscribers, f)
}

// GetExpiryEpochSeconds returns the exp claim of the current token.
// Malformed tokens give false, never an error.
func (tu *TokenUsecase) GetExpiryEpochSeconds() (int64, bool) {
	token := tu.Get()
	if token == "" || tu.Storage == nil {
		return 0, false
	}
	return ParseExpiry(token)
}

// IsExpired reports whether exp exists and exp <= now + leeway.
// A token without a readable exp is treated as not expired.
func (tu *TokenUsecase) IsExpired(leeway time.Duration) bool {
	exp, ok := tu.GetExpiryEpochSeconds()
	if !ok || exp == 0 {
		return false
	}
	now := tu.Clock.Now().Unix()
	return exp <= now+int64(leeway/time.Second)
}

// ExpiresAt returns the expiry instant of the current token.
func (tu *TokenUsecase) ExpiresAt() (time.Time, bool) {
	exp, ok := tu.GetExpiryEpochSeconds()
	if !ok || exp == 0 {
		return time.Time{}, false
	}
	return time.Unix(exp, 0), true
}

// ParseExpiry decodes the payload segment of tokenString and reads the exp claim.
// Header and signature are not looked at: the client does not own the key.
func ParseExpiry(tokenString string) (int64, bool) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return 0, false
	}
	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return 0, false
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return 0, false
	}

	// encoding/json декодирует числа в float64
	exp, ok := claims[ExpClaimKey].(float64)
	if !ok {
		return 0, false
	}
	return int64(exp), true
}
