package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/MisterMaks/rdrt-client/internal/app"
	"github.com/MisterMaks/rdrt-client/internal/logger"
	"github.com/MisterMaks/rdrt-client/internal/user"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Defaults of AppUsecase.
const (
	DefaultPageSize   int           = 5
	DefaultToastDelay time.Duration = 2 * time.Second

	URLKey  string = "url"
	CodeKey string = "code"
	PageKey string = "page"
)

var (
	ErrEmptyCode            = errors.New("empty short code")
	ErrNotLoggedIn          = errors.New("not logged in")
	ErrLinkNotFound         = errors.New("link is not on the current page")
	ErrNoResult             = errors.New("nothing shortened yet")
	ErrClipboardUnavailable = errors.New("clipboard is not available")
)

// Phase is state of the submission flow.
type Phase int

// Submission flow: idle -> validating -> submitting -> success|failed -> idle.
const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// AuthMode selects login or registration form.
type AuthMode int

// Auth dialog modes.
const (
	AuthModeLogin AuthMode = iota
	AuthModeRegister
)

// AuthForm is state of the auth dialog.
type AuthForm struct {
	Open            bool
	Mode            AuthMode
	Email           string
	Password        string
	ConfirmPassword string
	Loading         bool
	Error           string
}

// LinksState is the current page of the user's links.
type LinksState struct {
	Items    []app.LinkSummary
	Page     int
	PageSize int
	Total    int
	Loading  bool
	Error    string
}

// TotalPages returns count of pages, at least 1.
func (ls LinksState) TotalPages() int {
	return app.TotalPages(ls.Total, ls.PageSize)
}

// HasNext reports whether a next page exists.
func (ls LinksState) HasNext() bool {
	return ls.Page < ls.TotalPages()
}

// HasPrev reports whether a previous page exists.
func (ls LinksState) HasPrev() bool {
	return ls.Page > 1
}

// State is snapshot of everything the view renders.
// Slices and pointers in a snapshot are never mutated afterwards.
type State struct {
	URL     string
	Phase   Phase
	Loading bool
	Error   string
	Result  *app.ShortenResult
	ShowQR  bool

	LoggedIn          bool
	Auth              AuthForm
	LogoutConfirmOpen bool

	Links LinksState

	Stats        *app.LinkStats
	StatsLoading bool
	StatsError   string

	Toast string
}

//go:generate mockgen -source=usecase.go -destination=mocks/mocks.go -package=mocks

// ShortenerClientInterface contains the necessary functions of the shortener backend.
type ShortenerClientInterface interface {
	Shorten(ctx context.Context, rawURL string) (*app.ShortenResult, error)
	Stats(ctx context.Context, code string) (*app.LinkStats, error)
	MyURLs(ctx context.Context, page, pageSize int) (*app.LinkListPage, error)
	UpdateLink(ctx context.Context, code string, patch app.LinkPatch) (*app.LinkSummary, error)
}

// AuthClientInterface contains the necessary functions of the auth backend.
type AuthClientInterface interface {
	Login(ctx context.Context, email, password string) (*user.TokenResponse, error)
	Register(ctx context.Context, email, password string) error
}

// TokenStoreInterface contains the necessary functions of the token store.
type TokenStoreInterface interface {
	Get() string
	Clear() error
	IsExpired(leeway time.Duration) bool
	ExpiresAt() (time.Time, bool)
}

// ClipboardInterface copies text.
type ClipboardInterface interface {
	WriteText(text string) error
}

// Option configures AppUsecase.
type Option func(au *AppUsecase)

// WithClock sets clock for timers.
func WithClock(clk clockwork.Clock) Option {
	return func(au *AppUsecase) {
		au.Clock = clk
	}
}

// WithClipboard sets clipboard for CopyShortURL.
func WithClipboard(c ClipboardInterface) Option {
	return func(au *AppUsecase) {
		au.Clipboard = c
	}
}

// WithPageSize sets size of the links page.
func WithPageSize(pageSize int) Option {
	return func(au *AppUsecase) {
		if pageSize > 0 {
			au.PageSize = pageSize
		}
	}
}

// WithToastDelay sets toast auto-dismiss delay.
func WithToastDelay(d time.Duration) Option {
	return func(au *AppUsecase) {
		au.ToastDelay = d
	}
}

// AppUsecase is the application view-model.
type AppUsecase struct {
	Shortener ShortenerClientInterface
	Auth      AuthClientInterface
	Tokens    TokenStoreInterface
	Clipboard ClipboardInterface
	Clock     clockwork.Clock

	PageSize   int
	ToastDelay time.Duration

	// ctx is used for work started by timers and background refreshes.
	ctx context.Context

	mu          sync.Mutex
	state       State
	logoutTimer clockwork.Timer
	toastTimer  clockwork.Timer
	toastSeq    uint64
	subscribers []func(State)
	closed      bool

	wg sync.WaitGroup
}

// NewAppUsecase creates *AppUsecase and evaluates the stored session.
func NewAppUsecase(
	ctx context.Context,
	shortener ShortenerClientInterface,
	auth AuthClientInterface,
	tokens TokenStoreInterface,
	opts ...Option,
) *AppUsecase {
	au := &AppUsecase{
		Shortener:  shortener,
		Auth:       auth,
		Tokens:     tokens,
		Clock:      clockwork.NewRealClock(),
		PageSize:   DefaultPageSize,
		ToastDelay: DefaultToastDelay,
		ctx:        ctx,
	}
	for _, opt := range opts {
		opt(au)
	}
	au.state.Links = LinksState{Page: 1, PageSize: au.PageSize}

	au.evaluateSession()
	return au
}

// State returns current snapshot.
func (au *AppUsecase) State() State {
	au.mu.Lock()
	defer au.mu.Unlock()
	return au.state
}

// Subscribe registers f to be called with a snapshot after every change.
// Returned func unsubscribes.
func (au *AppUsecase) Subscribe(f func(State)) func() {
	au.mu.Lock()
	defer au.mu.Unlock()

	au.subscribers = append(au.subscribers, f)
	idx := len(au.subscribers) - 1
	return func() {
		au.mu.Lock()
		defer au.mu.Unlock()
		au.subscribers[idx] = nil
	}
}

// update applies f under lock and publishes the new snapshot.
func (au *AppUsecase) update(f func(s *State)) {
	au.mu.Lock()
	f(&au.state)
	snapshot := au.state
	subscribers := make([]func(State), len(au.subscribers))
	copy(subscribers, au.subscribers)
	au.mu.Unlock()

	for _, sub := range subscribers {
		if sub != nil {
			sub(snapshot)
		}
	}
}

// Wait blocks until background refreshes finish.
func (au *AppUsecase) Wait() {
	au.wg.Wait()
}

// Close stops timers and waits for background refreshes.
// No refresh is started after Close.
func (au *AppUsecase) Close() {
	au.mu.Lock()
	au.closed = true
	if au.logoutTimer != nil {
		au.logoutTimer.Stop()
		au.logoutTimer = nil
	}
	if au.toastTimer != nil {
		au.toastTimer.Stop()
		au.toastTimer = nil
	}
	au.mu.Unlock()

	au.wg.Wait()
}

func (au *AppUsecase) goLoadLinks(page int) {
	// Add под тем же мьютексом, что и closed: после Close новых Add нет
	au.mu.Lock()
	defer au.mu.Unlock()
	if au.closed {
		return
	}
	au.wg.Add(1)
	go func() {
		defer au.wg.Done()
		_ = au.LoadLinks(au.ctx, page)
	}()
}

// SetURL sets URL input.
func (au *AppUsecase) SetURL(rawURL string) {
	au.update(func(s *State) {
		s.URL = rawURL
		if s.Phase == PhaseSuccess || s.Phase == PhaseFailed {
			s.Phase = PhaseIdle
		}
	})
}

// Submit validates URL input and shortens it.
// Validation errors return without network call.
func (au *AppUsecase) Submit(ctx context.Context) error {
	ctxLogger := logger.GetContextLogger(ctx)

	var normalized string
	var validationErr error
	au.update(func(s *State) {
		input := strings.TrimSpace(s.URL)
		if input == "" {
			validationErr = ErrEmptyURL
		} else {
			s.Phase = PhaseValidating
			normalized = NormalizeURL(input)
			validationErr = ValidateURL(normalized)
		}
		if validationErr != nil {
			s.Phase = PhaseIdle
			s.Error = Message(validationErr, "")
			return
		}

		s.Phase = PhaseSubmitting
		s.Result = nil
		s.Error = ""
		s.Loading = true
		s.ShowQR = false
	})
	if validationErr != nil {
		return validationErr
	}

	result, err := au.Shortener.Shorten(ctx, normalized)
	if err != nil {
		ctxLogger.Warn("Failed to shorten URL", zap.String(URLKey, normalized), zap.Error(err))
		au.update(func(s *State) {
			s.Phase = PhaseFailed
			s.Loading = false
			s.Error = Message(err, ShortenFailedMessage)
		})
		return err
	}

	ctxLogger.Info("Short URL created",
		zap.String(URLKey, result.OriginalURL),
		zap.String(CodeKey, result.Code),
	)

	var loggedIn bool
	au.update(func(s *State) {
		s.Phase = PhaseSuccess
		s.Loading = false
		s.Result = result
		loggedIn = s.LoggedIn
	})

	if loggedIn {
		au.goLoadLinks(1)
	}
	return nil
}

// ShortURLLabel returns short URL of the last result without scheme.
func (au *AppUsecase) ShortURLLabel() string {
	s := au.State()
	if s.Result == nil {
		return ""
	}
	return ShortURLLabel(s.Result.ShortURL)
}

// ToggleQR shows or hides the QR panel of the last result.
func (au *AppUsecase) ToggleQR() bool {
	var shown bool
	au.update(func(s *State) {
		if s.Result == nil {
			s.ShowQR = false
			return
		}
		s.ShowQR = !s.ShowQR
		shown = s.ShowQR
	})
	return shown
}

// CopyShortURL copies short URL of the last result.
func (au *AppUsecase) CopyShortURL(ctx context.Context) error {
	s := au.State()
	if s.Result == nil || s.Result.ShortURL == "" {
		return ErrNoResult
	}
	if au.Clipboard == nil {
		au.Toast(ClipboardMissedMessage)
		return ErrClipboardUnavailable
	}
	if err := au.Clipboard.WriteText(s.Result.ShortURL); err != nil {
		logger.GetContextLogger(ctx).Warn("Failed to copy short URL", zap.Error(err))
		au.Toast(CopyFailedMessage)
		return err
	}
	au.Toast(CopiedMessage)
	return nil
}

// Toast shows message and hides it after ToastDelay.
// A newer toast replaces a pending one.
func (au *AppUsecase) Toast(msg string) {
	au.update(func(s *State) {
		au.toastLocked(s, msg)
	})
}

func (au *AppUsecase) toastLocked(s *State, msg string) {
	s.Toast = msg
	if au.toastTimer != nil {
		au.toastTimer.Stop()
	}
	au.toastSeq++
	if au.closed {
		return
	}
	seq := au.toastSeq
	au.toastTimer = au.Clock.AfterFunc(au.ToastDelay, func() {
		au.update(func(s *State) {
			if au.toastSeq == seq {
				s.Toast = ""
			}
		})
	})
}
