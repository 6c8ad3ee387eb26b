package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/MisterMaks/rdrt-client/internal/app"
	"github.com/MisterMaks/rdrt-client/internal/app/usecase/mocks"
	"github.com/MisterMaks/rdrt-client/internal/httpclient"
	"github.com/MisterMaks/rdrt-client/internal/user"
	userRepo "github.com/MisterMaks/rdrt-client/internal/user/repo"
	userUsecase "github.com/MisterMaks/rdrt-client/internal/user/usecase"
	"github.com/golang-jwt/jwt/v4"
	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TestSecretKey string = "secretkey"
	TestEmail     string = "user@example.com"
	TestPassword  string = "secret"
	TestCode      string = "abc123"
	TestShortURL  string = "http://localhost:8000/abc123"
)

var TestNow = time.Unix(1_700_000_000, 0)

func mintToken(t *testing.T, exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	tokenString, err := token.SignedString([]byte(TestSecretKey))
	require.NoError(t, err)
	return tokenString
}

type testDeps struct {
	ctrl      *gomock.Controller
	shortener *mocks.MockShortenerClientInterface
	auth      *mocks.MockAuthClientInterface
	tokens    *userUsecase.TokenUsecase
	clock     *clockwork.FakeClock
}

func newTestDeps(t *testing.T, token string) *testDeps {
	ctrl := gomock.NewController(t)

	storage, err := userRepo.NewStorageInmem("")
	require.NoError(t, err)
	if token != "" {
		require.NoError(t, storage.SetItem(user.StorageKey, token))
	}

	clk := clockwork.NewFakeClockAt(TestNow)
	return &testDeps{
		ctrl:      ctrl,
		shortener: mocks.NewMockShortenerClientInterface(ctrl),
		auth:      mocks.NewMockAuthClientInterface(ctrl),
		tokens:    userUsecase.NewTokenUsecase(storage, clk),
		clock:     clk,
	}
}

func (d *testDeps) newAppUsecase(opts ...Option) *AppUsecase {
	opts = append([]Option{WithClock(d.clock)}, opts...)
	au := NewAppUsecase(context.Background(), d.shortener, d.auth, d.tokens, opts...)
	au.Wait()
	return au
}

// requireTimers waits until exactly n timers are armed on the fake clock.
func (d *testDeps) requireTimers(t *testing.T, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.clock.BlockUntilContext(ctx, n), "want %d armed timers", n)
}

// requireToast waits for timer callbacks, which the fake clock runs in their own goroutines.
func requireToast(t *testing.T, au *AppUsecase, toast string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return au.State().Toast == toast
	}, time.Second, time.Millisecond, "want toast %q", toast)
}

func testLinks(from, to int) []app.LinkSummary {
	links := []app.LinkSummary{}
	for i := from; i <= to; i++ {
		code := string(rune('a' + i))
		links = append(links, app.LinkSummary{Code: code, ShortURL: "http://localhost:8000/" + code})
	}
	return links
}

// toastRecorder counts distinct toasts published to subscribers.
type toastRecorder struct {
	mu     sync.Mutex
	last   string
	toasts []string
}

func (r *toastRecorder) observe(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Toast != r.last && s.Toast != "" {
		r.toasts = append(r.toasts, s.Toast)
	}
	r.last = s.Toast
}

func (r *toastRecorder) count(msg string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, toast := range r.toasts {
		if toast == msg {
			n++
		}
	}
	return n
}

func TestNewAppUsecase_LoggedOut(t *testing.T) {
	d := newTestDeps(t, "")
	au := d.newAppUsecase()

	s := au.State()
	assert.False(t, s.LoggedIn)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, LinksState{Page: 1, PageSize: DefaultPageSize}, s.Links)
	d.requireTimers(t, 0)
}

func TestNewAppUsecase_ExpiredToken(t *testing.T) {
	d := newTestDeps(t, mintToken(t, TestNow.Add(-time.Second)))
	au := d.newAppUsecase()

	s := au.State()
	assert.False(t, s.LoggedIn)
	assert.Empty(t, s.Toast)
	assert.Empty(t, d.tokens.Get())
}

func TestAppUsecase_Submit(t *testing.T) {
	d := newTestDeps(t, "")
	d.shortener.EXPECT().Shorten(gomock.Any(), "https://example.com").Return(&app.ShortenResult{
		Code:        TestCode,
		ShortURL:    TestShortURL,
		OriginalURL: "https://example.com",
	}, nil)

	au := d.newAppUsecase()
	au.SetURL("example.com")
	require.NoError(t, au.Submit(context.Background()))
	au.Wait()

	s := au.State()
	assert.Equal(t, PhaseSuccess, s.Phase)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
	require.NotNil(t, s.Result)
	assert.Equal(t, TestShortURL, s.Result.ShortURL)
	assert.Equal(t, "localhost:8000/abc123", au.ShortURLLabel())

	assert.True(t, au.ToggleQR())
	assert.False(t, au.ToggleQR())
}

func TestAppUsecase_SubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		err     error
		message string
	}{
		{name: "empty", input: "  ", err: ErrEmptyURL, message: "Please enter a URL."},
		{name: "no dot", input: "localhost", err: ErrInvalidHost, message: validationMessages[ErrInvalidHost]},
		{name: "scheme", input: "ftp://example.com", err: ErrInvalidScheme, message: validationMessages[ErrInvalidScheme]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// ни одного вызова Shorten не ожидается
			d := newTestDeps(t, "")
			au := d.newAppUsecase()

			au.SetURL(tt.input)
			err := au.Submit(context.Background())
			assert.ErrorIs(t, err, tt.err)

			s := au.State()
			assert.Equal(t, PhaseIdle, s.Phase)
			assert.Equal(t, tt.message, s.Error)
			assert.Nil(t, s.Result)
		})
	}
}

func TestAppUsecase_SubmitFailed(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "backend detail",
			err:     &httpclient.APIError{StatusCode: http.StatusBadRequest, Detail: "Invalid URL"},
			message: "Invalid URL",
		},
		{
			name:    "unreachable",
			err:     &httpclient.APIError{Err: errors.New("connection refused")},
			message: ShortenFailedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t, "")
			d.shortener.EXPECT().Shorten(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			au := d.newAppUsecase()
			au.SetURL("https://example.com")
			require.Error(t, au.Submit(context.Background()))

			s := au.State()
			assert.Equal(t, PhaseFailed, s.Phase)
			assert.False(t, s.Loading)
			assert.Equal(t, tt.message, s.Error)

			au.SetURL("https://example.org")
			assert.Equal(t, PhaseIdle, au.State().Phase)
		})
	}
}

func TestAppUsecase_SubmitLoggedInRefreshesLinks(t *testing.T) {
	d := newTestDeps(t, mintToken(t, TestNow.Add(time.Hour)))
	d.shortener.EXPECT().MyURLs(gomock.Any(), 1, DefaultPageSize).Return(&app.LinkListPage{
		Items: []app.LinkSummary{}, Page: 1, PageSize: DefaultPageSize,
	}, nil)

	au := d.newAppUsecase()
	require.True(t, au.State().LoggedIn)

	d.shortener.EXPECT().Shorten(gomock.Any(), "https://example.com").Return(&app.ShortenResult{Code: TestCode, ShortURL: TestShortURL}, nil)
	d.shortener.EXPECT().MyURLs(gomock.Any(), 1, DefaultPageSize).Return(&app.LinkListPage{
		Items: testLinks(0, 0), Page: 1, PageSize: DefaultPageSize, Total: 1,
	}, nil)

	au.SetURL("example.com")
	require.NoError(t, au.Submit(context.Background()))
	au.Wait()

	assert.Len(t, au.State().Links.Items, 1)
}

func TestAppUsecase_Pagination(t *testing.T) {
	const total = 12
	d := newTestDeps(t, mintToken(t, TestNow.Add(time.Hour)))
	for page, items := range map[int][]app.LinkSummary{
		1: testLinks(0, 4),
		2: testLinks(5, 9),
		3: testLinks(10, 11),
	} {
		d.shortener.EXPECT().MyURLs(gomock.Any(), page, DefaultPageSize).Return(&app.LinkListPage{
			Items: items, Page: page, PageSize: DefaultPageSize, Total: total,
		}, nil).AnyTimes()
	}

	au := d.newAppUsecase()
	ctx := context.Background()

	links := au.State().Links
	assert.Equal(t, 1, links.Page)
	assert.Equal(t, 3, links.TotalPages())
	assert.False(t, links.HasPrev())
	assert.True(t, links.HasNext())

	require.NoError(t, au.PrevPage(ctx))
	assert.Equal(t, 1, au.State().Links.Page)

	require.NoError(t, au.NextPage(ctx))
	require.NoError(t, au.NextPage(ctx))
	links = au.State().Links
	assert.Equal(t, 3, links.Page)
	assert.Len(t, links.Items, 2)
	assert.False(t, links.HasNext())

	// на последней странице запроса нет
	require.NoError(t, au.NextPage(ctx))
	assert.Equal(t, 3, au.State().Links.Page)

	require.NoError(t, au.PrevPage(ctx))
	assert.Equal(t, 2, au.State().Links.Page)
}

func TestAppUsecase_LoadLinks(t *testing.T) {
	t.Run("logged out", func(t *testing.T) {
		d := newTestDeps(t, "")
		au := d.newAppUsecase()
		assert.ErrorIs(t, au.LoadLinks(context.Background(), 1), ErrNotLoggedIn)
	})

	t.Run("error", func(t *testing.T) {
		d := newTestDeps(t, mintToken(t, TestNow.Add(time.Hour)))
		d.shortener.EXPECT().MyURLs(gomock.Any(), 1, DefaultPageSize).Return(nil, &httpclient.APIError{StatusCode: http.StatusInternalServerError})

		au := d.newAppUsecase()
		links := au.State().Links
		assert.False(t, links.Loading)
		assert.Equal(t, LinksFailedMessage, links.Error)
	})
}

func TestAppUsecase_TotalPages(t *testing.T) {
	tests := []struct {
		total, pageSize, want int
	}{
		{total: 0, pageSize: 5, want: 1},
		{total: 5, pageSize: 5, want: 1},
		{total: 6, pageSize: 5, want: 2},
		{total: 12, pageSize: 5, want: 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LinksState{Total: tt.total, PageSize: tt.pageSize}.TotalPages())
	}
}

func TestAppUsecase_ExpiryTimer(t *testing.T) {
	d := newTestDeps(t, mintToken(t, TestNow.Add(time.Minute)))
	d.shortener.EXPECT().MyURLs(gomock.Any(), 1, DefaultPageSize).Return(&app.LinkListPage{
		Items: testLinks(0, 1), Page: 1, PageSize: DefaultPageSize, Total: 2,
	}, nil)

	au := d.newAppUsecase()
	recorder := &toastRecorder{}
	au.Subscribe(recorder.observe)

	require.True(t, au.State().LoggedIn)
	assert.Len(t, au.State().Links.Items, 2)
	d.requireTimers(t, 1)

	d.clock.Advance(59 * time.Second)
	assert.True(t, au.State().LoggedIn)

	d.clock.Advance(time.Second)
	requireToast(t, au, SessionExpiredMessage)
	au.Wait()

	s := au.State()
	assert.False(t, s.LoggedIn)
	assert.Empty(t, s.Links.Items)
	assert.Equal(t, SessionExpiredMessage, s.Toast)
	assert.Empty(t, d.tokens.Get())
	require.Eventually(t, func() bool {
		return recorder.count(SessionExpiredMessage) == 1
	}, time.Second, time.Millisecond)

	d.clock.Advance(DefaultToastDelay)
	requireToast(t, au, "")
	assert.Equal(t, 1, recorder.count(SessionExpiredMessage))
	d.requireTimers(t, 0)
}

func TestAppUsecase_SubmitAuth(t *testing.T) {
	t.Run("register mismatch", func(t *testing.T) {
		d := newTestDeps(t, "")
		au := d.newAppUsecase()

		au.OpenAuth(AuthModeRegister)
		au.SetEmail(TestEmail)
		au.SetPassword(TestPassword)
		au.SetConfirmPassword("other")

		assert.ErrorIs(t, au.SubmitAuth(context.Background()), ErrPasswordMismatch)
		s := au.State()
		assert.True(t, s.Auth.Open)
		assert.Equal(t, "Passwords do not match.", s.Auth.Error)
		assert.False(t, s.LoggedIn)
	})

	t.Run("register chains login", func(t *testing.T) {
		d := newTestDeps(t, "")
		token := mintToken(t, TestNow.Add(time.Hour))

		gomock.InOrder(
			d.auth.EXPECT().Register(gomock.Any(), TestEmail, TestPassword).Return(nil),
			d.auth.EXPECT().Login(gomock.Any(), TestEmail, TestPassword).DoAndReturn(
				func(_ context.Context, _, _ string) (*user.TokenResponse, error) {
					require.NoError(t, d.tokens.Set(token))
					return &user.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
				}),
		)
		d.shortener.EXPECT().MyURLs(gomock.Any(), 1, DefaultPageSize).Return(&app.LinkListPage{
			Items: []app.LinkSummary{}, Page: 1, PageSize: DefaultPageSize,
		}, nil)

		au := d.newAppUsecase()
		au.OpenAuth(AuthModeLogin)
		au.SetAuthMode(AuthModeRegister)
		au.SetEmail(TestEmail)
		au.SetPassword(TestPassword)
		au.SetConfirmPassword(TestPassword)

		require.NoError(t, au.SubmitAuth(context.Background()))
		au.Wait()

		s := au.State()
		assert.True(t, s.LoggedIn)
		assert.False(t, s.Auth.Open)
		assert.Empty(t, s.Auth.Password)
		assert.Equal(t, AccountCreatedMessage, s.Toast)
		d.requireTimers(t, 2)
	})

	t.Run("login failed", func(t *testing.T) {
		d := newTestDeps(t, "")
		d.auth.EXPECT().Login(gomock.Any(), TestEmail, TestPassword).Return(nil, errors.New("boom"))

		au := d.newAppUsecase()
		au.OpenAuth(AuthModeLogin)
		au.SetEmail(TestEmail)
		au.SetPassword(TestPassword)

		require.Error(t, au.SubmitAuth(context.Background()))
		s := au.State()
		assert.True(t, s.Auth.Open)
		assert.False(t, s.Auth.Loading)
		assert.Equal(t, AuthFailedMessage, s.Auth.Error)
	})
}

func TestAppUsecase_Logout(t *testing.T) {
	d := newTestDeps(t, mintToken(t, TestNow.Add(time.Hour)))
	d.shortener.EXPECT().MyURLs(gomock.Any(), 1, DefaultPageSize).Return(&app.LinkListPage{
		Items: testLinks(0, 0), Page: 1, PageSize: DefaultPageSize, Total: 1,
	}, nil)

	au := d.newAppUsecase()

	au.RequestLogout()
	assert.True(t, au.State().LogoutConfirmOpen)
	au.CancelLogout()
	assert.False(t, au.State().LogoutConfirmOpen)
	assert.True(t, au.State().LoggedIn)

	au.RequestLogout()
	require.NoError(t, au.ConfirmLogout())

	s := au.State()
	assert.False(t, s.LoggedIn)
	assert.False(t, s.LogoutConfirmOpen)
	assert.Empty(t, s.Links.Items)
	assert.Equal(t, LoggedOutMessage, s.Toast)
	assert.Empty(t, d.tokens.Get())

	// таймер сессии снят, остался только таймер уведомления
	d.requireTimers(t, 1)
}

func TestAppUsecase_Toast(t *testing.T) {
	d := newTestDeps(t, "")
	au := d.newAppUsecase()

	au.Toast("first")
	d.requireTimers(t, 1)
	d.clock.Advance(time.Second)
	au.Toast("second")
	assert.Equal(t, "second", au.State().Toast)
	d.requireTimers(t, 1)

	// таймер первого уведомления остановлен
	d.clock.Advance(time.Second)
	d.requireTimers(t, 1)
	assert.Equal(t, "second", au.State().Toast)

	d.clock.Advance(time.Second)
	requireToast(t, au, "")
	d.requireTimers(t, 0)
}

func TestAppUsecase_CopyShortURL(t *testing.T) {
	d := newTestDeps(t, "")
	d.shortener.EXPECT().Shorten(gomock.Any(), gomock.Any()).Return(&app.ShortenResult{Code: TestCode, ShortURL: TestShortURL}, nil)
	clipboard := mocks.NewMockClipboardInterface(d.ctrl)

	au := d.newAppUsecase(WithClipboard(clipboard))
	ctx := context.Background()

	assert.ErrorIs(t, au.CopyShortURL(ctx), ErrNoResult)

	au.SetURL("example.com")
	require.NoError(t, au.Submit(ctx))

	clipboard.EXPECT().WriteText(TestShortURL).Return(nil)
	require.NoError(t, au.CopyShortURL(ctx))
	assert.Equal(t, CopiedMessage, au.State().Toast)

	clipboard.EXPECT().WriteText(TestShortURL).Return(errors.New("no clipboard"))
	require.Error(t, au.CopyShortURL(ctx))
	assert.Equal(t, CopyFailedMessage, au.State().Toast)

	au.Clipboard = nil
	assert.ErrorIs(t, au.CopyShortURL(ctx), ErrClipboardUnavailable)
	assert.Equal(t, ClipboardMissedMessage, au.State().Toast)
}

func TestAppUsecase_LoadStats(t *testing.T) {
	d := newTestDeps(t, "")
	stats := &app.LinkStats{Code: TestCode, Clicks: 7}
	gomock.InOrder(
		d.shortener.EXPECT().Stats(gomock.Any(), TestCode).Return(stats, nil),
		d.shortener.EXPECT().Stats(gomock.Any(), "missing").Return(nil, &httpclient.APIError{StatusCode: http.StatusNotFound, Detail: "Not found"}),
	)

	au := d.newAppUsecase()
	ctx := context.Background()

	assert.ErrorIs(t, au.LoadStats(ctx, " "), ErrEmptyCode)

	require.NoError(t, au.LoadStats(ctx, TestCode))
	s := au.State()
	assert.Equal(t, stats, s.Stats)
	assert.Empty(t, s.StatsError)

	require.Error(t, au.LoadStats(ctx, "missing"))
	s = au.State()
	assert.False(t, s.StatsLoading)
	assert.Equal(t, "Not found", s.StatsError)
}

func TestAppUsecase_ToggleActive(t *testing.T) {
	d := newTestDeps(t, mintToken(t, TestNow.Add(time.Hour)))
	links := testLinks(0, 1)
	d.shortener.EXPECT().MyURLs(gomock.Any(), 1, DefaultPageSize).Return(&app.LinkListPage{
		Items: links, Page: 1, PageSize: DefaultPageSize, Total: 2,
	}, nil)

	au := d.newAppUsecase()
	ctx := context.Background()
	code := links[0].Code

	assert.ErrorIs(t, au.ToggleActive(ctx, "missing"), ErrLinkNotFound)

	inactive := false
	var optimistic *bool
	d.shortener.EXPECT().UpdateLink(gomock.Any(), code, app.LinkPatch{IsActive: &inactive}).DoAndReturn(
		func(_ context.Context, code string, _ app.LinkPatch) (*app.LinkSummary, error) {
			optimistic = au.State().Links.Items[0].IsActive
			updated := links[0]
			updated.IsActive = &inactive
			return &updated, nil
		})
	require.NoError(t, au.ToggleActive(ctx, code))
	require.NotNil(t, optimistic)
	assert.False(t, *optimistic)
	require.NotNil(t, au.State().Links.Items[0].IsActive)
	assert.False(t, *au.State().Links.Items[0].IsActive)

	// исходный срез не меняется
	assert.Nil(t, links[0].IsActive)

	d.shortener.EXPECT().UpdateLink(gomock.Any(), code, gomock.Any()).Return(nil, &httpclient.APIError{StatusCode: http.StatusInternalServerError})
	require.Error(t, au.ToggleActive(ctx, code))
	s := au.State()
	require.NotNil(t, s.Links.Items[0].IsActive)
	assert.False(t, *s.Links.Items[0].IsActive)
	assert.Equal(t, UpdateFailedMessage, s.Toast)
}

func TestAppUsecase_SetExpiry(t *testing.T) {
	d := newTestDeps(t, mintToken(t, TestNow.Add(time.Hour)))
	links := testLinks(0, 0)
	d.shortener.EXPECT().MyURLs(gomock.Any(), 1, DefaultPageSize).Return(&app.LinkListPage{
		Items: links, Page: 1, PageSize: DefaultPageSize, Total: 1,
	}, nil)

	au := d.newAppUsecase()
	ctx := context.Background()
	code := links[0].Code
	expiresAt := TestNow.Add(24 * time.Hour)

	d.shortener.EXPECT().UpdateLink(gomock.Any(), code, app.LinkPatch{ExpiresAt: &expiresAt}).DoAndReturn(
		func(_ context.Context, _ string, patch app.LinkPatch) (*app.LinkSummary, error) {
			updated := links[0]
			updated.ExpiresAt = app.NewTimestamp(*patch.ExpiresAt)
			return &updated, nil
		})
	require.NoError(t, au.SetExpiry(ctx, code, &expiresAt))
	require.NotNil(t, au.State().Links.Items[0].ExpiresAt)
	assert.True(t, expiresAt.Equal(au.State().Links.Items[0].ExpiresAt.Time))

	d.shortener.EXPECT().UpdateLink(gomock.Any(), code, app.LinkPatch{ClearExpiresAt: true}).Return(&links[0], nil)
	require.NoError(t, au.SetExpiry(ctx, code, nil))
	assert.Nil(t, au.State().Links.Items[0].ExpiresAt)
}

func TestAppUsecase_Close(t *testing.T) {
	d := newTestDeps(t, mintToken(t, TestNow.Add(time.Hour)))
	// ровно одна загрузка: при создании
	d.shortener.EXPECT().MyURLs(gomock.Any(), 1, DefaultPageSize).Return(&app.LinkListPage{
		Items: []app.LinkSummary{}, Page: 1, PageSize: DefaultPageSize,
	}, nil).Times(1)

	au := d.newAppUsecase()
	d.requireTimers(t, 1)

	au.Close()
	d.requireTimers(t, 0)

	// сессия пересчитывается так же, как из сработавшего таймера
	au.evaluateSession()
	au.Toast("after close")
	au.Wait()

	s := au.State()
	assert.True(t, s.LoggedIn)
	assert.Equal(t, "after close", s.Toast)
	d.requireTimers(t, 0)
}

func TestAppUsecase_ExpiredSessionClearFailed(t *testing.T) {
	d := newTestDeps(t, "")
	tokens := mocks.NewMockTokenStoreInterface(d.ctrl)
	gomock.InOrder(
		tokens.EXPECT().Get().Return("token"),
		tokens.EXPECT().IsExpired(time.Duration(0)).Return(true),
		tokens.EXPECT().Clear().Return(errors.New("disk full")),
	)

	au := NewAppUsecase(context.Background(), d.shortener, d.auth, tokens, WithClock(d.clock))
	au.Wait()

	s := au.State()
	assert.False(t, s.LoggedIn)
	assert.Empty(t, s.Toast)
	d.requireTimers(t, 0)
}
