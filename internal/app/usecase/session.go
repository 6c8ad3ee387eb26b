package usecase

import (
	"context"

	"github.com/MisterMaks/rdrt-client/internal/logger"
	"go.uber.org/zap"
)

// evaluateSession syncs LoggedIn with the token store.
// A valid session loads page 1 of links and arms the logout timer at the token's expiry.
func (au *AppUsecase) evaluateSession() {
	au.evaluate(false)
}

func (au *AppUsecase) evaluate(fromTimer bool) {
	token := ""
	if au.Tokens != nil {
		token = au.Tokens.Get()
	}

	switch {
	case token == "":
		au.update(func(s *State) {
			au.stopLogoutTimerLocked()
			au.resetSessionLocked(s)
		})
		return

	case au.Tokens.IsExpired(0):
		if err := au.Tokens.Clear(); err != nil {
			logger.Log.Warn("Failed to clear expired token", zap.Error(err))
		}
		logger.Log.Info("Session expired")
		au.update(func(s *State) {
			au.stopLogoutTimerLocked()
			au.resetSessionLocked(s)
			if fromTimer {
				au.toastLocked(s, SessionExpiredMessage)
			}
		})
		return
	}

	expiresAt, hasExpiry := au.Tokens.ExpiresAt()
	au.update(func(s *State) {
		s.LoggedIn = true
		au.stopLogoutTimerLocked()
		if hasExpiry && !au.closed {
			delay := expiresAt.Sub(au.Clock.Now())
			if delay < 0 {
				delay = 0
			}
			au.logoutTimer = au.Clock.AfterFunc(delay, func() {
				au.evaluate(true)
			})
		}
	})
	au.goLoadLinks(1)
}

func (au *AppUsecase) stopLogoutTimerLocked() {
	if au.logoutTimer != nil {
		au.logoutTimer.Stop()
		au.logoutTimer = nil
	}
}

func (au *AppUsecase) resetSessionLocked(s *State) {
	s.LoggedIn = false
	s.LogoutConfirmOpen = false
	s.Links = LinksState{Page: 1, PageSize: au.PageSize}
	s.Stats = nil
	s.StatsError = ""
	s.StatsLoading = false
}

// OpenAuth opens auth dialog in mode.
func (au *AppUsecase) OpenAuth(mode AuthMode) {
	au.update(func(s *State) {
		s.Auth = AuthForm{Open: true, Mode: mode}
	})
}

// CloseAuth closes auth dialog and drops entered credentials.
func (au *AppUsecase) CloseAuth() {
	au.update(func(s *State) {
		s.Auth = AuthForm{Mode: s.Auth.Mode}
	})
}

// SetAuthMode switches between login and registration.
func (au *AppUsecase) SetAuthMode(mode AuthMode) {
	au.update(func(s *State) {
		s.Auth.Mode = mode
		s.Auth.Error = ""
	})
}

// SetEmail sets email input.
func (au *AppUsecase) SetEmail(email string) {
	au.update(func(s *State) {
		s.Auth.Email = email
	})
}

// SetPassword sets password input.
func (au *AppUsecase) SetPassword(password string) {
	au.update(func(s *State) {
		s.Auth.Password = password
	})
}

// SetConfirmPassword sets password confirmation input.
func (au *AppUsecase) SetConfirmPassword(password string) {
	au.update(func(s *State) {
		s.Auth.ConfirmPassword = password
	})
}

// SubmitAuth logs in, or registers and then logs in.
func (au *AppUsecase) SubmitAuth(ctx context.Context) error {
	ctxLogger := logger.GetContextLogger(ctx)

	var form AuthForm
	var validationErr error
	au.update(func(s *State) {
		form = s.Auth
		validationErr = ValidateCredentials(form.Mode, form.Email, form.Password, form.ConfirmPassword)
		if validationErr != nil {
			s.Auth.Error = Message(validationErr, "")
			return
		}
		s.Auth.Error = ""
		s.Auth.Loading = true
	})
	if validationErr != nil {
		return validationErr
	}

	fail := func(err error) error {
		ctxLogger.Warn("Auth failed", zap.Error(err))
		au.update(func(s *State) {
			s.Auth.Loading = false
			s.Auth.Error = Message(err, AuthFailedMessage)
		})
		return err
	}

	toast := LoggedInMessage
	if form.Mode == AuthModeRegister {
		if err := au.Auth.Register(ctx, form.Email, form.Password); err != nil {
			return fail(err)
		}
		toast = AccountCreatedMessage
	}
	if _, err := au.Auth.Login(ctx, form.Email, form.Password); err != nil {
		return fail(err)
	}

	ctxLogger.Info("Logged in")
	au.update(func(s *State) {
		s.Auth = AuthForm{Mode: form.Mode}
	})
	au.evaluateSession()
	au.Toast(toast)
	return nil
}

// RequestLogout opens logout confirmation.
func (au *AppUsecase) RequestLogout() {
	au.update(func(s *State) {
		if s.LoggedIn {
			s.LogoutConfirmOpen = true
		}
	})
}

// CancelLogout closes logout confirmation.
func (au *AppUsecase) CancelLogout() {
	au.update(func(s *State) {
		s.LogoutConfirmOpen = false
	})
}

// ConfirmLogout clears token and transient state.
func (au *AppUsecase) ConfirmLogout() error {
	var err error
	if au.Tokens != nil {
		err = au.Tokens.Clear()
	}
	if err != nil {
		logger.Log.Warn("Failed to clear token", zap.Error(err))
	}

	au.update(func(s *State) {
		au.stopLogoutTimerLocked()
		au.resetSessionLocked(s)
		s.Result = nil
		s.ShowQR = false
		s.Error = ""
		s.Phase = PhaseIdle
		s.Loading = false
		au.toastLocked(s, LoggedOutMessage)
	})
	return err
}
