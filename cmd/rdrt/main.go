package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	appClientInternal "github.com/MisterMaks/rdrt-client/internal/app/client"
	appUsecaseInternal "github.com/MisterMaks/rdrt-client/internal/app/usecase"
	"github.com/MisterMaks/rdrt-client/internal/export"
	"github.com/MisterMaks/rdrt-client/internal/logger"
	userClientInternal "github.com/MisterMaks/rdrt-client/internal/user/client"
	userRepoInternal "github.com/MisterMaks/rdrt-client/internal/user/repo"
	userUsecaseInternal "github.com/MisterMaks/rdrt-client/internal/user/usecase"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Log keys.
const (
	ProfileKey     string = "profile"
	StorageKey     string = "storage"
	ShortenerKey   string = "shortener_api"
	AuthKey        string = "auth_api"
	LoggedInKey    string = "logged_in"
	ExpiresAtKey   string = "expires_at"
	WelcomeMessage string = "rdrt: URL shortener client, type help for commands\n"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		stop()
		log.Fatalln("CRITICAL\tClient failed. Error:", err)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	config, err := NewConfig(args)
	if err != nil {
		return err
	}

	if err = logger.Initialize(config.LogLevel); err != nil {
		return err
	}
	defer func() { _ = logger.Log.Sync() }()

	logger.Log.Info("Starting client",
		zap.String(ProfileKey, config.Profile),
		zap.String(ShortenerKey, config.ShortenerAPIURL()),
		zap.String(AuthKey, config.AuthTokenURL()),
		zap.String(StorageKey, config.StorageFile()),
	)

	storage, err := userRepoInternal.NewStorage(config.StorageFile())
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Log.Warn("Failed to close token storage", zap.Error(err))
		}
	}()

	tokens := userUsecaseInternal.NewTokenUsecase(storage, clockwork.NewRealClock())
	tokens.Subscribe(func(token string) {
		expiresAt, ok := tokens.ExpiresAt()
		fields := []zap.Field{zap.Bool(LoggedInKey, token != "")}
		if ok {
			fields = append(fields, zap.Time(ExpiresAtKey, expiresAt))
		}
		logger.Log.Debug("Token changed", fields...)
	})

	shortenerClient := appClientInternal.NewShortenerClient(config.Environment, nil, tokens)
	authClient := userClientInternal.NewAuthClient(config.Environment, nil, tokens)

	opts := []appUsecaseInternal.Option{}
	var clipboard any
	if c := export.NewTextClipboard(); c != nil {
		opts = append(opts, appUsecaseInternal.WithClipboard(c))
		clipboard = c
	}

	au := appUsecaseInternal.NewAppUsecase(ctx, shortenerClient, authClient, tokens, opts...)
	defer au.Close()

	view := NewView(au, out, config.QRDir, clipboard)
	return repl(ctx, view, in)
}

func repl(ctx context.Context, view *View, in io.Reader) error {
	view.printf(WelcomeMessage)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		view.Prompt()
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			err := view.Execute(ctx, line)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				logger.Log.Debug("Command failed", zap.Error(err))
			}
		}
	}
}
