package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MisterMaks/rdrt-client/internal/app"
	appUsecaseInternal "github.com/MisterMaks/rdrt-client/internal/app/usecase"
	"github.com/MisterMaks/rdrt-client/internal/export"
	"github.com/skip2/go-qrcode"
)

// Command names.
const (
	HelpCommand     string = "help"
	ShortenCommand  string = "shorten"
	CopyCommand     string = "copy"
	QRCommand       string = "qr"
	LoginCommand    string = "login"
	RegisterCommand string = "register"
	LogoutCommand   string = "logout"
	YesCommand      string = "yes"
	NoCommand       string = "no"
	LinksCommand    string = "links"
	NextCommand     string = "next"
	PrevCommand     string = "prev"
	StatsCommand    string = "stats"
	ToggleCommand   string = "toggle"
	ExpireCommand   string = "expire"
	QuitCommand     string = "quit"
	ExitCommand     string = "exit"

	QRSaveArg  string = "save"
	QRCopyArg  string = "copy"
	NeverArg   string = "never"
	PromptText string = "rdrt> "
	ToastMark  string = "» "
	TimeLayout string = "2006-01-02 15:04"
)

var (
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong arguments")
)

const helpText = `commands:
  shorten <url>                   shorten URL
  copy                            copy short URL to clipboard
  qr [save [dir] | copy]          show, save or copy QR code of the short URL
  login <email> <password>        log in
  register <email> <password> <confirm>
  logout                          log out (asks for confirmation)
  links [page] | next | prev      your links
  stats <code>                    link stats
  toggle <code>                   activate or deactivate link
  expire <code> <YYYY-MM-DD HH:MM|never>
  quit
`

type commandFunc func(ctx context.Context, args []string) error

// View renders view-model state as text and maps commands to its operations.
type View struct {
	App       *appUsecaseInternal.AppUsecase
	QRDir     string
	Clipboard any

	mu        sync.Mutex
	out       io.Writer
	lastToast string
	commands  map[string]commandFunc
}

// NewView creates *View writing into out.
func NewView(au *appUsecaseInternal.AppUsecase, out io.Writer, qrDir string, clipboard any) *View {
	v := &View{
		App:       au,
		QRDir:     qrDir,
		Clipboard: clipboard,
		out:       out,
	}
	v.commands = map[string]commandFunc{
		HelpCommand:     v.help,
		ShortenCommand:  v.shorten,
		CopyCommand:     v.copyShortURL,
		QRCommand:       v.qr,
		LoginCommand:    v.login,
		RegisterCommand: v.register,
		LogoutCommand:   v.logout,
		YesCommand:      v.confirmLogout,
		NoCommand:       v.cancelLogout,
		LinksCommand:    v.links,
		NextCommand:     v.nextPage,
		PrevCommand:     v.prevPage,
		StatsCommand:    v.stats,
		ToggleCommand:   v.toggle,
		ExpireCommand:   v.expire,
		QuitCommand:     v.quit,
		ExitCommand:     v.quit,
	}
	au.Subscribe(v.onChange)
	return v
}

func (v *View) printf(format string, a ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, a...)
}

// onChange prints a toast once when it appears.
func (v *View) onChange(s appUsecaseInternal.State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s.Toast != "" && s.Toast != v.lastToast {
		fmt.Fprintln(v.out, ToastMark+s.Toast)
	}
	v.lastToast = s.Toast
}

// Prompt prints input prompt.
func (v *View) Prompt() {
	v.printf(PromptText)
}

// Execute runs one input line. It returns ErrQuit on quit.
func (v *View) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, ok := v.commands[strings.ToLower(fields[0])]
	if !ok {
		v.printf("unknown command %q, type help\n", fields[0])
		return ErrUnknownCommand
	}
	err := cmd(ctx, fields[1:])
	if errors.Is(err, ErrUsage) {
		v.printf("usage: see help\n")
	}
	return err
}

func (v *View) help(_ context.Context, _ []string) error {
	v.printf(helpText)
	return nil
}

func (v *View) quit(_ context.Context, _ []string) error {
	return ErrQuit
}

func (v *View) shorten(ctx context.Context, args []string) error {
	v.App.SetURL(strings.Join(args, " "))
	err := v.App.Submit(ctx)

	s := v.App.State()
	if err != nil {
		v.printf("error: %s\n", s.Error)
		return err
	}
	v.printf("short URL: %s\n", s.Result.ShortURL)
	v.printf("original:  %s\n", s.Result.OriginalURL)
	return nil
}

func (v *View) copyShortURL(ctx context.Context, _ []string) error {
	err := v.App.CopyShortURL(ctx)
	if errors.Is(err, appUsecaseInternal.ErrNoResult) {
		v.printf("nothing to copy, shorten a URL first\n")
	}
	return err
}

func (v *View) qr(ctx context.Context, args []string) error {
	s := v.App.State()
	if s.Result == nil {
		v.printf("nothing to show, shorten a URL first\n")
		return appUsecaseInternal.ErrNoResult
	}
	shortURL := s.Result.ShortURL

	if len(args) == 0 {
		if !v.App.ToggleQR() {
			v.printf("QR hidden\n")
			return nil
		}
		q, err := qrcode.New(shortURL, qrcode.Medium)
		if err != nil {
			return err
		}
		v.printf("%s%s\n", q.ToSmallString(false), v.App.ShortURLLabel())
		return nil
	}

	switch args[0] {
	case QRSaveArg:
		dir := v.QRDir
		if len(args) > 1 {
			dir = args[1]
		}
		path, err := export.SavePNG(dir, shortURL)
		if err != nil {
			v.printf("failed to save QR code: %v\n", err)
			return err
		}
		v.printf("saved %s\n", path)
		return nil
	case QRCopyArg:
		err := export.CopyImage(ctx, v.Clipboard, func() ([]byte, error) {
			return export.CardPNG(shortURL)
		})
		switch {
		case errors.Is(err, export.ErrClipboardUnsupported):
			v.App.Toast(appUsecaseInternal.ClipboardMissedMessage)
		case err != nil:
			v.App.Toast(appUsecaseInternal.CopyFailedMessage)
		default:
			v.App.Toast(appUsecaseInternal.CopiedMessage)
		}
		return err
	}
	return ErrUsage
}

func (v *View) submitAuth(ctx context.Context, mode appUsecaseInternal.AuthMode, email, password, confirm string) error {
	v.App.OpenAuth(mode)
	v.App.SetEmail(email)
	v.App.SetPassword(password)
	v.App.SetConfirmPassword(confirm)
	err := v.App.SubmitAuth(ctx)
	if err != nil {
		v.printf("error: %s\n", v.App.State().Auth.Error)
		v.App.CloseAuth()
		return err
	}
	v.App.Wait()
	v.renderLinks()
	return nil
}

func (v *View) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	return v.submitAuth(ctx, appUsecaseInternal.AuthModeLogin, args[0], args[1], "")
}

func (v *View) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	return v.submitAuth(ctx, appUsecaseInternal.AuthModeRegister, args[0], args[1], args[2])
}

func (v *View) logout(_ context.Context, _ []string) error {
	v.App.RequestLogout()
	if !v.App.State().LogoutConfirmOpen {
		v.printf("not logged in\n")
		return nil
	}
	v.printf("log out? (yes/no)\n")
	return nil
}

func (v *View) confirmLogout(_ context.Context, _ []string) error {
	if !v.App.State().LogoutConfirmOpen {
		return nil
	}
	return v.App.ConfirmLogout()
}

func (v *View) cancelLogout(_ context.Context, _ []string) error {
	v.App.CancelLogout()
	return nil
}

func (v *View) links(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil {
			return ErrUsage
		}
		page = p
	}
	err := v.App.LoadLinks(ctx, page)
	if errors.Is(err, appUsecaseInternal.ErrNotLoggedIn) {
		v.printf("log in to see your links\n")
		return err
	}
	v.renderLinks()
	return err
}

func (v *View) nextPage(ctx context.Context, _ []string) error {
	err := v.App.NextPage(ctx)
	v.renderLinks()
	return err
}

func (v *View) prevPage(ctx context.Context, _ []string) error {
	err := v.App.PrevPage(ctx)
	v.renderLinks()
	return err
}

func (v *View) renderLinks() {
	s := v.App.State()
	if !s.LoggedIn {
		return
	}
	links := s.Links
	if links.Error != "" {
		v.printf("error: %s\n", links.Error)
		return
	}
	if len(links.Items) == 0 {
		v.printf("no links yet\n")
		return
	}

	var b strings.Builder
	for _, item := range links.Items {
		status := "active"
		if item.IsActive != nil && !*item.IsActive {
			status = "inactive"
		}
		fmt.Fprintf(&b, "  %-10s %6d clicks  %-8s %s", item.Code, item.Clicks, status, item.OriginalURL)
		if item.ExpiresAt != nil {
			fmt.Fprintf(&b, "  expires %s", item.ExpiresAt.Local().Format(TimeLayout))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "page %d/%d, %d links\n", links.Page, links.TotalPages(), links.Total)
	v.printf("%s", b.String())
}

func (v *View) stats(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	err := v.App.LoadStats(ctx, args[0])
	s := v.App.State()
	if err != nil {
		v.printf("error: %s\n", s.StatsError)
		return err
	}
	v.renderStats(s.Stats)
	return nil
}

func (v *View) renderStats(stats *app.LinkStats) {
	var b strings.Builder
	fmt.Fprintf(&b, "code:     %s\n", stats.Code)
	fmt.Fprintf(&b, "clicks:   %d\n", stats.Clicks)
	if stats.IsOwnerView() {
		fmt.Fprintf(&b, "original: %s\n", *stats.OriginalURL)
		if stats.CreatedAt != nil {
			fmt.Fprintf(&b, "created:  %s\n", stats.CreatedAt.Local().Format(TimeLayout))
		}
		if stats.ExpiresAt != nil {
			fmt.Fprintf(&b, "expires:  %s\n", stats.ExpiresAt.Local().Format(TimeLayout))
		}
		if stats.IsActive != nil {
			fmt.Fprintf(&b, "active:   %t\n", *stats.IsActive)
		}
	}
	v.printf("%s", b.String())
}

func (v *View) toggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	err := v.App.ToggleActive(ctx, args[0])
	if errors.Is(err, appUsecaseInternal.ErrLinkNotFound) {
		v.printf("link %s is not on the current page\n", args[0])
		return err
	}
	v.renderLinks()
	return err
}

func (v *View) expire(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}

	var expiresAt *time.Time
	if value := strings.Join(args[1:], " "); value != NeverArg {
		t, err := time.ParseInLocation(TimeLayout, value, time.Local)
		if err != nil {
			return ErrUsage
		}
		expiresAt = &t
	}

	err := v.App.SetExpiry(ctx, args[0], expiresAt)
	if errors.Is(err, appUsecaseInternal.ErrLinkNotFound) {
		v.printf("link %s is not on the current page\n", args[0])
		return err
	}
	v.renderLinks()
	return err
}
